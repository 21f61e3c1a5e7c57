package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/scrapetab/internal/model"
)

// SaveFile writes rs to path in format, creating parent directories.
// The file is created with 0600 permissions and truncated if it exists.
// Every failure wraps model.ErrPersistence.
func SaveFile(path, format string, rs *model.ResultSet) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("could not save results to %s: %w: %w", path, model.ErrPersistence, err)
		}
	}

	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("could not save results to %s: %w: %w", path, model.ErrPersistence, err)
	}

	w, err := NewWriter(format, f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("could not save results to %s: %w: %w", path, model.ErrPersistence, err)
	}

	if _, err := w.Write(rs); err != nil {
		_ = f.Close()
		return fmt.Errorf("could not save results to %s: %w: %w", path, model.ErrPersistence, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("could not save results to %s: %w: %w", path, model.ErrPersistence, err)
	}
	return nil
}
