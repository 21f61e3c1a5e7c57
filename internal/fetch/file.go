package fetch

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads a saved page from disk instead of the network.
// It is used to rerun extraction against a captured snapshot.
type FileSource struct{}

// Fetch reads the file at target.
func (FileSource) Fetch(ctx context.Context, target string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target) //nolint:gosec // User-provided snapshot path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", target, err)
	}
	return data, nil
}
