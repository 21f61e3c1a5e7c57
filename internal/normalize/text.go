package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Text collapses every run of whitespace to a single space, trims the ends,
// and converts the result to Unicode NFC so that visually identical strings
// compare equal.
func Text(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
