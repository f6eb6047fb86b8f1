package services

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// folder compares strings case-insensitively with Unicode case folding
// ("STRASSE" matches "straße") after NFKC normalization.
type folder struct {
	caser cases.Caser
}

func newFolder() *folder {
	return &folder{caser: cases.Fold()}
}

func (f *folder) fold(s string) string {
	return f.caser.String(norm.NFKC.String(s))
}

// contains reports whether needle, already folded, occurs in haystack.
func (f *folder) contains(haystack, foldedNeedle string) bool {
	return strings.Contains(f.fold(haystack), foldedNeedle)
}
