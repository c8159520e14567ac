package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x08\x0b\x0c\x0e-\x1f]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
func WriteFile(ctx context.Context, path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// SanitizeFileName removes characters that are invalid in file names.
//
// The following transformations are applied:
//   - Runs of whitespace (including tabs and newlines) → single space
//   - Invalid characters (<>:"/\|?* and other control chars) → removed
//   - Leading and trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("My: Video? <Test>")   // Returns "My Video Test"
//	SanitizeFileName("  Name   with spaces") // Returns "Name with spaces"
func SanitizeFileName(name string) string {
	name = whitespace.ReplaceAllString(name, " ")
	name = invalidChars.ReplaceAllString(name, "")
	name = whitespace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// FindExisting reports whether a file named after title already exists in dir.
//
// The title is sanitized with SanitizeFileName and each extension is tried
// in the given order against "{dir}/{sanitized}{ext}". The first regular file
// found is returned by name (without the directory). Directories with a
// matching name are ignored.
//
// FindExisting has no side effects; the answer is only valid at call time.
//
// Example:
//
//	ok, name := FindExisting("My: Song", []string{".mp3", ".m4a"}, "./downloads")
//	// ok = true, name = "My Song.m4a" if only the .m4a exists
func FindExisting(title string, extensions []string, dir string) (bool, string) {
	base := SanitizeFileName(title)
	if base == "" {
		return false, ""
	}

	for _, ext := range extensions {
		name := base + ext
		info, err := os.Stat(filepath.Join(dir, name))
		if err == nil && info.Mode().IsRegular() {
			return true, name
		}
	}

	return false, ""
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
