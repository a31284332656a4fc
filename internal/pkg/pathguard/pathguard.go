// Package pathguard validates untrusted, project-relative file paths.
package pathguard

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrInvalidPath = errors.New("invalid path")
)

var (
	leadingDots = regexp.MustCompile(`^\.+`)
	dotSegment  = regexp.MustCompile(`\.+/`)
)

// Check rejects relative path tricks and scheme separators, and requires src
// to be root or lie below it (case-insensitive).
func Check(src, root string) error {
	if src == "" ||
		strings.ContainsRune(src, 0) ||
		strings.Contains(src, "://") ||
		strings.Contains(src, `\`) ||
		leadingDots.MatchString(src) ||
		dotSegment.MatchString(src) {
		return ErrInvalidName
	}

	if !under(strings.ToLower(src), strings.ToLower(strings.TrimSuffix(root, "/"))) {
		return ErrInvalidPath
	}

	return nil
}

func under(src, root string) bool {
	if root == "" {
		return true
	}
	return src == root || strings.HasPrefix(src, root+"/")
}
