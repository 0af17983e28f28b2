package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	maxPassageIDLen = 256
	maxPathLen      = 500
)

var nodeIDRe = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)

// ValidateNodeID checks the "<layer>.<n>" shape of a node ID.
func ValidateNodeID(id string) error {
	if !nodeIDRe.MatchString(id) {
		return New(ErrCodeInvalidPassage, "invalid node id %q: want <layer>.<n>", id)
	}
	return nil
}

// ValidatePassageID checks an ID before it ends up in cache keys, report
// documents and URLs: non-empty, bounded, printable, no path separators.
func ValidatePassageID(id string) error {
	switch {
	case id == "":
		return New(ErrCodeInvalidPassage, "passage id cannot be empty")
	case len(id) > maxPassageIDLen:
		return New(ErrCodeInvalidPassage, "passage id longer than %d bytes", maxPassageIDLen)
	case hasControl(id):
		return New(ErrCodeInvalidPassage, "passage id contains control characters")
	case strings.ContainsAny(id, `/\`) || strings.Contains(id, ".."):
		return New(ErrCodeInvalidPassage, "passage id %q contains path characters", id)
	}
	return nil
}

// ValidatePath checks a user-supplied output path.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "path cannot be empty")
	case len(path) > maxPathLen:
		return New(ErrCodeInvalidPath, "path longer than %d bytes", maxPathLen)
	case hasControl(path):
		return New(ErrCodeInvalidPath, "path contains control characters")
	case strings.Contains(path, ".."):
		return New(ErrCodeInvalidPath, "path cannot contain ..")
	}
	return nil
}

func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}
