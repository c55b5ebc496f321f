package processor

import (
	"fmt"
	"strings"
)

// LibraryType is the kind of clientlib a script belongs to.
type LibraryType uint8

const (
	JS LibraryType = iota
	CSS
)

func (t LibraryType) String() string {
	switch t {
	case JS:
		return "JS"
	case CSS:
		return "CSS"
	}
	return fmt.Sprintf("LibraryType(%d)", t)
}

// ParseLibraryType accepts "js" and "css" in any case.
func ParseLibraryType(s string) (LibraryType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "js":
		return JS, nil
	case "css":
		return CSS, nil
	}
	return 0, fmt.Errorf("unknown library type %q", s)
}
