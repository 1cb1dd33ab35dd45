// Package lines is a small string-builder helper for assembling
// diagnostic listings line by line, matching the teacher's lines.Lines
// usage in the global package (New/Add/Join).
package lines

import (
	"fmt"
	"strings"
)

type Lines struct {
	elems []string
}

func New() *Lines {
	return &Lines{}
}

func (l *Lines) Add(format string, args ...any) *Lines {
	if len(args) == 0 {
		l.elems = append(l.elems, format)
	} else {
		l.elems = append(l.elems, fmt.Sprintf(format, args...))
	}
	return l
}

func (l *Lines) Join(sep string) string {
	return strings.Join(l.elems, sep)
}

func (l *Lines) String() string {
	return l.Join("\n")
}
