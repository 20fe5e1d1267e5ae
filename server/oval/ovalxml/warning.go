package ovalxml

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// Warning is a non-fatal parse problem: an element or attribute value that
// could not be resolved. The parse continues after a warning and the affected
// field keeps its previous value.
type Warning struct {
	Element xml.Name
	Line    int
	Column  int
	Message string
}

func (w *Warning) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", w.Line, w.Column, w.Message)
}

// IsWarning reports whether err (or any error it wraps) is a *Warning.
func IsWarning(err error) bool {
	var w *Warning
	return errors.As(err, &w)
}
