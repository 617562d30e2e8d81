package uec

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks hard failures raised when a converting operation is
// handed input that violates its precondition (non-object card, wrong source
// version, failed source validation). Validation problems are never wrapped
// in it; those travel as accumulated error strings instead.
var ErrInvalidInput = errors.New("uec: invalid input")

// pushError appends one path-addressed message in the canonical
// "<path>: <message>" form shared by every validator.
func pushError(errs *[]string, path, message string) {
	*errs = append(*errs, path+": "+message)
}

// childPath joins an object key onto a dotted path. An empty parent yields the
// bare key so top-level fields render without a leading dot.
func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// indexPath appends an array index onto a path.
func indexPath(parent string, idx int) string {
	return fmt.Sprintf("%s[%d]", parent, idx)
}

// orRoot renders the empty top-level path as the literal "root".
func orRoot(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
