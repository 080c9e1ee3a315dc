package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFrozen is returned by Register once the registry has been sealed.
var ErrFrozen = errors.New("registry is frozen")

// DuplicateObjectError reports a second registration under the same name.
type DuplicateObjectError struct {
	Object string
}

func (e *DuplicateObjectError) Error() string {
	return fmt.Sprintf("object %q already registered", e.Object)
}

// UnknownObjectError reports a name that does not resolve. Referrer and
// Field are set when the name came from a nested type reference.
type UnknownObjectError struct {
	Object      string
	Referrer    string
	Field       string
	Suggestions []string
}

func (e *UnknownObjectError) Error() string {
	var b strings.Builder

	if e.Referrer != "" {
		fmt.Fprintf(&b, "%s.%s: ", e.Referrer, e.Field)
	}

	fmt.Fprintf(&b, "unknown object %q", e.Object)

	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}

	return b.String()
}

// CyclicReferenceError reports a nested reference path that leads back to
// an object still being expanded. Cycle starts and ends with the same
// object name; Object and Field locate the edge that closes the cycle.
type CyclicReferenceError struct {
	Cycle  []string
	Object string
	Field  string
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("%s.%s: cyclic object reference %s", e.Object, e.Field, strings.Join(e.Cycle, " -> "))
}
