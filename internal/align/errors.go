package align

import (
	"fmt"

	"collate/internal/services"
)

// UnresolvedError reports an alignment whose output line count differs from
// the reference.
type UnresolvedError struct {
	Name      string
	Reference []string
	Output    []string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%s: %s: reference has %d lines, output has %d",
		services.ErrAlignmentUnresolved, e.Name, len(e.Reference), len(e.Output))
}

// Unwrap exposes the alignment marker to errors.Is.
func (e *UnresolvedError) Unwrap() error {
	return services.ErrAlignmentUnresolved
}
