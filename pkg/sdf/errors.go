package sdf

import "fmt"

// DiscriminantError is the panic value raised when a ray quadratic has a
// discriminant that is neither negative, zero nor positive. That only
// happens when NaN reaches the solver, which means the caller supplied a
// degenerate ray or shape (for example a zero-length direction).
type DiscriminantError struct {
	Shape        string  // "sphere", "capsule body", "capsule cap"
	Discriminant float64 // the offending value
}

func (e *DiscriminantError) Error() string {
	return fmt.Sprintf("sdf: raycast on %s has discriminant %v, which is not <, = or > 0", e.Shape, e.Discriminant)
}

// checkDiscriminant panics with a *DiscriminantError if del is NaN.
func checkDiscriminant(shape string, del float64) {
	if !(del < 0 || del == 0 || del > 0) {
		panic(&DiscriminantError{Shape: shape, Discriminant: del})
	}
}
