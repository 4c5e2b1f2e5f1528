package inference

// failureError signals that the scale/predict pipeline itself broke (shape
// mismatch, non-finite output). Unlike a not-ready registry this is a
// bug/data-corruption signal, mapped to 500 at the boundary.
type failureError struct{ err error }

func (e failureError) Error() string { return "inference failure: " + e.err.Error() }
func (e failureError) Unwrap() error { return e.err }

// IsFailure reports whether err indicates a broken inference pipeline.
func IsFailure(err error) bool {
	_, ok := err.(failureError)
	return ok
}
