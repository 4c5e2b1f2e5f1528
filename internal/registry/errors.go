package registry

// notReadyError signals that no artifact pair is installed, so inference is
// impossible until an operator fixes the artifacts and restarts (503).
type notReadyError struct{ state State }

func (e notReadyError) Error() string { return "no model loaded (registry " + string(e.state) + ")" }

// IsNotReady reports whether err indicates an empty or unloaded registry.
func IsNotReady(err error) bool {
	_, ok := err.(notReadyError)
	return ok
}
