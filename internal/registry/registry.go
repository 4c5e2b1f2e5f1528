package registry

import (
	"sync"

	"github.com/rs/zerolog"

	"solard/internal/artifact"
)

// State represents the lifecycle state of the registry.
type State string

const (
	StateEmpty    State = "empty"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateUnloaded State = "unloaded"
)

// Registry is the process-wide holder of the active artifact pair. At most
// one pair is installed at a time; readers see either no pair or a fully
// constructed one because installation is a single pointer swap under the
// write lock, never field-by-field mutation.
type Registry struct {
	mu      sync.RWMutex
	state   State
	pair    *artifact.Pair
	lastErr string

	log zerolog.Logger
}

// New returns an empty registry. Call Load at startup to install a pair.
func New(log zerolog.Logger) *Registry {
	return &Registry{state: StateEmpty, log: log}
}

// Load resolves and installs the artifact pair for version from dir. On any
// I/O or decode failure the registry stays Empty and records the failure;
// the caller decides whether that is fatal (at startup it is not: the
// service runs degraded and answers 503 until restarted with fixed files).
func (r *Registry) Load(dir, version string) error {
	r.mu.Lock()
	r.state = StateLoading
	r.mu.Unlock()

	pair, err := artifact.LoadPair(dir, version)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.state = StateEmpty
		r.lastErr = err.Error()
		r.log.Error().Err(err).Str("version", version).Msg("artifact load failed, serving degraded")
		return err
	}
	r.pair = pair
	r.state = StateReady
	r.lastErr = ""
	r.log.Info().Str("version", pair.Version).Int("trees", len(pair.Regressor.Trees)).Msg("model and scaler loaded")
	return nil
}

// Ready reports whether an artifact pair is currently installed.
func (r *Registry) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pair != nil
}

// Current returns the installed pair, or a not-ready error when none is
// installed. The returned pair is immutable and safe to use for the rest of
// the request without further locking.
func (r *Registry) Current() (*artifact.Pair, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.pair == nil {
		return nil, notReadyError{state: r.state}
	}
	return r.pair, nil
}

// Version returns the installed pair's version tag, or "" when empty.
func (r *Registry) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.pair == nil {
		return ""
	}
	return r.pair.Version
}

// State returns the current lifecycle state.
func (r *Registry) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// LastError returns the most recent load failure message, if any.
func (r *Registry) LastError() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// Unload drops the installed pair so model memory can be reclaimed.
// Subsequent Current calls fail with a not-ready error.
func (r *Registry) Unload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pair = nil
	r.state = StateUnloaded
	r.log.Info().Msg("models unloaded")
}
