package inference

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"solard/internal/features"
	"solard/internal/registry"
)

// Unit is the unit of every prediction this service produces.
const Unit = "Watts"

// Prediction is a single scored request.
type Prediction struct {
	Value        float64
	Unit         string
	ModelVersion string
}

// Auditor records served predictions on a side channel. Implementations
// must never fail the caller.
type Auditor interface {
	Record(rec features.Record, predicted float64)
}

// Engine scores feature vectors against the registry's active artifact pair.
// It holds no per-request state; concurrent Predict calls are independent.
type Engine struct {
	reg     *registry.Registry
	auditor Auditor
	log     zerolog.Logger
}

// New builds an engine. auditor may be nil to disable audit logging.
func New(reg *registry.Registry, auditor Auditor, log zerolog.Logger) *Engine {
	return &Engine{reg: reg, auditor: auditor, log: log}
}

// Ready reports whether the registry holds an installed artifact pair.
func (e *Engine) Ready() bool { return e.reg.Ready() }

// ModelVersion returns the active pair's version tag, or "" when degraded.
func (e *Engine) ModelVersion() string { return e.reg.Version() }

// Audit forwards a served prediction to the audit sink, if one is attached.
func (e *Engine) Audit(rec features.Record, predicted float64) {
	if e.auditor != nil {
		e.auditor.Record(rec, predicted)
	}
}

// Predict scales v with the loaded scaler and runs the loaded regressor,
// producing one scalar. When no pair is installed the registry's not-ready
// error passes through unchanged (check with registry.IsNotReady); any
// failure past that point is an inference failure (IsFailure) and is logged
// at error severity here.
func (e *Engine) Predict(v features.Vector) (Prediction, error) {
	pair, err := e.reg.Current()
	if err != nil {
		return Prediction{}, err
	}

	// Work on a copy: Transform scales in place and v belongs to the caller.
	x := make([]float64, len(v))
	copy(x, v[:])
	if err := pair.Scaler.Transform(x); err != nil {
		return Prediction{}, e.fail(err)
	}
	for i, xi := range x {
		if math.IsNaN(xi) || math.IsInf(xi, 0) {
			return Prediction{}, e.fail(fmt.Errorf("scaled %s is non-finite (%v)", features.Names[i], xi))
		}
	}
	y, err := pair.Regressor.Predict(x)
	if err != nil {
		return Prediction{}, e.fail(err)
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return Prediction{}, e.fail(fmt.Errorf("regressor produced non-finite value %v", y))
	}
	return Prediction{Value: y, Unit: Unit, ModelVersion: pair.Version}, nil
}

func (e *Engine) fail(err error) error {
	e.log.Error().Err(err).Msg("prediction error")
	return failureError{err: err}
}
