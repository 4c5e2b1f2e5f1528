package features

import (
	"fmt"
	"math"

	"solard/pkg/types"
)

// Violation reasons used in ValidationError entries.
const (
	ReasonBounds    = "bounds"
	ReasonMalformed = "malformed"
)

// bound is a closed interval; NaN on either side means unbounded.
type bound struct {
	min, max float64
}

func (b bound) contains(v float64) bool {
	if !math.IsNaN(b.min) && v < b.min {
		return false
	}
	if !math.IsNaN(b.max) && v > b.max {
		return false
	}
	return true
}

func (b bound) String() string {
	switch {
	case math.IsNaN(b.max):
		return fmt.Sprintf("must be >= %g", b.min)
	case math.IsNaN(b.min):
		return fmt.Sprintf("must be <= %g", b.max)
	default:
		return fmt.Sprintf("must be within [%g, %g]", b.min, b.max)
	}
}

var unbounded = math.NaN()

// bounds holds the declared range per feature. hour_sin/hour_cos carry no
// entry: the caller's feature engineering is trusted there.
var bounds = map[string]bound{
	"temperature": {min: -10, max: 60},
	"humidity":    {min: 0, max: 100},
	"ghi":         {min: 0, max: unbounded},
	"power_t_1":   {min: 0, max: unbounded},
	"power_t_2":   {min: 0, max: unbounded},
}

// ValidationError reports every field that failed validation, not just the
// first, so a caller can fix the whole payload in one round trip.
type ValidationError struct {
	Fields []types.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid features: %d field(s) rejected", len(e.Fields))
}

// AsValidationError returns the typed validation error if err is one.
func AsValidationError(err error) (*ValidationError, bool) {
	ve, ok := err.(*ValidationError)
	return ve, ok
}

// Validate range-checks a predict request and produces a Record. A nil
// pointer means the field was absent from the JSON body and is reported as
// malformed. There is no cross-field validation.
func Validate(req types.PredictRequest) (Record, error) {
	var ve ValidationError
	get := func(name string, p *float64) float64 {
		if p == nil {
			ve.Fields = append(ve.Fields, types.FieldError{
				Field:   name,
				Reason:  ReasonMalformed,
				Message: "field is required and must be a number",
			})
			return 0
		}
		if b, ok := bounds[name]; ok && !b.contains(*p) {
			ve.Fields = append(ve.Fields, types.FieldError{
				Field:   name,
				Reason:  ReasonBounds,
				Message: b.String(),
			})
		}
		return *p
	}

	rec := Record{
		Temperature: get("temperature", req.Temperature),
		Humidity:    get("humidity", req.Humidity),
		GHI:         get("ghi", req.GHI),
		HourSin:     get("hour_sin", req.HourSin),
		HourCos:     get("hour_cos", req.HourCos),
		PowerT1:     get("power_t_1", req.PowerT1),
		PowerT2:     get("power_t_2", req.PowerT2),
	}
	if len(ve.Fields) > 0 {
		return Record{}, &ve
	}
	return rec, nil
}
