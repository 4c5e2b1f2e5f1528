package artifact

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Scaler holds the parameters of a fitted standard scaler: per-feature mean
// and scale in training column order.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// validate checks the scaler against the expected feature count.
func (s *Scaler) validate(nFeatures int) error {
	if len(s.Mean) != nFeatures {
		return fmt.Errorf("scaler mean has %d entries, want %d", len(s.Mean), nFeatures)
	}
	if len(s.Scale) != nFeatures {
		return fmt.Errorf("scaler scale has %d entries, want %d", len(s.Scale), nFeatures)
	}
	for i, sc := range s.Scale {
		if sc == 0 {
			return fmt.Errorf("scaler scale[%d] is zero", i)
		}
	}
	return nil
}

// Transform standardizes v in place: (v - mean) / scale, element-wise.
// v must have the fitted width.
func (s *Scaler) Transform(v []float64) error {
	if len(v) != len(s.Mean) {
		return fmt.Errorf("vector has %d entries, scaler fitted on %d", len(v), len(s.Mean))
	}
	floats.Sub(v, s.Mean)
	floats.Div(v, s.Scale)
	return nil
}
