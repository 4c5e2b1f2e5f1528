package features

// NumFeatures is the width of the model's input vector.
const NumFeatures = 7

// Names lists the feature columns in training order. This order is a
// load-bearing contract: the scaler and regressor were fitted against
// exactly these columns in exactly this sequence, and reordering them
// corrupts predictions without any error surfacing.
var Names = [NumFeatures]string{
	"temperature",
	"humidity",
	"ghi",
	"hour_sin",
	"hour_cos",
	"power_t_1",
	"power_t_2",
}

// Record is a fully validated set of input features.
type Record struct {
	Temperature float64
	Humidity    float64
	GHI         float64
	HourSin     float64
	HourCos     float64
	PowerT1     float64
	PowerT2     float64
}

// Vector is a model input in training column order.
type Vector [NumFeatures]float64

// Vector assembles the record into training column order (see Names).
// Keep the positions here in lockstep with Names.
func (r Record) Vector() Vector {
	return Vector{
		r.Temperature,
		r.Humidity,
		r.GHI,
		r.HourSin,
		r.HourCos,
		r.PowerT1,
		r.PowerT2,
	}
}
