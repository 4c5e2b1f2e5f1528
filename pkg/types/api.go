package types

// PredictRequest is the payload for POST /predict. All seven fields are
// required; pointers distinguish an absent field from a legitimate zero.
type PredictRequest struct {
	// Ambient temperature in Celsius, within [-10, 60].
	// example: 25.5
	Temperature *float64 `json:"temperature" example:"25.5"`
	// Relative humidity percentage, within [0, 100].
	// example: 45.0
	Humidity *float64 `json:"humidity" example:"45.0"`
	// Global Horizontal Irradiance, non-negative.
	// example: 600.5
	GHI *float64 `json:"ghi" example:"600.5"`
	// Cyclical hour-of-day feature (sine component).
	// example: -0.5
	HourSin *float64 `json:"hour_sin" example:"-0.5"`
	// Cyclical hour-of-day feature (cosine component).
	// example: -0.866
	HourCos *float64 `json:"hour_cos" example:"-0.866"`
	// Power output one hour ago, non-negative.
	// example: 150.0
	PowerT1 *float64 `json:"power_t_1" example:"150.0"`
	// Power output two hours ago, non-negative.
	// example: 140.0
	PowerT2 *float64 `json:"power_t_2" example:"140.0"`
}

// PredictResponse is returned by POST /predict on success.
type PredictResponse struct {
	// Forecast instantaneous power output.
	// example: 152.3
	PredictedPower float64 `json:"predicted_power" example:"152.3"`
	// Unit of the prediction. Always "Watts".
	Unit string `json:"unit" example:"Watts"`
	// Version tag of the artifact pair that produced the prediction.
	// example: v2
	ModelVersion string `json:"model_version" example:"v2"`
}

// RootResponse is returned by GET /.
type RootResponse struct {
	// "ok" when the model is loaded, "warning" otherwise.
	Status string `json:"status" example:"ok"`
	// Human-readable service status line.
	Message string `json:"message" example:"Solar Forecasting API is ready"`
	// Where to find the interactive API docs.
	DocumentationURL string `json:"documentation_url" example:"/docs"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	// Version of the currently loaded model, empty when none is loaded.
	ModelVersion string `json:"model_version" example:"v2"`
}

// ErrorResponse is the consistent JSON error payload for 500/503 and
// malformed-body 400s.
type ErrorResponse struct {
	// Error detail message.
	// example: Internal processing error
	Detail string `json:"detail" example:"Internal processing error"`
}

// FieldError describes one invalid field in a predict request.
type FieldError struct {
	// Name of the offending JSON field.
	// example: temperature
	Field string `json:"field" example:"temperature"`
	// Either "bounds" (out of declared range) or "malformed" (missing or
	// not a number).
	// example: bounds
	Reason string `json:"reason" example:"bounds"`
	// Human-readable explanation.
	// example: must be within [-10, 60]
	Message string `json:"message" example:"must be within [-10, 60]"`
}

// ValidationErrorResponse is returned with status 422; it carries one entry
// per violated field so the caller gets the complete set in one round trip.
type ValidationErrorResponse struct {
	Detail []FieldError `json:"detail"`
}
