package httpapi

import (
	"encoding/json"
	"net/http"

	"solard/internal/features"
	"solard/pkg/types"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, types.ErrorResponse{Detail: detail})
}

// writeValidationError returns 422 with one entry per violated field.
func writeValidationError(w http.ResponseWriter, ve *features.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, types.ValidationErrorResponse{Detail: ve.Fields})
}
