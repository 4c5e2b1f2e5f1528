package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"solard/internal/features"
	"solard/internal/inference"
	"solard/internal/registry"
	"solard/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Ready() bool
	ModelVersion() string
	Predict(v features.Vector) (inference.Prediction, error)
	Audit(rec features.Record, predicted float64)
}

// Detail strings returned for degraded/broken predictions. The 503 string
// is a published contract consumed by the dashboard.
const (
	detailNotLoaded   = "ML Model is not loaded available"
	detailInternal    = "Internal processing error"
	detailInvalidBody = "invalid JSON body"
	detailContentType = "Content-Type must be application/json"
)

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/", handleRoot(svc))
	r.Get("/health", handleHealth(svc))
	r.Post("/predict", handlePredict(svc))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("degraded"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// handleRoot reports overall service status.
//
// @Summary  Service status
// @Produce  json
// @Success  200 {object} types.RootResponse
// @Router   / [get]
func handleRoot(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := types.RootResponse{
			Status:           "ok",
			Message:          "Solar Forecasting API is ready",
			DocumentationURL: "/docs",
		}
		if !svc.Ready() {
			resp.Status = "warning"
			resp.Message = "Service running but models not loaded"
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// handleHealth is the ops-friendly probe.
//
// @Summary  Health check
// @Produce  json
// @Success  200 {object} types.HealthResponse
// @Router   /health [get]
func handleHealth(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.HealthResponse{
			Status:       "ok",
			ModelVersion: svc.ModelVersion(),
		})
	}
}

// handlePredict validates, scores, audit-logs, and responds.
//
// @Summary  Predict solar power output
// @Accept   json
// @Produce  json
// @Param    request body types.PredictRequest true "Weather and lag features"
// @Success  200 {object} types.PredictResponse
// @Failure  422 {object} types.ValidationErrorResponse
// @Failure  500 {object} types.ErrorResponse
// @Failure  503 {object} types.ErrorResponse
// @Router   /predict [post]
func handlePredict(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, detailContentType)
			return
		}
		// Limit body size (configurable, default 1MiB)
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.PredictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			// A well-formed body with a wrong-typed field is a validation
			// problem, not a syntax one: report it per-field like any other
			// malformed input. 400 is reserved for unparseable JSON.
			var ute *json.UnmarshalTypeError
			if errors.As(err, &ute) && ute.Field != "" {
				observePrediction("invalid")
				writeValidationError(w, &features.ValidationError{Fields: []types.FieldError{{
					Field:   ute.Field,
					Reason:  features.ReasonMalformed,
					Message: "field is required and must be a number",
				}}})
				return
			}
			writeJSONError(w, http.StatusBadRequest, detailInvalidBody)
			return
		}

		rec, err := features.Validate(req)
		if err != nil {
			ve, _ := features.AsValidationError(err)
			observePrediction("invalid")
			writeValidationError(w, ve)
			return
		}

		start := time.Now()
		pred, err := svc.Predict(rec.Vector())
		if err != nil {
			switch {
			case registry.IsNotReady(err):
				observePrediction("unavailable")
				logRequest(r, http.StatusServiceUnavailable, time.Since(start), err)
				writeJSONError(w, http.StatusServiceUnavailable, detailNotLoaded)
			default:
				// Inference failures carry internal detail; reduce to an
				// opaque message so nothing leaks to the caller.
				observePrediction("error")
				logRequest(r, http.StatusInternalServerError, time.Since(start), err)
				writeJSONError(w, http.StatusInternalServerError, detailInternal)
			}
			return
		}

		// Response is determined; the audit append is best-effort and can
		// no longer affect it.
		svc.Audit(rec, pred.Value)
		observePrediction("ok")
		logRequest(r, http.StatusOK, time.Since(start), nil)
		writeJSON(w, http.StatusOK, types.PredictResponse{
			PredictedPower: pred.Value,
			Unit:           pred.Unit,
			ModelVersion:   pred.ModelVersion,
		})
	}
}
