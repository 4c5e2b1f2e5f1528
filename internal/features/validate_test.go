package features

import (
	"testing"

	"solard/pkg/types"
)

func f(v float64) *float64 { return &v }

func validReq() types.PredictRequest {
	return types.PredictRequest{
		Temperature: f(25.5),
		Humidity:    f(45.0),
		GHI:         f(600.5),
		HourSin:     f(-0.5),
		HourCos:     f(-0.866),
		PowerT1:     f(150.0),
		PowerT2:     f(140.0),
	}
}

func TestValidateAccepts(t *testing.T) {
	rec, err := Validate(validReq())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rec.Temperature != 25.5 || rec.PowerT2 != 140.0 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestTemperatureBoundary(t *testing.T) {
	for _, v := range []float64{-10, 60} {
		req := validReq()
		req.Temperature = f(v)
		if _, err := Validate(req); err != nil {
			t.Fatalf("temperature=%v should be accepted: %v", v, err)
		}
	}
	for _, v := range []float64{-10.0001, 60.0001} {
		req := validReq()
		req.Temperature = f(v)
		_, err := Validate(req)
		ve, ok := AsValidationError(err)
		if !ok {
			t.Fatalf("temperature=%v: expected validation error, got %v", v, err)
		}
		if len(ve.Fields) != 1 || ve.Fields[0].Field != "temperature" || ve.Fields[0].Reason != ReasonBounds {
			t.Fatalf("temperature=%v: unexpected fields %+v", v, ve.Fields)
		}
	}
}

func TestHumidityBoundary(t *testing.T) {
	for _, v := range []float64{0, 100} {
		req := validReq()
		req.Humidity = f(v)
		if _, err := Validate(req); err != nil {
			t.Fatalf("humidity=%v should be accepted: %v", v, err)
		}
	}
	for _, v := range []float64{-0.5, 100.5} {
		req := validReq()
		req.Humidity = f(v)
		if _, err := Validate(req); err == nil {
			t.Fatalf("humidity=%v should be rejected", v)
		}
	}
}

func TestNonNegativeFields(t *testing.T) {
	set := map[string]func(*types.PredictRequest, *float64){
		"ghi":       func(r *types.PredictRequest, p *float64) { r.GHI = p },
		"power_t_1": func(r *types.PredictRequest, p *float64) { r.PowerT1 = p },
		"power_t_2": func(r *types.PredictRequest, p *float64) { r.PowerT2 = p },
	}
	for name, assign := range set {
		req := validReq()
		assign(&req, f(0))
		if _, err := Validate(req); err != nil {
			t.Fatalf("%s=0 should be accepted: %v", name, err)
		}
		req = validReq()
		assign(&req, f(-1))
		_, err := Validate(req)
		ve, ok := AsValidationError(err)
		if !ok || ve.Fields[0].Field != name {
			t.Fatalf("%s=-1: expected bounds violation, got %v", name, err)
		}
	}
}

func TestHourFeaturesUnbounded(t *testing.T) {
	// Values far outside the unit circle are accepted as-is: the caller's
	// feature engineering is trusted for the cyclical features.
	req := validReq()
	req.HourSin = f(5)
	req.HourCos = f(-9)
	if _, err := Validate(req); err != nil {
		t.Fatalf("err: %v", err)
	}
}

func TestMissingFieldIsMalformed(t *testing.T) {
	req := validReq()
	req.GHI = nil
	_, err := Validate(req)
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0].Field != "ghi" || ve.Fields[0].Reason != ReasonMalformed {
		t.Fatalf("unexpected fields: %+v", ve.Fields)
	}
}

func TestAllViolationsReported(t *testing.T) {
	req := validReq()
	req.Temperature = f(-99)
	req.Humidity = f(250)
	req.PowerT1 = nil
	_, err := Validate(req)
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("expected all 3 violations in one error, got %+v", ve.Fields)
	}
	got := map[string]string{}
	for _, fe := range ve.Fields {
		got[fe.Field] = fe.Reason
	}
	if got["temperature"] != ReasonBounds || got["humidity"] != ReasonBounds || got["power_t_1"] != ReasonMalformed {
		t.Fatalf("unexpected reasons: %v", got)
	}
}
