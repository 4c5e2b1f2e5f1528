package registry

import (
	"os"
	"testing"

	"github.com/rs/zerolog"

	"solard/internal/artifact"
)

const (
	scalerJSON = `{"mean":[0,0,0,0,0,0,0],"scale":[1,1,1,1,1,1,1]}`
	forestJSON = `{"n_features":7,"trees":[{"children_left":[-1],"children_right":[-1],"feature":[-2],"threshold":[0],"value":[42]}]}`
)

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(artifact.ScalerPath(dir, "v2"), []byte(scalerJSON), 0o644); err != nil {
		t.Fatalf("write scaler: %v", err)
	}
	if err := os.WriteFile(artifact.ModelPath(dir, "v2"), []byte(forestJSON), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return dir
}

func TestEmptyRegistryNotReady(t *testing.T) {
	r := New(zerolog.Nop())
	if r.Ready() {
		t.Fatalf("empty registry reports ready")
	}
	if r.State() != StateEmpty {
		t.Fatalf("state=%s", r.State())
	}
	if _, err := r.Current(); !IsNotReady(err) {
		t.Fatalf("expected not-ready error, got %v", err)
	}
	if r.Version() != "" {
		t.Fatalf("version=%q", r.Version())
	}
}

func TestLoadInstallsPair(t *testing.T) {
	r := New(zerolog.Nop())
	if err := r.Load(fixtureDir(t), "v2"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !r.Ready() || r.State() != StateReady {
		t.Fatalf("ready=%v state=%s", r.Ready(), r.State())
	}
	pair, err := r.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if pair.Version != "v2" || r.Version() != "v2" {
		t.Fatalf("version=%q/%q", pair.Version, r.Version())
	}
}

func TestLoadFailureDegrades(t *testing.T) {
	r := New(zerolog.Nop())
	if err := r.Load(t.TempDir(), "v9"); err == nil {
		t.Fatalf("expected load error for missing artifacts")
	}
	if r.Ready() {
		t.Fatalf("degraded registry reports ready")
	}
	if r.State() != StateEmpty {
		t.Fatalf("state=%s", r.State())
	}
	if r.LastError() == "" {
		t.Fatalf("load failure not recorded")
	}
	if _, err := r.Current(); !IsNotReady(err) {
		t.Fatalf("expected not-ready error, got %v", err)
	}
}

func TestLoadFailureKeepsNothingPartial(t *testing.T) {
	// A valid scaler next to a corrupt model must not leave a half pair.
	dir := t.TempDir()
	if err := os.WriteFile(artifact.ScalerPath(dir, "v2"), []byte(scalerJSON), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(artifact.ModelPath(dir, "v2"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := New(zerolog.Nop())
	if err := r.Load(dir, "v2"); err == nil {
		t.Fatalf("expected load error")
	}
	if _, err := r.Current(); !IsNotReady(err) {
		t.Fatalf("expected not-ready, got %v", err)
	}
}

func TestUnload(t *testing.T) {
	r := New(zerolog.Nop())
	if err := r.Load(fixtureDir(t), "v2"); err != nil {
		t.Fatalf("load: %v", err)
	}
	r.Unload()
	if r.Ready() {
		t.Fatalf("unloaded registry reports ready")
	}
	if r.State() != StateUnloaded {
		t.Fatalf("state=%s", r.State())
	}
	if _, err := r.Current(); !IsNotReady(err) {
		t.Fatalf("expected not-ready after unload, got %v", err)
	}
}
