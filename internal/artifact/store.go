package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"solard/internal/common/fsutil"
	"solard/internal/features"
)

// Pair bundles the two artifacts of one model generation. It is immutable
// once constructed; replacement happens only by loading a whole new Pair.
type Pair struct {
	Scaler    *Scaler
	Regressor *Forest
	Version   string
}

// ScalerPath returns the conventional on-disk location of the scaler for a
// version, e.g. <dir>/scaler_v2.json.
func ScalerPath(dir, version string) string {
	return filepath.Join(dir, fmt.Sprintf("scaler_%s.json", version))
}

// ModelPath returns the conventional on-disk location of the regressor for a
// version, e.g. <dir>/model_v2.json.
func ModelPath(dir, version string) string {
	return filepath.Join(dir, fmt.Sprintf("model_%s.json", version))
}

// LoadPair resolves and loads both artifacts for version from dir. Both
// files must exist, decode, and agree with the service's feature width;
// anything less is an error and no partial Pair is ever returned.
func LoadPair(dir, version string) (*Pair, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	var scaler Scaler
	if err := decodeFile(ScalerPath(base, version), &scaler); err != nil {
		return nil, fmt.Errorf("scaler: %w", err)
	}
	if err := scaler.validate(features.NumFeatures); err != nil {
		return nil, fmt.Errorf("scaler: %w", err)
	}
	var forest Forest
	if err := decodeFile(ModelPath(base, version), &forest); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	if err := forest.validate(); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	if forest.NFeatures != features.NumFeatures {
		return nil, fmt.Errorf("model fitted on %d features, service expects %d", forest.NFeatures, features.NumFeatures)
	}
	return &Pair{Scaler: &scaler, Regressor: &forest, Version: version}, nil
}

func decodeFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
