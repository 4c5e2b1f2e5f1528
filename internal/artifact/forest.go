package artifact

import "fmt"

// Tree is one regression tree in sklearn's flattened node-array layout.
// Node i is a leaf iff ChildrenLeft[i] == -1; for internal nodes the
// decision is x[Feature[i]] <= Threshold[i] -> left, else right.
type Tree struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

const leaf = -1

func (t *Tree) validate(nFeatures int) error {
	n := len(t.ChildrenLeft)
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("node arrays have mismatched lengths")
	}
	if n == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i := 0; i < n; i++ {
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if (l == leaf) != (r == leaf) {
			return fmt.Errorf("node %d has one-sided children", i)
		}
		if l == leaf {
			continue
		}
		if l <= i || l >= n || r <= i || r >= n {
			return fmt.Errorf("node %d has out-of-range children (%d, %d)", i, l, r)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d, model has %d features", i, t.Feature[i], nFeatures)
		}
	}
	return nil
}

// predict walks the tree for a single sample. Bounds are guaranteed by
// validate at load time.
func (t *Tree) predict(x []float64) float64 {
	i := 0
	for t.ChildrenLeft[i] != leaf {
		if x[t.Feature[i]] <= t.Threshold[i] {
			i = t.ChildrenLeft[i]
		} else {
			i = t.ChildrenRight[i]
		}
	}
	return t.Value[i]
}

// Forest is a fitted random-forest regressor.
type Forest struct {
	NFeatures int    `json:"n_features"`
	Trees     []Tree `json:"trees"`
}

func (f *Forest) validate() error {
	if f.NFeatures <= 0 {
		return fmt.Errorf("n_features is %d", f.NFeatures)
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("forest has no trees")
	}
	for i := range f.Trees {
		if err := f.Trees[i].validate(f.NFeatures); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// Predict returns the ensemble mean for a single scaled sample.
func (f *Forest) Predict(x []float64) (float64, error) {
	if len(x) != f.NFeatures {
		return 0, fmt.Errorf("vector has %d entries, model fitted on %d", len(x), f.NFeatures)
	}
	var sum float64
	for i := range f.Trees {
		sum += f.Trees[i].predict(x)
	}
	return sum / float64(len(f.Trees)), nil
}
