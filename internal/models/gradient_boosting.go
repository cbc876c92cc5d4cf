package models

// GradientBoosting fits shallow regression trees to the residuals of the
// running prediction under squared loss.
type GradientBoosting struct {
	NEstimators        int
	LearningRate       float64
	MaxDepth           int
	MinSamples         int
	MaxThresholdsPerFe int
	Init               float64
	Trees              []*RegressionTree
}

func NewGradientBoosting() *GradientBoosting {
	return &GradientBoosting{NEstimators: 100, LearningRate: 0.1, MaxDepth: 3, MinSamples: 10, MaxThresholdsPerFe: 32}
}

func (gb *GradientBoosting) Name() string { return "GradientBoosting" }

func (gb *GradientBoosting) Fitted() bool { return len(gb.Trees) > 0 }

func (gb *GradientBoosting) Fit(X [][]float64, y []float64) error {
	if err := checkXY(X, y); err != nil {
		return err
	}
	n := len(X)
	sum := 0.0
	for _, v := range y {
		sum += v
	}
	gb.Init = sum / float64(n)
	gb.Trees = gb.Trees[:0]

	F := make([]float64, n)
	for i := range F {
		F[i] = gb.Init
	}
	r := make([]float64, n)
	for m := 0; m < gb.NEstimators; m++ {
		for i := 0; i < n; i++ {
			r[i] = y[i] - F[i]
		}
		t := NewRegressionTree()
		t.MaxDepth = gb.MaxDepth
		t.MinSamplesSplit = gb.MinSamples
		t.MaxThresholdsPerFe = gb.MaxThresholdsPerFe
		if err := t.Fit(X, r); err != nil {
			return err
		}
		if t.Root.IsLeaf && t.Root.Value == 0 {
			break
		}
		gb.Trees = append(gb.Trees, t)
		inc := t.Predict(X)
		for i := 0; i < n; i++ {
			F[i] += gb.LearningRate * inc[i]
		}
	}
	if len(gb.Trees) == 0 {
		// constant target: keep a single zero tree so the model reports fitted
		gb.Trees = append(gb.Trees, &RegressionTree{Root: &TreeNode{IsLeaf: true}})
	}
	return nil
}

func (gb *GradientBoosting) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i := range out {
		out[i] = gb.Init
	}
	for _, t := range gb.Trees {
		inc := t.Predict(X)
		for i := range out {
			out[i] += gb.LearningRate * inc[i]
		}
	}
	return out
}
