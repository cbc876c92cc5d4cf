package models

// Bagging averages full-width trees fitted on bootstrap samples.
type Bagging struct {
	NEstimators        int
	MaxDepth           int
	MinSamples         int
	MaxThresholdsPerFe int
	Seed               int64
	Trees              []*RegressionTree
}

func NewBagging() *Bagging {
	return &Bagging{NEstimators: 30, MaxDepth: 8, MinSamples: 10, MaxThresholdsPerFe: 32, Trees: []*RegressionTree{}}
}

func (bg *Bagging) Name() string { return "Bagging" }

func (bg *Bagging) Fitted() bool { return len(bg.Trees) > 0 }

func (bg *Bagging) Fit(X [][]float64, y []float64) error {
	if err := checkXY(X, y); err != nil {
		return err
	}
	if bg.NEstimators <= 0 {
		bg.NEstimators = 30
	}
	trees, err := fitBootstrapTrees(X, y, bg.NEstimators, bg.Seed, func(k int) *RegressionTree {
		dt := NewRegressionTree()
		dt.MaxDepth = bg.MaxDepth
		dt.MinSamplesSplit = bg.MinSamples
		dt.MaxThresholdsPerFe = bg.MaxThresholdsPerFe
		dt.MaxFeatures = 0
		return dt
	})
	if err != nil {
		return err
	}
	bg.Trees = trees
	return nil
}

func (bg *Bagging) Predict(X [][]float64) []float64 {
	return averageTrees(bg.Trees, X)
}
