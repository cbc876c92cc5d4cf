package models

import (
	"fmt"
	"math"
)

// Params carries the trainer's knobs; each algorithm reads the ones it uses.
type Params struct {
	Estimators   int
	MaxDepth     int
	MinSamples   int
	LearningRate float64
	Seed         int64
}

var Algos = []string{"dt", "rf", "bagging", "gb", "lgbm"}

// New builds an unfitted regressor for algo.
func New(algo string, p Params) (Regressor, error) {
	switch algo {
	case "dt":
		dt := NewRegressionTree()
		dt.MaxDepth = p.MaxDepth
		dt.MinSamplesSplit = p.MinSamples
		dt.Seed = p.Seed
		return dt, nil
	case "rf":
		rf := NewRandomForest()
		rf.NEstimators = p.Estimators
		rf.MaxDepth = p.MaxDepth
		rf.MinSamples = p.MinSamples
		rf.Seed = p.Seed
		return rf, nil
	case "bagging":
		bg := NewBagging()
		bg.NEstimators = p.Estimators
		bg.MaxDepth = p.MaxDepth
		bg.MinSamples = p.MinSamples
		bg.Seed = p.Seed
		return bg, nil
	case "gb":
		gb := NewGradientBoosting()
		gb.NEstimators = p.Estimators
		gb.LearningRate = p.LearningRate
		gb.MinSamples = p.MinSamples
		if p.MaxDepth > 0 {
			gb.MaxDepth = p.MaxDepth
		}
		return gb, nil
	case "lgbm":
		lgbm := NewLightGBMCLI()
		if p.MaxDepth > 0 {
			lgbm.MaxDepth = p.MaxDepth
			lgbm.NumLeaves = int(math.Pow(2, float64(p.MaxDepth)))
		}
		lgbm.MinDataInLeaf = p.MinSamples
		lgbm.NumIterations = p.Estimators
		lgbm.LearningRate = p.LearningRate
		return lgbm, nil
	}
	return nil, fmt.Errorf("unknown algorithm %q (want one of %v)", algo, Algos)
}
