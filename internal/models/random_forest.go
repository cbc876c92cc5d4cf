package models

import (
	"math"
	"math/rand"
)

type RandomForest struct {
	NEstimators        int
	MaxDepth           int
	MinSamples         int
	MaxThresholdsPerFe int
	MaxFeatures        int
	Seed               int64
	Trees              []*RegressionTree
}

func NewRandomForest() *RandomForest {
	return &RandomForest{NEstimators: 30, MaxDepth: 8, MinSamples: 10, MaxThresholdsPerFe: 32, Trees: []*RegressionTree{}}
}

func (rf *RandomForest) Name() string { return "RandomForest" }

func (rf *RandomForest) Fitted() bool { return len(rf.Trees) > 0 }

func (rf *RandomForest) Fit(X [][]float64, y []float64) error {
	if err := checkXY(X, y); err != nil {
		return err
	}
	if rf.NEstimators <= 0 {
		rf.NEstimators = 30
	}
	nFeats := len(X[0])
	maxFeats := rf.MaxFeatures
	if maxFeats <= 0 {
		// a third of the columns per split
		maxFeats = int(math.Max(1, math.Round(float64(nFeats)/3)))
	}
	trees, err := fitBootstrapTrees(X, y, rf.NEstimators, rf.Seed, func(k int) *RegressionTree {
		dt := NewRegressionTree()
		dt.MaxDepth = rf.MaxDepth
		dt.MinSamplesSplit = rf.MinSamples
		dt.MaxThresholdsPerFe = rf.MaxThresholdsPerFe
		dt.MaxFeatures = maxFeats
		dt.Seed = rf.Seed + int64(k) + 1
		return dt
	})
	if err != nil {
		return err
	}
	rf.Trees = trees
	return nil
}

func (rf *RandomForest) Predict(X [][]float64) []float64 {
	return averageTrees(rf.Trees, X)
}

func fitBootstrapTrees(X [][]float64, y []float64, n int, seed int64, newTree func(k int) *RegressionTree) ([]*RegressionTree, error) {
	rng := rand.New(rand.NewSource(seed))
	rows := len(X)
	trees := make([]*RegressionTree, 0, n)
	for k := 0; k < n; k++ {
		Xb := make([][]float64, rows)
		yb := make([]float64, rows)
		for i := 0; i < rows; i++ {
			j := rng.Intn(rows)
			Xb[i] = X[j]
			yb[i] = y[j]
		}
		dt := newTree(k)
		if err := dt.Fit(Xb, yb); err != nil {
			return nil, err
		}
		trees = append(trees, dt)
	}
	return trees, nil
}

func averageTrees(trees []*RegressionTree, X [][]float64) []float64 {
	n := len(X)
	out := make([]float64, n)
	if len(trees) == 0 {
		return out
	}
	for _, dt := range trees {
		p := dt.Predict(X)
		for i := 0; i < n; i++ {
			out[i] += p[i]
		}
	}
	m := float64(len(trees))
	for i := 0; i < n; i++ {
		out[i] /= m
	}
	return out
}
