package models

import (
	"math"
	"math/rand"
	"sort"
)

type TreeNode struct {
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
	IsLeaf    bool
	Value     float64
}

// RegressionTree splits on the threshold that minimises the summed squared
// error of both children; leaves predict the mean of their samples.
type RegressionTree struct {
	MaxDepth           int
	MinSamplesSplit    int
	MaxThresholdsPerFe int
	MaxFeatures        int
	Seed               int64
	Root               *TreeNode
}

func NewRegressionTree() *RegressionTree {
	return &RegressionTree{MaxDepth: 6, MinSamplesSplit: 20, MaxThresholdsPerFe: 64}
}

func (dt *RegressionTree) Name() string { return "RegressionTree" }

func (dt *RegressionTree) Fitted() bool { return dt.Root != nil }

func (dt *RegressionTree) Fit(X [][]float64, y []float64) error {
	if err := checkXY(X, y); err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(dt.Seed))
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	dt.Root = dt.build(X, y, idx, 0, rng)
	return nil
}

func (dt *RegressionTree) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i := range X {
		out[i] = dt.predictOne(X[i])
	}
	return out
}

func (dt *RegressionTree) predictOne(x []float64) float64 {
	n := dt.Root
	if n == nil {
		return 0
	}
	for !n.IsLeaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

func (dt *RegressionTree) build(X [][]float64, y []float64, idx []int, depth int, rng *rand.Rand) *TreeNode {
	mean, sse := meanSSE(y, idx)
	node := &TreeNode{IsLeaf: true, Value: mean}
	if len(idx) < dt.MinSamplesSplit || len(idx) < 2 || depth >= dt.MaxDepth || sse == 0 {
		return node
	}

	bestFeature := -1
	bestThr := 0.0
	bestSSE := sse
	var leftBest, rightBest []int

	for _, f := range pickFeatures(len(X[0]), dt.MaxFeatures, rng) {
		for _, thr := range candidateThresholds(X, idx, f, dt.MaxThresholdsPerFe) {
			l, r := splitIdx(X, idx, f, thr)
			if len(l) == 0 || len(r) == 0 {
				continue
			}
			_, ls := meanSSE(y, l)
			_, rs := meanSSE(y, r)
			if ls+rs < bestSSE {
				bestSSE = ls + rs
				bestFeature = f
				bestThr = thr
				leftBest, rightBest = l, r
			}
		}
	}
	if bestFeature == -1 {
		return node
	}
	node.IsLeaf = false
	node.Feature = bestFeature
	node.Threshold = bestThr
	node.Left = dt.build(X, y, leftBest, depth+1, rng)
	node.Right = dt.build(X, y, rightBest, depth+1, rng)
	return node
}

func meanSSE(y []float64, idx []int) (float64, float64) {
	if len(idx) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, i := range idx {
		sum += y[i]
	}
	mean := sum / float64(len(idx))
	sse := 0.0
	for _, i := range idx {
		d := y[i] - mean
		sse += d * d
	}
	return mean, sse
}

func splitIdx(X [][]float64, idx []int, f int, thr float64) ([]int, []int) {
	l := make([]int, 0, len(idx))
	r := make([]int, 0, len(idx))
	for _, i := range idx {
		if X[i][f] <= thr {
			l = append(l, i)
		} else {
			r = append(r, i)
		}
	}
	return l, r
}

// candidateThresholds takes up to nCand evenly spaced quantiles of feature f
// over the samples in idx.
func candidateThresholds(X [][]float64, idx []int, f int, nCand int) []float64 {
	if nCand <= 0 {
		nCand = 16
	}
	n := len(idx)
	vals := make([]float64, n)
	for j, i := range idx {
		vals[j] = X[i][f]
	}
	sort.Float64s(vals)
	out := make([]float64, 0, nCand)
	for k := 0; k < nCand; k++ {
		pos := 0
		if nCand > 1 {
			pos = int(math.Round(float64(k) / float64(nCand-1) * float64(n-1)))
		}
		thr := vals[pos]
		if len(out) == 0 || thr != out[len(out)-1] {
			out = append(out, thr)
		}
	}
	return out
}

func pickFeatures(nFeats int, maxFeats int, rng *rand.Rand) []int {
	idx := make([]int, nFeats)
	for i := range idx {
		idx[i] = i
	}
	if maxFeats <= 0 || maxFeats >= nFeats {
		return idx
	}
	rng.Shuffle(nFeats, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	out := make([]int, maxFeats)
	copy(out, idx[:maxFeats])
	return out
}
