package models

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepData has y = 10 when x0 <= 5 and y = 30 otherwise, with x1 as noise.
func stepData() ([][]float64, []float64) {
	X := make([][]float64, 0, 40)
	y := make([]float64, 0, 40)
	for i := 0; i < 40; i++ {
		x0 := float64(i % 10)
		x1 := float64((i * 7) % 11)
		X = append(X, []float64{x0, x1})
		if x0 <= 5 {
			y = append(y, 10)
		} else {
			y = append(y, 30)
		}
	}
	return X, y
}

func meanBaseline(y []float64) []float64 {
	m := 0.0
	for _, v := range y {
		m += v
	}
	m /= float64(len(y))
	out := make([]float64, len(y))
	for i := range out {
		out[i] = m
	}
	return out
}

func TestRegressorsBeatMean(t *testing.T) {
	X, y := stepData()
	base := Evaluate(y, meanBaseline(y))

	for _, algo := range []string{"dt", "rf", "bagging", "gb"} {
		t.Run(algo, func(t *testing.T) {
			m, err := New(algo, Params{Estimators: 10, MaxDepth: 3, MinSamples: 2, LearningRate: 0.3, Seed: 7})
			require.NoError(t, err)
			assert.False(t, m.Fitted())
			require.NoError(t, m.Fit(X, y))
			assert.True(t, m.Fitted())

			s := Evaluate(y, m.Predict(X))
			assert.Less(t, s.RMSE, base.RMSE)
			assert.Greater(t, s.R2, 0.5)
		})
	}
}

func TestRegressionTreeExactOnStep(t *testing.T) {
	X, y := stepData()
	dt := NewRegressionTree()
	dt.MinSamplesSplit = 2
	require.NoError(t, dt.Fit(X, y))

	got := dt.Predict([][]float64{{2, 0}, {8, 0}})
	assert.Equal(t, []float64{10, 30}, got)
	assert.Equal(t, 0, dt.Root.Feature)
}

func TestFitRejectsBadInput(t *testing.T) {
	dt := NewRegressionTree()
	assert.ErrorIs(t, dt.Fit(nil, nil), ErrEmptyDataset)
	assert.Error(t, dt.Fit([][]float64{{1}, {2}}, []float64{1}))
	assert.Error(t, dt.Fit([][]float64{{1, 2}, {2}}, []float64{1, 2}))
}

func TestGradientBoostingConstantTarget(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}}
	y := []float64{4, 4, 4}
	gb := NewGradientBoosting()
	require.NoError(t, gb.Fit(X, y))
	assert.True(t, gb.Fitted())
	assert.Equal(t, []float64{4, 4, 4}, gb.Predict(X))
}

func TestEnvelopeRoundTripKeepsPredictions(t *testing.T) {
	X, y := stepData()
	gb := NewGradientBoosting()
	gb.NEstimators = 20
	gb.MinSamples = 2
	require.NoError(t, gb.Fit(X, y))

	path := filepath.Join(t.TempDir(), "m", "gb.gob")
	env := &Envelope{
		SchemaVersion: 3,
		Features:      []string{"a", "b"},
		Algo:          "gb",
		TrainedAt:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Model:         gb,
	}
	require.NoError(t, Save(path, env))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, got.SchemaVersion)
	assert.Equal(t, []string{"a", "b"}, got.Features)
	assert.True(t, got.TrainedAt.Equal(env.TrainedAt))
	assert.Equal(t, "GradientBoosting", got.Model.Name())
	assert.Equal(t, gb.Predict(X), got.Model.Predict(X))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.gob"))
	assert.Error(t, err)
}

func TestNewUnknownAlgo(t *testing.T) {
	_, err := New("svm", Params{})
	assert.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	s := Evaluate([]float64{1, 2, 3}, []float64{1, 2, 3})
	assert.Equal(t, 0.0, s.RMSE)
	assert.Equal(t, 1.0, s.R2)

	s = Evaluate([]float64{0, 0}, []float64{3, -3})
	assert.Equal(t, 3.0, s.RMSE)
	assert.Equal(t, 3.0, s.MAE)
}
