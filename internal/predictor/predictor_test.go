package predictor

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"houseprice/internal/data"
	"houseprice/internal/features"
	"houseprice/internal/models"
	"houseprice/internal/models/mocks"
)

func envelope(m models.Regressor) *models.Envelope {
	return &models.Envelope{
		SchemaVersion: features.SchemaVersion,
		Features:      features.Names(),
		Algo:          "mock",
		TrainedAt:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Model:         m,
	}
}

func newMock(t *testing.T) *mocks.MockRegressor {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockRegressor(ctrl)
	m.EXPECT().Fitted().Return(true).AnyTimes()
	m.EXPECT().Name().Return("Mock").AnyTimes()
	return m
}

func TestPredictSingleRowBatch(t *testing.T) {
	m := newMock(t)
	var v features.Vector
	v[features.Rm] = 6
	m.EXPECT().Predict([][]float64{v.Slice()}).Return([]float64{24.5})

	p, err := New("mem", envelope(m))
	require.NoError(t, err)
	got, err := p.Predict(v)
	require.NoError(t, err)
	assert.Equal(t, Price(24.5), got)
}

func TestPredictSurfacesInferenceFailures(t *testing.T) {
	cases := map[string]func(*mocks.MockRegressor){
		"empty result": func(m *mocks.MockRegressor) { m.EXPECT().Predict(gomock.Any()).Return([]float64{}) },
		"two results":  func(m *mocks.MockRegressor) { m.EXPECT().Predict(gomock.Any()).Return([]float64{1, 2}) },
		"nan":          func(m *mocks.MockRegressor) { m.EXPECT().Predict(gomock.Any()).Return([]float64{math.NaN()}) },
		"inf":          func(m *mocks.MockRegressor) { m.EXPECT().Predict(gomock.Any()).Return([]float64{math.Inf(1)}) },
		"panic": func(m *mocks.MockRegressor) {
			m.EXPECT().Predict(gomock.Any()).DoAndReturn(func(X [][]float64) []float64 {
				_ = X[0][99]
				return nil
			})
		},
	}
	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			m := newMock(t)
			setup(m)
			p, err := New("mem", envelope(m))
			require.NoError(t, err)

			_, err = p.Predict(features.Vector{})
			var ie *InferenceError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, "Mock", ie.Model)
		})
	}
}

func TestLightGBMRunFailureIsInferenceError(t *testing.T) {
	dir := t.TempDir()
	booster := filepath.Join(dir, "lgbm_model.txt")
	require.NoError(t, os.WriteFile(booster, []byte("booster"), 0o644))

	l := models.NewLightGBMCLI()
	l.ExecPath = filepath.Join(dir, "no-such-lightgbm")
	l.WorkDir = filepath.Join(dir, "work")
	l.ModelPath = booster

	path := filepath.Join(dir, "lgbm.gob")
	env := envelope(l)
	env.Algo = "lgbm"
	require.NoError(t, models.Save(path, env))

	p, err := NewLoader(path, nil).Load()
	require.NoError(t, err)
	require.True(t, p.Ready())

	_, err = p.Predict(features.Vector{})
	var ie *InferenceError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "LightGBM(CPU)", ie.Model)
}

func TestNewRejectsSchemaMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockRegressor(ctrl)

	env := envelope(m)
	names := features.Names()
	names[0], names[1] = names[1], names[0]
	env.Features = names

	_, err := New("swapped.gob", env)
	var mu *ModelUnavailableError
	require.ErrorAs(t, err, &mu)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Equal(t, "swapped.gob", mu.Path)

	env = envelope(m)
	env.SchemaVersion = features.SchemaVersion + 1
	_, err = New("old.gob", env)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestNewRejectsUnfittedModel(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockRegressor(ctrl)
	m.EXPECT().Fitted().Return(false)

	_, err := New("empty.gob", envelope(m))
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestLoaderMissingModelFile(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "absent.gob"), nil)
	p, err := l.Load()

	var mu *ModelUnavailableError
	require.ErrorAs(t, err, &mu)
	require.NotNil(t, p)
	assert.False(t, p.Ready())

	_, err = p.Predict(features.Vector{})
	assert.ErrorAs(t, err, &mu)
}

func trainedModelFile(t *testing.T) string {
	t.Helper()
	X, y := features.Matrix(data.SyntheticHouses(300, 11))
	dt := models.NewRegressionTree()
	require.NoError(t, dt.Fit(X, y))

	env := envelope(dt)
	env.Algo = "dt"
	path := filepath.Join(t.TempDir(), "dt_model.gob")
	require.NoError(t, models.Save(path, env))
	return path
}

func TestLoaderLoadsOnce(t *testing.T) {
	l := NewLoader(trainedModelFile(t), nil)

	var wg sync.WaitGroup
	got := make([]*Predictor, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := l.Load()
			assert.NoError(t, err)
			got[i] = p
		}(i)
	}
	wg.Wait()
	for _, p := range got {
		assert.Same(t, got[0], p)
	}
	assert.Equal(t, "RegressionTree", got[0].Info().Model)
	assert.Equal(t, "dt", got[0].Info().Algo)
}

func TestEndToEndScenario(t *testing.T) {
	raw := features.RawInput{
		"rm": 6, "age": 65, "dis": 4, "tax": 30, "chas": "No", "rad": 0.5, "ptratio": 18,
		"crim": 1, "zn": 20, "indus": 7, "lstat": 5, "b": 400, "nox": 0.5,
	}
	v, err := features.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, features.Vector{1, 20, 7, 0, 0.5, 6, 65, 4, 0.5, 30, 18, 400, 5}, v)

	p, err := NewLoader(trainedModelFile(t), nil).Load()
	require.NoError(t, err)

	first, err := p.Predict(v)
	require.NoError(t, err)
	second, err := p.Predict(v)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Greater(t, float64(first), 0.0)
	assert.False(t, math.IsInf(float64(first), 0))
	assert.Regexp(t, `^\$[0-9,]+\.[0-9]{2}k$`, first.String())
}

func TestPriceString(t *testing.T) {
	assert.Equal(t, "$1,234.57k", Price(1234.567).String())
	assert.Equal(t, "$21.60k", Price(21.6).String())
	assert.Equal(t, "$0.00k", Price(0).String())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	assert.ErrorIs(t, &ModelUnavailableError{Path: "x", Err: cause}, cause)
	assert.ErrorIs(t, &InferenceError{Model: "x", Err: cause}, cause)
}
