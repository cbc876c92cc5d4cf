package models

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLightGBM stands in for the lightgbm binary. Training writes a
// placeholder booster; prediction echoes the first feature of every row
// after a short pause so that overlapping calls interleave.
const fakeLightGBM = `#!/bin/sh
conf="${1#config=}"
get() { sed -n "s/^$1=//p" "$conf"; }
case "$(get task)" in
train)
	echo booster > "$(get output_model)"
	;;
predict)
	sleep 0.2
	cut -d, -f2 "$(get data)" > "$(get output_result)"
	;;
esac
`

func newFakeLightGBM(t *testing.T) *LightGBMCLI {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake lightgbm is a shell script")
	}
	dir := t.TempDir()
	exe := filepath.Join(dir, "lightgbm")
	require.NoError(t, os.WriteFile(exe, []byte(fakeLightGBM), 0o755))

	l := NewLightGBMCLI()
	l.ExecPath = exe
	l.WorkDir = filepath.Join(dir, "work")
	l.ModelPath = filepath.Join(dir, "models", "lgbm_model.txt")
	return l
}

func TestLightGBMFitSaveLoadPredict(t *testing.T) {
	l := newFakeLightGBM(t)
	assert.False(t, l.Fitted())

	X, y := stepData()
	require.NoError(t, l.Fit(X, y))
	assert.True(t, l.Fitted())

	conf, err := os.ReadFile(filepath.Join(l.WorkDir, "lgbm_train.conf"))
	require.NoError(t, err)
	assert.Contains(t, string(conf), "objective=regression\n")
	assert.Contains(t, string(conf), "label_column=0\n")
	assert.Contains(t, string(conf), "output_model="+l.ModelPath+"\n")

	train, err := os.ReadFile(filepath.Join(l.WorkDir, "lgbm_train.csv"))
	require.NoError(t, err)
	first := strings.SplitN(string(train), "\n", 2)[0]
	assert.Equal(t, "10,0,0", first)

	path := filepath.Join(t.TempDir(), "lgbm.gob")
	require.NoError(t, Save(path, &Envelope{
		SchemaVersion: 1,
		Features:      []string{"a", "b"},
		Algo:          "lgbm",
		TrainedAt:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Model:         l,
	}))
	env, err := Load(path)
	require.NoError(t, err)
	got, ok := env.Model.(*LightGBMCLI)
	require.True(t, ok)
	assert.True(t, got.Fitted())
	assert.Equal(t, "LightGBM(CPU)", got.Name())
	assert.Equal(t, []float64{2, 8}, got.Predict([][]float64{{2, 0}, {8, 0}}))

	require.NoError(t, os.Remove(l.ModelPath))
	assert.False(t, got.Fitted())
}

func TestLightGBMConcurrentPredictKeepsRowsApart(t *testing.T) {
	l := newFakeLightGBM(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(l.ModelPath), 0o755))
	require.NoError(t, os.WriteFile(l.ModelPath, []byte("booster"), 0o644))

	const n = 4
	got := make([][]float64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = l.Predict([][]float64{{float64(i + 1), 0}})
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		assert.Equal(t, []float64{float64(i + 1)}, got[i], "call %d", i)
	}
	left, err := os.ReadDir(l.WorkDir)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestLightGBMMissingBinaryYieldsNoPrediction(t *testing.T) {
	l := NewLightGBMCLI()
	l.ExecPath = filepath.Join(t.TempDir(), "no-such-lightgbm")
	l.WorkDir = t.TempDir()
	l.ModelPath = filepath.Join(t.TempDir(), "lgbm_model.txt")

	assert.Empty(t, l.Predict([][]float64{{1, 2}}))
	assert.Error(t, l.Fit([][]float64{{1}, {2}}, []float64{1, 2}))
}
