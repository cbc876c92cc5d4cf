package models

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// LightGBMCLI drives an external lightgbm binary. The trained booster lives
// in ModelPath; the envelope only records where to find it.
type LightGBMCLI struct {
	ExecPath      string
	NumLeaves     int
	MaxDepth      int
	MinDataInLeaf int
	NumIterations int
	LearningRate  float64
	Device        string
	WorkDir       string
	ModelPath     string
}

func NewLightGBMCLI() *LightGBMCLI {
	return &LightGBMCLI{
		ExecPath:      "lightgbm",
		NumLeaves:     31,
		MaxDepth:      -1,
		MinDataInLeaf: 20,
		NumIterations: 200,
		LearningRate:  0.1,
		Device:        "cpu",
		WorkDir:       "data",
		ModelPath:     filepath.Join("models", "lgbm_model.txt"),
	}
}

func (l *LightGBMCLI) Name() string {
	if l.Device == "gpu" {
		return "LightGBM(GPU)"
	}
	return "LightGBM(CPU)"
}

func (l *LightGBMCLI) Fitted() bool {
	_, err := os.Stat(l.ModelPath)
	return err == nil
}

func (l *LightGBMCLI) Fit(X [][]float64, y []float64) error {
	if err := checkXY(X, y); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(l.ModelPath), 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(l.WorkDir, 0o755); err != nil {
		return err
	}

	trainCSV := filepath.Join(l.WorkDir, "lgbm_train.csv")
	if err := writeCSVLabelFirst(trainCSV, X, y); err != nil {
		return err
	}

	device := l.Device
	if device == "" {
		device = "cpu"
	}
	conf := filepath.Join(l.WorkDir, "lgbm_train.conf")
	cfg := fmt.Sprintf("task=train\nboosting=gbdt\nobjective=regression\nmetric=l2\n"+
		"data=%s\nheader=false\nlabel_column=0\n"+
		"num_leaves=%d\nmax_depth=%d\nmin_data_in_leaf=%d\n"+
		"num_iterations=%d\nlearning_rate=%f\n"+
		"device=%s\ntree_learner=serial\noutput_model=%s\n",
		trainCSV, l.NumLeaves, l.MaxDepth, l.MinDataInLeaf, l.NumIterations, l.LearningRate,
		device, l.ModelPath,
	)
	if err := os.WriteFile(conf, []byte(cfg), 0o644); err != nil {
		return err
	}

	cmd := exec.Command(l.ExecPath, "config="+conf)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s (is lightgbm installed and on PATH?): %w", l.ExecPath, err)
	}
	if !l.Fitted() {
		return errors.New("lightgbm finished but wrote no model file")
	}
	return nil
}

// Predict returns an empty slice when the binary cannot be run; callers
// treat a short result as a failed inference. Each call works in its own
// scratch directory under WorkDir, so concurrent calls never share files.
func (l *LightGBMCLI) Predict(X [][]float64) []float64 {
	if len(X) == 0 {
		return []float64{}
	}
	if err := os.MkdirAll(l.WorkDir, 0o755); err != nil {
		return []float64{}
	}
	dir, err := os.MkdirTemp(l.WorkDir, "pred-*")
	if err != nil {
		return []float64{}
	}
	defer os.RemoveAll(dir)

	predCSV := filepath.Join(dir, "pred.csv")
	if err := writeCSVLabelFirst(predCSV, X, make([]float64, len(X))); err != nil {
		return []float64{}
	}

	conf := filepath.Join(dir, "predict.conf")
	outPath := filepath.Join(dir, "preds.txt")
	cfg := fmt.Sprintf("task=predict\ninput_model=%s\ndata=%s\nheader=false\nlabel_column=0\noutput_result=%s\n",
		l.ModelPath, predCSV, outPath,
	)
	if err := os.WriteFile(conf, []byte(cfg), 0o644); err != nil {
		return []float64{}
	}

	cmd := exec.Command(l.ExecPath, "config="+conf)
	if err := cmd.Run(); err != nil {
		return []float64{}
	}

	f, err := os.Open(outPath)
	if err != nil {
		return []float64{}
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	ps := make([]float64, 0, len(X))
	for sc.Scan() {
		var v float64
		if _, err := fmt.Sscan(sc.Text(), &v); err == nil {
			ps = append(ps, v)
		}
	}
	return ps
}

func writeCSVLabelFirst(path string, X [][]float64, y []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for i := range X {
		fmt.Fprintf(w, "%g", y[i])
		for j := range X[i] {
			fmt.Fprintf(w, ",%g", X[i][j])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
