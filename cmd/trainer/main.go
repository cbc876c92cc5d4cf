package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"houseprice/internal/data"
	"houseprice/internal/features"
	"houseprice/internal/models"
	"houseprice/pkg/utils"
)

func main() {
	logger := utils.Logger()
	defer logger.Sync()

	regen := flag.Bool("regen", true, "Regenerate the synthetic dataset")
	n := flag.Int("n", 5000, "Number of synthetic records")
	seed := flag.Int64("seed", 1, "Random seed for data generation, split and model")
	dataPath := flag.String("data", "data/houses.csv", "Dataset CSV")
	algo := flag.String("algo", "gb", "Algorithm: dt|rf|bagging|gb|lgbm")
	estimators := flag.Int("estimators", 100, "Number of estimators (rf/bagging/gb/lgbm)")
	maxDepth := flag.Int("max_depth", 4, "Maximum tree depth")
	minSamples := flag.Int("min_samples", 10, "Minimum samples to split a node")
	lr := flag.Float64("lr", 0.1, "Learning rate (gb/lgbm)")
	out := flag.String("out", "", "Model output path (default models/<algo>_model.gob)")
	curve := flag.Bool("curve", true, "Write a learning curve (PNG and CSV)")
	curvePoints := flag.Int("curve_points", 8, "Number of points on the curve")
	curveMin := flag.Int("curve_min", 100, "Smallest training size on the curve")
	curveLog := flag.Bool("curve_log", true, "Space curve sizes logarithmically")
	curveImg := flag.String("curve_out_img", "data/learning_curve.png", "Learning curve PNG")
	curveCsv := flag.String("curve_out_csv", "data/learning_curve.csv", "Learning curve CSV")
	flag.Parse()

	if *regen {
		logger.Info("Generating synthetic dataset", zap.Int("n", *n), zap.String("out", *dataPath))
		if err := data.GenerateSyntheticHouses(*n, *seed, *dataPath); err != nil {
			logger.Fatal("Failed to generate dataset", zap.Error(err))
		}
	}

	houses, err := data.ReadCSV(*dataPath)
	if err != nil {
		logger.Fatal("Failed to read dataset", zap.Error(err))
	}
	X, y := features.Matrix(houses)

	rng := rand.New(rand.NewSource(*seed))
	perm := rng.Perm(len(X))
	split := int(0.8 * float64(len(X)))
	Xtrain, ytrain := pick(X, y, perm[:split])
	Xtest, ytest := pick(X, y, perm[split:])
	logger.Info("Split dataset", zap.Int("train", len(Xtrain)), zap.Int("test", len(Xtest)))

	params := models.Params{Estimators: *estimators, MaxDepth: *maxDepth, MinSamples: *minSamples, LearningRate: *lr, Seed: *seed}
	mdl, err := models.New(*algo, params)
	if err != nil {
		logger.Fatal("Unknown algorithm", zap.Error(err))
	}
	start := time.Now()
	if err := mdl.Fit(Xtrain, ytrain); err != nil {
		logger.Fatal("Training failed", zap.String("model", mdl.Name()), zap.Error(err))
	}
	trainScores := models.Evaluate(ytrain, mdl.Predict(Xtrain))
	testScores := models.Evaluate(ytest, mdl.Predict(Xtest))
	logger.Info("Holdout metrics",
		zap.String("model", mdl.Name()),
		zap.Duration("fit", time.Since(start)),
		zap.Float64("train_rmse", trainScores.RMSE),
		zap.Float64("test_rmse", testScores.RMSE),
		zap.Float64("test_mae", testScores.MAE),
		zap.Float64("test_r2", testScores.R2),
	)

	path := *out
	if path == "" {
		path = filepath.Join("models", *algo+"_model.gob")
	}
	env := &models.Envelope{
		SchemaVersion: features.SchemaVersion,
		Features:      features.Names(),
		Algo:          *algo,
		TrainedAt:     time.Now().UTC(),
		Model:         mdl,
	}
	if err := models.Save(path, env); err != nil {
		logger.Fatal("Failed to save model", zap.Error(err))
	}
	logger.Info("Model saved", zap.String("path", path))
	fmt.Println("Model:", mdl.Name(), "->", path)

	if !*curve {
		return
	}
	sizes := curveSizes(len(Xtrain), *curvePoints, *curveMin, *curveLog)
	trainRMSE := make([]float64, len(sizes))
	testRMSE := make([]float64, len(sizes))
	testR2 := make([]float64, len(sizes))
	for k, s := range sizes {
		cm, _ := models.New(*algo, params)
		if err := cm.Fit(Xtrain[:s], ytrain[:s]); err != nil {
			logger.Fatal("Training failed at curve point", zap.Int("size", s), zap.Error(err))
		}
		trainRMSE[k] = models.Evaluate(ytrain[:s], cm.Predict(Xtrain[:s])).RMSE
		ts := models.Evaluate(ytest, cm.Predict(Xtest))
		testRMSE[k] = ts.RMSE
		testR2[k] = ts.R2
	}
	if err := writeCurveCSV(*curveCsv, sizes, trainRMSE, testRMSE, testR2); err != nil {
		logger.Warn("Failed to write learning curve CSV", zap.Error(err))
	}
	if err := plotCurvePNG(*curveImg, sizes, trainRMSE, testRMSE); err != nil {
		logger.Warn("Failed to write learning curve PNG", zap.Error(err))
	} else {
		logger.Info("Learning curve written", zap.String("png", *curveImg), zap.String("csv", *curveCsv))
	}
}

func pick(X [][]float64, y []float64, idx []int) ([][]float64, []float64) {
	Xo := make([][]float64, len(idx))
	yo := make([]float64, len(idx))
	for i, j := range idx {
		Xo[i] = X[j]
		yo[i] = y[j]
	}
	return Xo, yo
}

// curveSizes spreads training-set sizes from lo up to total, geometrically
// when logScale is set. The result is strictly increasing and ends at total.
func curveSizes(total, points, lo int, logScale bool) []int {
	if total < 1 {
		return nil
	}
	points = max(points, 2)
	lo = max(lo, 10)
	if lo >= total {
		lo = max(total/2, 1)
	}
	sizes := make([]int, 0, points)
	for i := 0; i < points; i++ {
		frac := float64(i) / float64(points-1)
		s := float64(lo) + frac*float64(total-lo)
		if logScale {
			s = float64(lo) * math.Pow(float64(total)/float64(lo), frac)
		}
		n := min(int(math.Round(s)), total)
		if len(sizes) > 0 && n <= sizes[len(sizes)-1] {
			continue
		}
		sizes = append(sizes, n)
	}
	sizes[len(sizes)-1] = total
	return sizes
}

func writeCurveCSV(path string, sizes []int, trainRMSE, testRMSE, testR2 []float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"size", "train_rmse", "test_rmse", "test_r2"}); err != nil {
		return err
	}
	for i := range sizes {
		rec := []string{
			strconv.Itoa(sizes[i]),
			fmt.Sprintf("%.6f", trainRMSE[i]),
			fmt.Sprintf("%.6f", testRMSE[i]),
			fmt.Sprintf("%.6f", testR2[i]),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func plotCurvePNG(path string, sizes []int, trainRMSE, testRMSE []float64) error {
	p := plot.New()
	p.Title.Text = "Learning curve"
	p.X.Label.Text = "Training samples"
	p.Y.Label.Text = "RMSE (thousands)"
	p.Y.Min = 0

	toXY := func(xs []int, ys []float64) plotter.XYs {
		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i].X = float64(xs[i])
			pts[i].Y = ys[i]
		}
		return pts
	}
	if err := plotutil.AddLinePoints(p, "Train", toXY(sizes, trainRMSE), "Test", toXY(sizes, testRMSE)); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
