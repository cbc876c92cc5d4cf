package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"houseprice/internal/data"
	"houseprice/internal/features"
	"houseprice/internal/models"
	"houseprice/internal/predictor"
)

func main() {
	modelPath := flag.String("model", "models/gb_model.gob", "Model file")
	dataPath := flag.String("data", "data/houses.csv", "Labelled CSV to evaluate on")
	outImg := flag.String("out_img", "data/predicted_vs_actual.png", "Scatter PNG")
	worst := flag.Int("worst", 5, "Number of largest residuals to print")
	flag.Parse()

	p, err := predictor.NewLoader(*modelPath, nil).Load()
	if err != nil {
		fmt.Println("Failed to load model:", err)
		os.Exit(1)
	}
	houses, err := data.ReadCSV(*dataPath)
	if err != nil {
		fmt.Println("Failed to read dataset:", err)
		os.Exit(1)
	}

	rep, err := analyze(p, houses)
	if err != nil {
		fmt.Println("Inference failed:", err)
		os.Exit(1)
	}
	info := p.Info()
	fmt.Printf("%s (%s, trained %s) on %d records\n", info.Model, info.Algo, info.TrainedAt.Format("2006-01-02"), len(houses))
	fmt.Printf("RMSE=%.3f MAE=%.3f R2=%.3f\n", rep.Scores.RMSE, rep.Scores.MAE, rep.Scores.R2)
	for _, r := range rep.Worst(*worst) {
		fmt.Printf("  row %d: actual %s predicted %s\n", r.Row+2, predictor.Price(r.Actual), predictor.Price(r.Predicted))
	}

	if err := plotScatter(*outImg, rep); err != nil {
		fmt.Println("Failed to write PNG:", err)
		return
	}
	fmt.Println("Scatter written to:", *outImg)
}

type residual struct {
	Row       int
	Actual    float64
	Predicted float64
}

type report struct {
	Residuals []residual
	Scores    models.Scores
}

// analyze runs every record through the same Predict path the server uses.
func analyze(p *predictor.Predictor, houses []data.House) (*report, error) {
	rep := &report{Residuals: make([]residual, 0, len(houses))}
	y := make([]float64, len(houses))
	pred := make([]float64, len(houses))
	for i, h := range houses {
		got, err := p.Predict(features.Vectorize(h))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		y[i], pred[i] = h.Price, float64(got)
		rep.Residuals = append(rep.Residuals, residual{Row: i, Actual: h.Price, Predicted: float64(got)})
	}
	rep.Scores = models.Evaluate(y, pred)
	return rep, nil
}

func (r *report) Worst(k int) []residual {
	out := append([]residual(nil), r.Residuals...)
	sort.Slice(out, func(i, j int) bool {
		return math.Abs(out[i].Actual-out[i].Predicted) > math.Abs(out[j].Actual-out[j].Predicted)
	})
	if k < len(out) {
		out = out[:k]
	}
	return out
}

func plotScatter(path string, rep *report) error {
	p := plot.New()
	p.Title.Text = "Predicted vs actual"
	p.X.Label.Text = "Actual price (thousands)"
	p.Y.Label.Text = "Predicted price (thousands)"

	pts := make(plotter.XYs, len(rep.Residuals))
	hi := 0.0
	for i, r := range rep.Residuals {
		pts[i].X = r.Actual
		pts[i].Y = r.Predicted
		hi = math.Max(hi, math.Max(r.Actual, r.Predicted))
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Radius = vg.Points(1.5)
	sc.GlyphStyle.Color = color.RGBA{R: 42, G: 61, B: 102, A: 255}

	diag, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: hi, Y: hi}})
	if err != nil {
		return err
	}
	diag.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(sc, diag)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
