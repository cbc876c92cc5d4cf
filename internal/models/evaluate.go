package models

import "math"

type Scores struct {
	RMSE float64
	MAE  float64
	R2   float64
}

func Evaluate(y, pred []float64) Scores {
	n := len(y)
	if n == 0 || len(pred) != n {
		return Scores{RMSE: math.NaN(), MAE: math.NaN(), R2: math.NaN()}
	}
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(n)
	var sse, sae, sst float64
	for i := range y {
		d := y[i] - pred[i]
		sse += d * d
		sae += math.Abs(d)
		t := y[i] - mean
		sst += t * t
	}
	s := Scores{
		RMSE: math.Sqrt(sse / float64(n)),
		MAE:  sae / float64(n),
	}
	if sst > 0 {
		s.R2 = 1 - sse/sst
	}
	return s
}
