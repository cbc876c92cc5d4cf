package features

import (
	"houseprice/internal/data"
)

// Vectorize lays a labelled record out in schema order. Records come from
// our own generator and CSV files, so no range checks are applied here.
func Vectorize(h data.House) Vector {
	var v Vector
	v[Crim] = h.Crim
	v[Zn] = h.Zn
	v[Indus] = h.Indus
	v[Chas] = boolToFloat(h.Chas)
	v[Nox] = h.Nox
	v[Rm] = h.Rm
	v[Age] = h.Age
	v[Dis] = h.Dis
	v[Rad] = h.Rad
	v[Tax] = h.Tax
	v[Ptratio] = h.Ptratio
	v[B] = h.B
	v[Lstat] = h.Lstat
	return v
}

// Matrix vectorizes a set of records and returns the rows and their prices.
func Matrix(hs []data.House) ([][]float64, []float64) {
	X := make([][]float64, len(hs))
	y := make([]float64, len(hs))
	for i, h := range hs {
		X[i] = Vectorize(h).Slice()
		y[i] = h.Price
	}
	return X, y
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
