package models

import (
	"errors"
	"fmt"
)

var ErrEmptyDataset = errors.New("empty dataset")

func checkXY(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return ErrEmptyDataset
	}
	if len(X) != len(y) {
		return fmt.Errorf("%d rows but %d targets", len(X), len(y))
	}
	w := len(X[0])
	for i := range X {
		if len(X[i]) != w {
			return fmt.Errorf("row %d has %d features, want %d", i, len(X[i]), w)
		}
	}
	return nil
}
