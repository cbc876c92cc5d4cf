package models

//go:generate mockgen -source=model.go -destination=mocks/mock_regressor.go -package=mocks

// Regressor maps feature rows to real-valued predictions, one per row.
type Regressor interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) []float64
	Fitted() bool
	Name() string
}
