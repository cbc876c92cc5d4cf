package predictor

import (
	"errors"
	"fmt"
)

var (
	ErrSchemaMismatch = errors.New("model was trained on a different feature layout")
	ErrNotFitted      = errors.New("model is not fitted")
)

// ModelUnavailableError means the model could not be loaded at startup.
// Every Predict call on such a Predictor returns it.
type ModelUnavailableError struct {
	Path string
	Err  error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("model unavailable (%s): %v", e.Path, e.Err)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

// InferenceError means the model failed on a well-formed vector.
type InferenceError struct {
	Model string
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed (%s): %v", e.Model, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }
