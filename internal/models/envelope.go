package models

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

func init() {
	gob.Register(&RegressionTree{})
	gob.Register(&RandomForest{})
	gob.Register(&Bagging{})
	gob.Register(&GradientBoosting{})
	gob.Register(&LightGBMCLI{})
}

// Envelope is what a model file holds: the fitted regressor plus the
// feature layout it was trained against.
type Envelope struct {
	SchemaVersion int
	Features      []string
	Algo          string
	TrainedAt     time.Time
	Model         Regressor
}

func Save(path string, env *Envelope) error {
	if env.Model == nil {
		return errors.New("envelope has no model")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(env); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode model: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func Load(path string) (*Envelope, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var env Envelope
	if err := gob.NewDecoder(f).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	if env.Model == nil {
		return nil, fmt.Errorf("model %s: envelope has no model", path)
	}
	return &env, nil
}
