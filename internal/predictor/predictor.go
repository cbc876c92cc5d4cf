package predictor

import (
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"houseprice/internal/features"
	"houseprice/internal/models"
)

type Info struct {
	Path          string    `json:"path"`
	Algo          string    `json:"algo"`
	Model         string    `json:"model"`
	SchemaVersion int       `json:"schema_version"`
	TrainedAt     time.Time `json:"trained_at"`
}

// Predictor is the process-wide handle on a loaded model. It is immutable
// once built, so handlers may share it without locking.
type Predictor struct {
	model   models.Regressor
	info    Info
	loadErr error
}

// New wraps a decoded envelope, refusing models fitted against another
// feature layout.
func New(path string, env *models.Envelope) (*Predictor, error) {
	if env == nil || env.Model == nil {
		return nil, &ModelUnavailableError{Path: path, Err: ErrNotFitted}
	}
	if env.SchemaVersion != features.SchemaVersion || !slices.Equal(env.Features, features.Names()) {
		return nil, &ModelUnavailableError{
			Path: path,
			Err:  fmt.Errorf("%w: got v%d %v, want v%d %v", ErrSchemaMismatch, env.SchemaVersion, env.Features, features.SchemaVersion, features.Names()),
		}
	}
	if !env.Model.Fitted() {
		return nil, &ModelUnavailableError{Path: path, Err: ErrNotFitted}
	}
	return &Predictor{
		model: env.Model,
		info: Info{
			Path:          path,
			Algo:          env.Algo,
			Model:         env.Model.Name(),
			SchemaVersion: env.SchemaVersion,
			TrainedAt:     env.TrainedAt,
		},
	}, nil
}

// Unavailable returns a Predictor stuck in the load-failed state.
func Unavailable(err error) *Predictor {
	return &Predictor{loadErr: err}
}

func (p *Predictor) Ready() bool { return p.loadErr == nil }

// Err returns the load failure, or nil when the model is ready.
func (p *Predictor) Err() error { return p.loadErr }

func (p *Predictor) Info() Info { return p.info }

// Predict runs the model on a single-row batch. Ranges are not rechecked;
// the vector is expected to come from features.Normalize.
func (p *Predictor) Predict(v features.Vector) (price Price, err error) {
	if p.loadErr != nil {
		return 0, p.loadErr
	}
	defer func() {
		if r := recover(); r != nil {
			err = &InferenceError{Model: p.info.Model, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	out := p.model.Predict([][]float64{v.Slice()})
	if len(out) != 1 {
		return 0, &InferenceError{Model: p.info.Model, Err: fmt.Errorf("expected 1 prediction, got %d", len(out))}
	}
	if math.IsNaN(out[0]) || math.IsInf(out[0], 0) {
		return 0, &InferenceError{Model: p.info.Model, Err: fmt.Errorf("non-finite prediction %v", out[0])}
	}
	return Price(out[0]), nil
}

// Loader performs the one-time model load. Concurrent or repeated Load
// calls share a single attempt and its outcome.
type Loader struct {
	path   string
	logger *zap.Logger

	once sync.Once
	p    *Predictor
	err  error
}

func NewLoader(path string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{path: path, logger: logger}
}

// Load always returns a non-nil Predictor. On failure the Predictor is in
// the unavailable state and err is a *ModelUnavailableError.
func (l *Loader) Load() (*Predictor, error) {
	l.once.Do(func() {
		start := time.Now()
		env, err := models.Load(l.path)
		if err != nil {
			l.err = &ModelUnavailableError{Path: l.path, Err: err}
		} else {
			l.p, l.err = New(l.path, env)
		}
		if l.err != nil {
			l.p = Unavailable(l.err)
			l.logger.Error("Model unavailable", zap.String("path", l.path), zap.Error(l.err))
			return
		}
		info := l.p.Info()
		l.logger.Info("Model loaded",
			zap.String("path", l.path),
			zap.String("algo", info.Algo),
			zap.String("model", info.Model),
			zap.Int("schema_version", info.SchemaVersion),
			zap.Time("trained_at", info.TrainedAt),
			zap.Duration("took", time.Since(start)),
		)
	})
	return l.p, l.err
}
