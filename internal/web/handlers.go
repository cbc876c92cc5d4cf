package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"houseprice/internal/features"
	"houseprice/internal/metrics"
	"houseprice/internal/predictor"
)

const (
	msgInvalid     = "Please correct the highlighted fields."
	msgUnavailable = "The price model is not available right now. Please try again later."
	msgFailed      = "We could not compute a price for these inputs."
)

type handler struct {
	predictor *predictor.Predictor
	logger    *zap.Logger
}

func (h *handler) form(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPage(nil, nil))
}

func (h *handler) submit(c *gin.Context) {
	raw := features.RawInput{}
	values := map[string]string{}
	for _, name := range features.Names() {
		if v, ok := c.GetPostForm(name); ok {
			raw[name] = v
			values[name] = v
		}
	}

	price, err := h.predict(raw)
	if err != nil {
		status, msg := h.classify(c, err)
		pg := newPage(values, features.FieldErrors(err))
		pg.Error = msg
		c.HTML(status, "index.html", pg)
		return
	}
	pg := newPage(values, nil)
	pg.Price = price.String()
	c.HTML(http.StatusOK, "index.html", pg)
}

func (h *handler) apiPredict(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	price, err := h.predict(features.RawInput(body))
	if err != nil {
		status, msg := h.classify(c, err)
		resp := gin.H{"error": msg}
		if fe := features.FieldErrors(err); fe != nil {
			resp["fields"] = fe
		}
		c.JSON(status, resp)
		return
	}
	info := h.predictor.Info()
	c.JSON(http.StatusOK, gin.H{
		"price":          float64(price),
		"formatted":      price.String(),
		"model":          info.Model,
		"schema_version": info.SchemaVersion,
	})
}

type schemaField struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Kind  string  `json:"kind"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

func (h *handler) schema(c *gin.Context) {
	fs := features.Fields()
	out := make([]schemaField, len(fs))
	for i, f := range fs {
		kind := "numeric"
		if f.Kind == features.Binary {
			kind = "yes_no"
		}
		out[i] = schemaField{Index: i, Name: f.Name, Label: f.Label, Kind: kind, Min: f.Min, Max: f.Max}
	}
	c.JSON(http.StatusOK, gin.H{"version": features.SchemaVersion, "fields": out})
}

func (h *handler) health(c *gin.Context) {
	if !h.predictor.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": h.predictor.Err().Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "model": h.predictor.Info()})
}

// predict refuses work before validating when the model never loaded.
func (h *handler) predict(raw features.RawInput) (predictor.Price, error) {
	if !h.predictor.Ready() {
		return 0, h.predictor.Err()
	}
	start := time.Now()
	v, err := features.Normalize(raw)
	if err != nil {
		return 0, err
	}
	price, err := h.predictor.Predict(v)
	metrics.PredictionSeconds.Observe(time.Since(start).Seconds())
	if err == nil {
		metrics.Predictions.WithLabelValues(metrics.OK).Inc()
		metrics.PredictedPrice.Observe(float64(price))
	}
	return price, err
}

func (h *handler) classify(c *gin.Context, err error) (int, string) {
	var mu *predictor.ModelUnavailableError
	var ie *predictor.InferenceError
	var ve *features.ValidationError
	switch {
	case errors.As(err, &mu):
		metrics.Predictions.WithLabelValues(metrics.Unavailable).Inc()
		return http.StatusServiceUnavailable, msgUnavailable
	case errors.As(err, &ve):
		metrics.Predictions.WithLabelValues(metrics.Invalid).Inc()
		return http.StatusUnprocessableEntity, msgInvalid
	case errors.As(err, &ie):
		metrics.Predictions.WithLabelValues(metrics.Failed).Inc()
		h.logger.Error("Inference failed", zap.Error(err))
		_ = c.Error(err)
		return http.StatusInternalServerError, msgFailed
	}
	metrics.Predictions.WithLabelValues(metrics.Failed).Inc()
	h.logger.Error("Prediction failed", zap.Error(err))
	_ = c.Error(err)
	return http.StatusInternalServerError, msgFailed
}
