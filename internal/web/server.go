package web

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"houseprice/internal/predictor"
)

//go:embed templates/*.html
var templateFS embed.FS

// NewRouter wires the form, the JSON API and the operational endpoints
// around one loaded (or failed) predictor.
func NewRouter(p *predictor.Predictor, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{predictor: p, logger: logger}

	r := gin.New()
	r.Use(requestLogger(logger), recovery(logger))
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.GET("/", h.form)
	r.POST("/", h.submit)

	api := r.Group("/api")
	api.POST("/predict", h.apiPredict)
	api.GET("/schema", h.schema)

	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
