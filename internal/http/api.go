package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"paragraph-titler/internal/auth"
	"paragraph-titler/internal/metrics"
	"paragraph-titler/internal/service"
)

// ModelStatus reports whether a summarization model is attached.
type ModelStatus interface {
	Ready() bool
	ModelName() string
}

// Pinger checks database connectivity; *sqlx.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Dependencies are the collaborators the HTTP layer needs. Metrics may be nil.
type Dependencies struct {
	Users          service.UserService
	Titles         service.TitleService
	Exports        service.ExportService
	Tokens         *auth.TokenService
	Model          ModelStatus
	DB             Pinger
	Metrics        *metrics.Recorder
	AllowedOrigins []string
	Logger         *logrus.Logger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users   service.UserService
	titles  service.TitleService
	exports service.ExportService
	tokens  *auth.TokenService
	model   ModelStatus
	db      Pinger
	metrics *metrics.Recorder
	origins []string
	logger  *logrus.Logger
}

func NewHandler(deps Dependencies) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		users:   deps.Users,
		titles:  deps.Titles,
		exports: deps.Exports,
		tokens:  deps.Tokens,
		model:   deps.Model,
		db:      deps.DB,
		metrics: deps.Metrics,
		origins: deps.AllowedOrigins,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger), metricsMiddleware(h.metrics), corsMiddleware(h.origins))

	router.GET("/", h.root)
	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	router.POST("/register", h.register)
	router.POST("/login", h.login)

	authed := router.Group("/", h.requireAuth())
	{
		authed.GET("/me", h.me)
		authed.POST("/generate-title", h.generateTitle)
		authed.POST("/generate-titles", h.generateTitles)
		authed.GET("/saved-results", h.listSavedResults)
		authed.DELETE("/saved-results/:result_id", h.deleteSavedResult)
		authed.POST("/saved-results/export", h.exportSavedResults)
		authed.GET("/saved-results/exports", h.listExports)
	}
}

type statusResponse struct {
	Status            string `json:"status"`
	Message           string `json:"message,omitempty"`
	ModelLoaded       bool   `json:"model_loaded"`
	DatabaseConnected bool   `json:"database_connected"`
	ModelName         string `json:"model_name,omitempty"`
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{
		Status:            "running",
		Message:           "Paragraph Titler API is running",
		ModelLoaded:       h.modelLoaded(),
		DatabaseConnected: h.databaseConnected(c.Request.Context()),
	})
}

func (h *Handler) health(c *gin.Context) {
	resp := statusResponse{
		Status:            "healthy",
		ModelLoaded:       h.modelLoaded(),
		DatabaseConnected: h.databaseConnected(c.Request.Context()),
	}
	if h.model != nil {
		resp.ModelName = h.model.ModelName()
	}
	if !resp.DatabaseConnected {
		resp.Status = "degraded"
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) modelLoaded() bool {
	return h.model != nil && h.model.Ready()
}

func (h *Handler) databaseConnected(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	if err := h.db.PingContext(ctx); err != nil {
		h.logger.WithError(err).Warn("database ping failed")
		return false
	}
	return true
}
