package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/domain/codegen"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/domain/tutor"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/infrastructure/monitoring"
)

// ImageField is the multipart field carrying the uploaded design
const ImageField = "image"

// ProviderStatus reports which upstream providers have credentials
type ProviderStatus struct {
	Completion bool `json:"completion"`
	Vision     bool `json:"vision"`
}

// Handlers contains HTTP request handlers
type Handlers struct {
	codegen   *codegen.Service
	tutor     *tutor.Tutor
	providers ProviderStatus
	maxUpload int64
	logger    *zap.Logger
	metrics   *monitoring.Metrics
}

// NewHandlers creates a new handlers instance
func NewHandlers(svc *codegen.Service, t *tutor.Tutor, providers ProviderStatus, maxUpload int64, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		codegen:   svc,
		tutor:     t,
		providers: providers,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// WithMetrics exposes a metrics snapshot on the health endpoint
func (h *Handlers) WithMetrics(metrics *monitoring.Metrics) *Handlers {
	h.metrics = metrics
	return h
}

// Register mounts every route on the router
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	r.POST("/generate-code", h.GenerateCode)
	r.POST("/modify-code", h.ModifyCode)
	r.POST("/analyze-image", h.AnalyzeImage)
	r.POST("/parse-html", h.ParseHTML)
	r.POST("/ai-tutor", h.AITutor)
}

// Health returns liveness and provider configuration state
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":    "healthy",
		"providers": h.providers,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// GenerateCode creates an application, or modifies one when the body
// carries existing code
func (h *Handlers) GenerateCode(c *gin.Context) {
	var req codegen.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	resp, err := h.codegen.Generate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ModifyCode applies a targeted change to existing code
func (h *Handlers) ModifyCode(c *gin.Context) {
	var req codegen.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	resp, err := h.codegen.Modify(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	if resp.Code == nil {
		c.JSON(http.StatusOK, gin.H{
			"code":    resp.Unchanged,
			"message": resp.Message,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": resp.Code})
}

// AnalyzeImage turns an uploaded design image into code
func (h *Handlers) AnalyzeImage(c *gin.Context) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}

	file, _, err := c.Request.FormFile(ImageField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "Image too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Missing image upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.codegen.AnalyzeImage(c.Request.Context(), data)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type parseRequest struct {
	HTML string `json:"html"`
}

// ParseHTML splits a single document into markup, stylesheet and script
func (h *Handlers) ParseHTML(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": codegen.Split(req.HTML)})
}

// AITutor answers a learner's question. It always responds 200; failures
// are reported in the payload status.
func (h *Handlers) AITutor(c *gin.Context) {
	var req tutor.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid tutor request", zap.Error(err))
		c.JSON(http.StatusOK, tutor.ErrorResponse("Invalid request: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, h.tutor.Ask(c.Request.Context(), req))
}
