package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/domain/codegen"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/providers"
)

// MsgNoCodeGenerated is the detail returned when the provider output was empty
const MsgNoCodeGenerated = "No code generated"

// StatusFor maps a pipeline error to its HTTP status and detail message
func StatusFor(err error) (int, string) {
	var validation *codegen.ValidationError
	var provider *providers.ProviderError

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message
	case errors.Is(err, codegen.ErrEmptyOutput):
		return http.StatusInternalServerError, MsgNoCodeGenerated
	case errors.As(err, &provider):
		return http.StatusInternalServerError, provider.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func (h *Handlers) fail(c *gin.Context, err error) {
	status, detail := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"detail": detail})
}

func (h *Handlers) badRequest(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body: " + err.Error()})
}
