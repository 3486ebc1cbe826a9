package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ectechz/face-emotion/internal/config"
	"github.com/Ectechz/face-emotion/internal/domain"
	"github.com/Ectechz/face-emotion/internal/service"
	"github.com/Ectechz/face-emotion/pkg/utils"
)

const serviceName = "Face Emotion Detection API"
const serviceVersion = "1.0.0"

type Handler struct {
	service       service.EmotionService
	maxUploadSize int64
	log           *zap.Logger
}

func NewHandler(service service.EmotionService, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{
		service:       service,
		maxUploadSize: cfg.App.MaxUploadSize,
		log:           log,
	}
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": serviceName,
		"version": serviceVersion,
		"endpoints": gin.H{
			"analyze_emotion": "/analyze-emotion (POST)",
			"health":          "/health (GET)",
		},
	})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}

// AnalyzeEmotion accepts a single multipart file field named "file" and
// responds with the dominant emotion and its 1-10 intensity level.
func (h *Handler) AnalyzeEmotion(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.log.Warn("Failed to get file from form", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No image file provided"})
		return
	}

	if file.Size > h.maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "File too large"})
		return
	}

	src, err := file.Open()
	if err != nil {
		h.log.Error("Failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to read uploaded file"})
		return
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		h.log.Error("Failed to read uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to read uploaded file"})
		return
	}

	result, err := h.service.AnalyzeEmotion(c.Request.Context(), fileBytes, file.Filename)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// respondError maps the error taxonomy onto HTTP statuses. Only format,
// no-face and invalid-input failures expose their detail; storage and
// backend failures are logged server-side and kept opaque to the caller.
func (h *Handler) respondError(c *gin.Context, err error) {
	var invalidInput *domain.InvalidInputError

	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "Unsupported image format. Supported formats: " + utils.SupportedFormatList(),
		})
	case errors.Is(err, domain.ErrNoFaceDetected):
		h.log.Warn("No face detected in the image")
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No face detected in the image"})
	case errors.As(err, &invalidInput):
		h.log.Warn("Backend rejected image", zap.String("reason", invalidInput.Message))
		c.JSON(http.StatusBadRequest, gin.H{"detail": invalidInput.Message})
	case errors.Is(err, domain.ErrStorage):
		h.log.Error("Failed to save uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save uploaded file"})
	default:
		h.log.Error("Emotion analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal error during emotion analysis"})
	}
}
