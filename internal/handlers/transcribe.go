package handlers

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saiisback/empower/internal/middleware"
	"github.com/saiisback/empower/internal/transcribe"
)

// TranscribeHandler serves the speech-to-text endpoint.
type TranscribeHandler struct {
	client *transcribe.GroqClient
	logger *zap.Logger
}

// NewTranscribeHandler creates a new transcription handler
func NewTranscribeHandler(client *transcribe.GroqClient, logger *zap.Logger) *TranscribeHandler {
	return &TranscribeHandler{client: client, logger: logger}
}

// Transcribe accepts a multipart audio upload and returns its transcript
// @Summary Transcribe child speech
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "audio recording"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /transcribe [post]
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		middleware.BadRequest(c, "audio file is required")
		return
	}

	// Reject non-audio uploads before touching the backend.
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") {
		middleware.BadRequest(c, "File must be an audio file")
		return
	}

	tmp, err := os.CreateTemp("", "upload_*.webm")
	if err != nil {
		h.logger.Error("temp file creation failed", zap.Error(err))
		middleware.InternalError(c, "Audio processing failed")
		return
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := c.SaveUploadedFile(file, tmp.Name()); err != nil {
		h.logger.Error("saving upload failed", zap.Error(err))
		middleware.InternalError(c, "Audio processing failed")
		return
	}

	transcript, err := h.client.Transcribe(c.Request.Context(), tmp.Name())
	if err != nil {
		h.logger.Error("transcription failed", zap.Error(err))
		middleware.InternalError(c, "Transcription failed")
		return
	}

	h.logger.Info("audio transcribed", zap.Int("chars", len(transcript)))
	c.JSON(http.StatusOK, gin.H{"transcript": transcript})
}
