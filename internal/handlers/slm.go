package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saiisback/empower/internal/middleware"
	"github.com/saiisback/empower/internal/slm"
)

// SLMHandler serves the local text-generation endpoint of the SLM
// service.
type SLMHandler struct {
	generator *slm.Generator
	logger    *zap.Logger
}

// NewSLMHandler creates a new SLM handler
func NewSLMHandler(generator *slm.Generator, logger *zap.Logger) *SLMHandler {
	return &SLMHandler{generator: generator, logger: logger}
}

// TextGenRequest is the request body for local text generation
type TextGenRequest struct {
	Prompt     string `json:"prompt" binding:"required"`
	Age        int    `json:"age" binding:"required"`
	Disability string `json:"disability"`
}

// GenerateText produces text from the local model
// @Summary Generate text with the local SLM
// @Accept json
// @Produce json
// @Param request body TextGenRequest true "generation parameters"
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /generate_text [post]
func (h *SLMHandler) GenerateText(c *gin.Context) {
	var req TextGenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	context := fmt.Sprintf("Prompt: %s Age: %d Disability: %s", req.Prompt, req.Age, req.Disability)
	results, err := h.generator.Generate(c.Request.Context(), context, slm.SamplingParams{})
	if err != nil {
		h.logger.Error("local generation failed", zap.Error(err))
		middleware.InternalError(c, "Text generation failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"generated_text": results[0]})
}
