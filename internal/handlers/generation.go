package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/saiisback/empower/internal/metrics"
	"github.com/saiisback/empower/internal/middleware"
	"github.com/saiisback/empower/internal/models"
	"github.com/saiisback/empower/internal/pipeline"
)

var tracer = otel.Tracer("github.com/saiisback/empower/internal/handlers")

// GenerationHandler serves the game, quiz and explanation endpoints. All
// three run the same three-stage pipeline; only the request kind differs.
type GenerationHandler struct {
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(p *pipeline.Pipeline, logger *zap.Logger) *GenerationHandler {
	return &GenerationHandler{pipeline: p, logger: logger}
}

// GameRequest is the request body for generating a mini-game
type GameRequest struct {
	Age        int    `json:"age" binding:"required"`
	Disability string `json:"disability"`
	Subject    string `json:"subject" binding:"required"`
	Topic      string `json:"topic" binding:"required"`
}

// QuizRequest is the request body for generating quiz questions
type QuizRequest struct {
	Age        int    `json:"age" binding:"required"`
	Disability string `json:"disability"`
	Subject    string `json:"subject" binding:"required"`
}

// LearningRequest is the request body for generating an explanation
type LearningRequest struct {
	Age        int    `json:"age" binding:"required"`
	Disability string `json:"disability"`
	Subject    string `json:"subject" binding:"required"`
	Topic      string `json:"topic" binding:"required"`
}

// Game generates a self-contained HTML mini-game
// @Summary Generate an educational mini-game
// @Accept json
// @Produce json
// @Param request body GameRequest true "game parameters"
// @Success 200 {object} models.GamePayload
// @Failure 500 {object} map[string]string
// @Router /game [post]
func (h *GenerationHandler) Game(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "Game")
	defer span.End()

	var req GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	h.logger.Info("creating mini-game", zap.String("topic", req.Topic), zap.Int("age", req.Age))

	payload, err := h.pipeline.Run(ctx, models.GenerationRequest{
		Kind:          models.KindGame,
		Age:           req.Age,
		Subject:       req.Subject,
		Topic:         req.Topic,
		Accessibility: req.Disability,
	})
	metrics.RecordGeneration(models.KindGame.String(), err == nil)
	if err != nil {
		middleware.InternalError(c, "Mini-game creation failed")
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}

// Quiz generates five quiz questions
// @Summary Generate quiz questions
// @Accept json
// @Produce json
// @Param request body QuizRequest true "quiz parameters"
// @Success 200 {array} models.QuizQuestion
// @Failure 500 {object} map[string]string
// @Router /quiz [post]
func (h *GenerationHandler) Quiz(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "Quiz")
	defer span.End()

	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	h.logger.Info("creating quiz", zap.String("subject", req.Subject), zap.Int("age", req.Age))

	payload, err := h.pipeline.Run(ctx, models.GenerationRequest{
		Kind:          models.KindQuiz,
		Age:           req.Age,
		Subject:       req.Subject,
		Accessibility: req.Disability,
	})
	metrics.RecordGeneration(models.KindQuiz.String(), err == nil)
	if err != nil {
		middleware.InternalError(c, "Quiz creation failed")
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}

// Explain generates a topic explanation
// @Summary Generate a topic explanation
// @Accept json
// @Produce json
// @Param request body LearningRequest true "explanation parameters"
// @Success 200 {object} models.Explanation
// @Failure 500 {object} map[string]string
// @Router /explain [post]
func (h *GenerationHandler) Explain(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "Explain")
	defer span.End()

	var req LearningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	h.logger.Info("creating explanation", zap.String("topic", req.Topic), zap.Int("age", req.Age))

	payload, err := h.pipeline.Run(ctx, models.GenerationRequest{
		Kind:          models.KindExplain,
		Age:           req.Age,
		Subject:       req.Subject,
		Topic:         req.Topic,
		Accessibility: req.Disability,
	})
	metrics.RecordGeneration(models.KindExplain.String(), err == nil)
	if err != nil {
		middleware.InternalError(c, "Explanation creation failed")
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}
