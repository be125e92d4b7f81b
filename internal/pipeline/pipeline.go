// Package pipeline runs the fixed three-stage generation sequence:
// build prompt, call the hosted backend, extract the JSON payload. The
// stages are linear with no branching; any stage failure aborts that
// request only.
package pipeline

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/saiisback/empower/internal/extract"
	"github.com/saiisback/empower/internal/llm"
	"github.com/saiisback/empower/internal/models"
	"github.com/saiisback/empower/internal/prompt"
)

// Stage names used in log lines.
const (
	stageBuilding   = "building"
	stageGenerating = "generating"
	stageExtracting = "extracting"
)

// Pipeline orchestrates one generation request end to end. Dependencies
// are injected at construction; a single instance serves all requests and
// keeps no per-request state.
type Pipeline struct {
	builder *prompt.Builder
	client  llm.Client
	logger  *zap.Logger
}

func New(builder *prompt.Builder, client llm.Client, logger *zap.Logger) *Pipeline {
	return &Pipeline{builder: builder, client: client, logger: logger}
}

// Run executes build → generate → extract for one request and returns
// the extracted payload. Intermediate results are never cached; identical
// requests repeat the full sequence.
func (p *Pipeline) Run(ctx context.Context, req models.GenerationRequest) (json.RawMessage, error) {
	log := p.logger.With(zap.String("kind", req.Kind.String()))

	log.Info("pipeline stage", zap.String("stage", stageBuilding))
	promptText := p.builder.Build(req)

	log.Info("pipeline stage", zap.String("stage", stageGenerating))
	rawText, err := p.client.Complete(ctx, promptText)
	if err != nil {
		log.Error("generation backend call failed",
			zap.String("stage", stageGenerating),
			zap.Error(err),
		)
		return nil, err
	}

	log.Info("pipeline stage", zap.String("stage", stageExtracting))
	payload, err := extract.Extract(rawText, extract.ShapeFor(req.Kind))
	if err != nil {
		// The raw response is recorded here for diagnosis; callers only
		// ever see the generic error message.
		log.Error("response extraction failed",
			zap.String("stage", stageExtracting),
			zap.Error(err),
			zap.String("raw_response", rawText),
		)
		return nil, err
	}

	log.Info("pipeline complete", zap.Int("payload_bytes", len(payload)))
	return payload, nil
}
