// Package slm wraps a locally served text-generation model for the
// special-needs learning domain. Tokenization, sampling and model storage
// are delegated entirely to the Ollama backend; this package only adds
// configuration persistence, device placement and a simple evaluation
// metric.
package slm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	api "github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// hasAccelerator probes for a usable GPU. Swapped out in tests.
var hasAccelerator = func() bool {
	_, err := exec.LookPath("nvidia-smi")
	return err == nil
}

// SamplingParams controls one generation call. Zero values fall back to
// the defaults the original model shipped with.
type SamplingParams struct {
	MaxLength         int
	NumSequences      int
	Temperature       float64
	TopP              float64
	TopK              int
	RepetitionPenalty float64
}

func (p SamplingParams) withDefaults(cfg *Config) SamplingParams {
	if p.MaxLength <= 0 {
		p.MaxLength = cfg.MaxLength
	}
	if p.NumSequences <= 0 {
		p.NumSequences = 1
	}
	if p.Temperature <= 0 {
		p.Temperature = 0.7
	}
	if p.TopP <= 0 {
		p.TopP = 0.9
	}
	if p.TopK <= 0 {
		p.TopK = 50
	}
	if p.RepetitionPenalty <= 0 {
		p.RepetitionPenalty = 1.2
	}
	return p
}

// EvalResult is the per-example outcome of an evaluation run.
type EvalResult struct {
	Prompt    string `json:"prompt"`
	Target    string `json:"target"`
	Generated string `json:"generated"`
	Match     bool   `json:"match"`
}

// EvalReport aggregates evaluation results.
type EvalReport struct {
	Results  []EvalResult `json:"results"`
	Accuracy float64      `json:"accuracy"`
}

// Generator is a stateful wrapper around one loaded model. Generation may
// run concurrently; UpdateConfig and SetDevice assume no generation is in
// flight.
type Generator struct {
	cfg    *Config
	client *api.Client
	logger *zap.Logger
}

// New constructs a generator for the given config against an Ollama host.
// Requesting the cuda device on a machine without an accelerator falls
// back to cpu with a warning instead of failing.
func New(cfg *Config, ollamaHost string, logger *zap.Logger) (*Generator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	base, err := url.Parse(ollamaHost)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", ollamaHost, err)
	}

	if cfg.Device == "cuda" && !hasAccelerator() {
		logger.Warn("cuda requested but no accelerator is available, falling back to cpu")
		cfg.Device = "cpu"
	}
	if cfg.Device == "" {
		if hasAccelerator() {
			cfg.Device = "cuda"
		} else {
			cfg.Device = "cpu"
		}
	}

	httpClient := &http.Client{Timeout: 120 * time.Second}

	g := &Generator{
		cfg:    cfg,
		client: api.NewClient(base, httpClient),
		logger: logger,
	}
	logger.Info("local generator initialized",
		zap.String("model", cfg.ModelName),
		zap.String("device", cfg.Device),
		zap.String("quantization", cfg.Quantization),
	)
	return g, nil
}

// Load restores a generator from a directory previously written by Save.
func Load(dir, ollamaHost string, logger *zap.Logger) (*Generator, error) {
	cfg, err := LoadConfig(filepath.Join(dir, ConfigFileName))
	if err != nil {
		return nil, err
	}
	cfg.FromLocal = true
	return New(cfg, ollamaHost, logger)
}

// Config returns a copy of the current configuration.
func (g *Generator) Config() Config { return *g.cfg }

// Generate produces one or more completions for the prompt. Sampling and
// decoding run entirely in the backend.
func (g *Generator) Generate(ctx context.Context, prompt string, params SamplingParams) ([]string, error) {
	params = params.withDefaults(g.cfg)

	options := map[string]any{
		"temperature":    params.Temperature,
		"top_p":          params.TopP,
		"top_k":          params.TopK,
		"repeat_penalty": params.RepetitionPenalty,
		"num_predict":    params.MaxLength,
	}
	if g.cfg.Device == "cpu" {
		options["num_gpu"] = 0
	}

	stream := false
	results := make([]string, 0, params.NumSequences)
	for i := 0; i < params.NumSequences; i++ {
		var text strings.Builder
		req := &api.GenerateRequest{
			Model:   g.cfg.ModelName,
			Prompt:  prompt,
			Stream:  &stream,
			Options: options,
		}
		err := g.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
			text.WriteString(resp.Response)
			return nil
		})
		if err != nil {
			g.logger.Error("generation failed", zap.Error(err), zap.String("model", g.cfg.ModelName))
			return nil, fmt.Errorf("generate: %w", err)
		}
		results = append(results, text.String())
	}

	g.logger.Info("generated sequences", zap.Int("count", len(results)))
	return results, nil
}

// Save persists the generator configuration to dir. Model weights stay in
// the backend's own store, keyed by the configured model name.
func (g *Generator) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	g.logger.Info("saving model config", zap.String("dir", dir))
	return g.cfg.Save(filepath.Join(dir, ConfigFileName))
}

// Evaluate generates a completion per prompt and scores it by
// case-insensitive containment of the target text. An empty input set
// yields accuracy 0 rather than an error.
func (g *Generator) Evaluate(ctx context.Context, prompts, targets []string) (*EvalReport, error) {
	n := len(prompts)
	if len(targets) < n {
		n = len(targets)
	}

	report := &EvalReport{Results: make([]EvalResult, 0, n)}
	matches := 0
	for i := 0; i < n; i++ {
		generated, err := g.Generate(ctx, prompts[i], SamplingParams{MaxLength: len(targets[i]) + 30})
		if err != nil {
			return nil, err
		}
		match := strings.Contains(
			strings.ToLower(strings.TrimSpace(generated[0])),
			strings.ToLower(strings.TrimSpace(targets[i])),
		)
		if match {
			matches++
		}
		report.Results = append(report.Results, EvalResult{
			Prompt:    prompts[i],
			Target:    targets[i],
			Generated: generated[0],
			Match:     match,
		})
	}

	if n > 0 {
		report.Accuracy = float64(matches) / float64(n)
	}
	g.logger.Info("evaluation finished",
		zap.Int("samples", n),
		zap.Float64("accuracy", report.Accuracy),
	)
	return report, nil
}

// Update lists the configuration fields that may change after
// construction. Nil fields are left untouched.
type Update struct {
	ModelName    *string
	MaxLength    *int
	Quantization *string
}

// UpdateConfig applies the non-nil fields of u. Not safe to call while a
// generation is in flight.
func (g *Generator) UpdateConfig(u Update) {
	if u.ModelName != nil {
		g.cfg.ModelName = *u.ModelName
	}
	if u.MaxLength != nil {
		g.cfg.MaxLength = *u.MaxLength
	}
	if u.Quantization != nil {
		g.cfg.Quantization = *u.Quantization
	}
	g.logger.Info("config updated",
		zap.String("model", g.cfg.ModelName),
		zap.Int("max_length", g.cfg.MaxLength),
		zap.String("quantization", g.cfg.Quantization),
	)
}

// SetDevice moves the model to the given device. Quantized models refuse
// the move.
func (g *Generator) SetDevice(device string) {
	if g.cfg.Quantization != "" {
		g.logger.Warn("cannot move a quantized model to a different device")
		return
	}
	if device == "cuda" && !hasAccelerator() {
		g.logger.Warn("cuda requested but no accelerator is available, staying on cpu")
		return
	}
	g.cfg.Device = device
	g.logger.Info("model moved", zap.String("device", device))
}
