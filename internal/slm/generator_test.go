package slm

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

const testHost = "http://localhost:11434"

// withAccelerator overrides the GPU probe for the duration of a test.
func withAccelerator(t *testing.T, present bool) {
	t.Helper()
	prev := hasAccelerator
	hasAccelerator = func() bool { return present }
	t.Cleanup(func() { hasAccelerator = prev })
}

func TestNewFallsBackToCPUWithoutAccelerator(t *testing.T) {
	withAccelerator(t, false)

	cfg := &Config{ModelName: "distilgpt2", MaxLength: 128, Device: "cuda"}
	g, err := New(cfg, testHost, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := g.Config().Device; got != "cpu" {
		t.Errorf("Expected device cpu, got %q", got)
	}
}

func TestNewKeepsCUDAWithAccelerator(t *testing.T) {
	withAccelerator(t, true)

	cfg := &Config{ModelName: "distilgpt2", MaxLength: 128, Device: "cuda"}
	g, err := New(cfg, testHost, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := g.Config().Device; got != "cuda" {
		t.Errorf("Expected device cuda, got %q", got)
	}
}

func TestNewRejectsBadHost(t *testing.T) {
	withAccelerator(t, false)

	if _, err := New(DefaultConfig(), "://not-a-url", zap.NewNop()); err == nil {
		t.Fatal("Expected error for invalid host")
	}
}

func TestEvaluateEmptySetReturnsZeroAccuracy(t *testing.T) {
	withAccelerator(t, false)

	g, err := New(DefaultConfig(), testHost, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report, err := g.Evaluate(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Evaluate failed on empty input: %v", err)
	}
	if report.Accuracy != 0 {
		t.Errorf("Expected accuracy 0, got %v", report.Accuracy)
	}
	if len(report.Results) != 0 {
		t.Errorf("Expected no results, got %d", len(report.Results))
	}
}

func TestUpdateConfigAppliesOnlySetFields(t *testing.T) {
	withAccelerator(t, false)

	g, err := New(DefaultConfig(), testHost, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	name := "tinyllama"
	g.UpdateConfig(Update{ModelName: &name})

	cfg := g.Config()
	if cfg.ModelName != "tinyllama" {
		t.Errorf("Expected model tinyllama, got %q", cfg.ModelName)
	}
	if cfg.MaxLength != 128 {
		t.Errorf("MaxLength changed unexpectedly: %d", cfg.MaxLength)
	}
}

func TestSetDeviceRefusedForQuantizedModel(t *testing.T) {
	withAccelerator(t, true)

	cfg := &Config{ModelName: "distilgpt2", MaxLength: 128, Device: "cpu", Quantization: "4bit"}
	g, err := New(cfg, testHost, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	g.SetDevice("cuda")
	if got := g.Config().Device; got != "cpu" {
		t.Errorf("Quantized model should stay on cpu, got %q", got)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	withAccelerator(t, false)

	dir := t.TempDir()
	cfg := &Config{ModelName: "distilgpt2", MaxLength: 70, Device: "cpu"}
	g, err := New(cfg, testHost, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := g.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := Load(dir, testHost, zap.NewNop())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := reloaded.Config()
	if got.ModelName != "distilgpt2" || got.MaxLength != 70 {
		t.Errorf("Round trip changed config: %+v", got)
	}
	if !got.FromLocal {
		t.Error("Loaded config should be marked from_local")
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	data := []byte(`{"model_name":"distilgpt2","max_length":128,"device":"cpu","gradient_checkpointing":true}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("Expected unknown field to be rejected")
	}
}
