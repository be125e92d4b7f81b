package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.webm")
	if err := os.WriteFile(path, []byte("fake-webm-bytes"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

func TestTranscribeSendsFormFields(t *testing.T) {
	var gotFields map[string]string
	var gotFile []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Expected bearer auth, got %q", auth)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		gotFields = map[string]string{}
		for name := range r.MultipartForm.Value {
			gotFields[name] = r.FormValue(name)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
			return
		}
		defer file.Close()
		gotFile, _ = io.ReadAll(file)
		json.NewEncoder(w).Encode(map[string]string{"text": "hello world"})
	}))
	defer server.Close()

	client := NewGroqClient("test-key").WithBaseURL(server.URL)
	transcript, err := client.Transcribe(context.Background(), writeTempAudio(t))
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if transcript != "hello world" {
		t.Errorf("Expected transcript, got %q", transcript)
	}

	if string(gotFile) != "fake-webm-bytes" {
		t.Errorf("file bytes not forwarded: %q", gotFile)
	}
	expected := map[string]string{
		"model":           "whisper-large-v3-turbo",
		"prompt":          speechPrompt,
		"response_format": "json",
		"language":        "en",
		"temperature":     "0",
	}
	for name, want := range expected {
		if got := gotFields[name]; got != want {
			t.Errorf("field %s: expected %q, got %q", name, want, got)
		}
	}
}

func TestTranscribeMissingKey(t *testing.T) {
	client := NewGroqClient("")
	_, err := client.Transcribe(context.Background(), writeTempAudio(t))
	if !errors.Is(err, ErrTranscriptionFailure) {
		t.Fatalf("Expected ErrTranscriptionFailure, got %v", err)
	}
}

func TestTranscribeBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewGroqClient("test-key").WithBaseURL(server.URL)
	_, err := client.Transcribe(context.Background(), writeTempAudio(t))
	if !errors.Is(err, ErrTranscriptionFailure) {
		t.Fatalf("Expected ErrTranscriptionFailure, got %v", err)
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	client := NewGroqClient("test-key")
	_, err := client.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.webm"))
	if !errors.Is(err, ErrTranscriptionFailure) {
		t.Fatalf("Expected ErrTranscriptionFailure, got %v", err)
	}
}
