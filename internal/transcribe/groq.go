// Package transcribe sends uploaded audio to the hosted speech-to-text
// backend. A single pass-through call per upload; no retry.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const transcriptionURL = "https://api.groq.com/openai/v1/audio/transcriptions"

// Steering prompt sent with every upload. Keeps the speech model biased
// toward clean transcripts of child speech.
const speechPrompt = "This is speech from a child using an educational app. Please transcribe clearly."

// ErrTranscriptionFailure reports a missing credential or a downstream
// speech-backend error.
var ErrTranscriptionFailure = errors.New("transcription failed")

// GroqClient transcribes audio files with the whisper model hosted on
// Groq's OpenAI-compatible endpoint.
type GroqClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGroqClient(apiKey string) *GroqClient {
	return &GroqClient{
		apiKey:  apiKey,
		model:   "whisper-large-v3-turbo",
		baseURL: transcriptionURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *GroqClient) WithBaseURL(url string) *GroqClient {
	c.baseURL = url
	return c
}

// Transcribe uploads the audio file at path and returns the transcript
// text. The caller owns the file and its cleanup.
func (c *GroqClient) Transcribe(ctx context.Context, path string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: GROQ_API_KEY not set", ErrTranscriptionFailure)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open audio: %v", ErrTranscriptionFailure, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("%w: build form: %v", ErrTranscriptionFailure, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("%w: copy audio: %v", ErrTranscriptionFailure, err)
	}

	fields := map[string]string{
		"model":           c.model,
		"prompt":          speechPrompt,
		"response_format": "json",
		"language":        "en",
		"temperature":     "0",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", fmt.Errorf("%w: build form: %v", ErrTranscriptionFailure, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: build form: %v", ErrTranscriptionFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &body)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrTranscriptionFailure, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscriptionFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrTranscriptionFailure, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrTranscriptionFailure, resp.StatusCode)
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrTranscriptionFailure, err)
	}
	return parsed.Text, nil
}
