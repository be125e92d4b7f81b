// Package extract recovers a well-formed JSON payload from the raw text a
// generation model returns. Models reliably wrap JSON in prose or
// Markdown code fences despite explicit instructions; this package strips
// the three observed wrappers (leading prose, trailing prose, fenced
// blocks) and nothing more. Residual malformation is a hard failure, not
// something to repair.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/saiisback/empower/internal/models"
)

// ErrMalformedResponse reports that no parseable JSON payload of the
// expected shape could be recovered from the model output.
var ErrMalformedResponse = errors.New("malformed model response")

// Shape is the expected top-level JSON structure for a request kind.
type Shape int

const (
	// ShapeObject expects a single JSON object.
	ShapeObject Shape = iota
	// ShapeArray expects a JSON array.
	ShapeArray
	// ShapeGame expects an object carrying a non-empty htmlCode field.
	ShapeGame
)

// ShapeFor maps a generation kind to its expected payload shape.
func ShapeFor(kind models.Kind) Shape {
	switch kind {
	case models.KindGame:
		return ShapeGame
	case models.KindQuiz:
		return ShapeArray
	default:
		return ShapeObject
	}
}

// Extract recovers the JSON payload from raw model output.
//
// The steps run in a fixed order: trim, cut everything after the first
// "```json" marker, cut everything before the first remaining "```"
// marker, then slice from the first '{' or '[' and parse. The first-brace
// scan runs on whatever survives fence stripping, so prose containing a
// brace before a real fence wins; that matches the original behavior and
// is a known limitation.
func Extract(raw string, shape Shape) (json.RawMessage, error) {
	text := strings.TrimSpace(raw)

	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = strings.TrimSpace(text[idx+len("```json"):])
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		text = strings.TrimSpace(text[:idx])
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return nil, fmt.Errorf("%w: no JSON object or array found", ErrMalformedResponse)
	}
	text = text[start:]

	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if err := checkShape(value, shape); err != nil {
		return nil, err
	}
	return json.RawMessage(text), nil
}

func checkShape(value any, shape Shape) error {
	switch shape {
	case ShapeArray:
		if _, ok := value.([]any); !ok {
			return fmt.Errorf("%w: expected a JSON array", ErrMalformedResponse)
		}
	case ShapeObject:
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("%w: expected a JSON object", ErrMalformedResponse)
		}
	case ShapeGame:
		obj, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: expected a JSON object", ErrMalformedResponse)
		}
		html, ok := obj["htmlCode"].(string)
		if !ok || html == "" {
			return fmt.Errorf("%w: missing or empty htmlCode", ErrMalformedResponse)
		}
	}
	return nil
}
