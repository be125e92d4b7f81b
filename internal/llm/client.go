// Package llm talks to the hosted text-generation backend. It is pure
// delegation: one synchronous call per request, no retry, no fallback
// model.
package llm

import (
	"context"
	"errors"
)

// ErrBackendUnavailable reports a missing credential or a transport or
// backend failure during generation.
var ErrBackendUnavailable = errors.New("generation backend unavailable")

// Client produces a raw text completion for a prompt.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
