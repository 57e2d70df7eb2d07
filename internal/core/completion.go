package core

import (
	"context"
	"errors"
	"fmt"

	"utfpr.edu.br/menfin/internal/config"
)

// ErrEmptyResponse means the model answered but with no candidate text.
var ErrEmptyResponse = errors.New("empty or unexpected response from completion endpoint")

// APIError is a non-success answer from the completion endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Erro na API: %d - %s", e.StatusCode, e.Body)
}

// Completer turns a prompt into generated text with exactly one remote call.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewCompleter picks the backend named by cfg.GeminiTransport.
func NewCompleter(ctx context.Context, cfg config.Config) (Completer, error) {
	switch cfg.GeminiTransport {
	case config.TransportSDK:
		c, err := NewGenAICompleter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return NewRESTCompleter(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel), nil
	}
}
