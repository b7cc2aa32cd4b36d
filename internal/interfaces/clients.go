package interfaces

import (
	"context"
	"errors"

	"github.com/wealthflow/wealthflow/internal/models"
)

// ErrNotConfigured indicates the advisory gateway has no API key.
// Callers distinguish it from transient failures: advice degrades to a
// fixed sentence, price refresh surfaces a "check your API key" error.
var ErrNotConfigured = errors.New("advisory gateway not configured")

// ErrMalformedResponse indicates the advisory gateway returned data
// that failed schema validation. Treated like a transient failure by
// callers, but kept distinct for debugging.
var ErrMalformedResponse = errors.New("advisory gateway returned a malformed response")

// AdvisorClient provides access to the generative advisory gateway.
type AdvisorClient interface {
	// GenerateContent generates free-text content from a prompt.
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// FetchQuotes looks up current prices for the given symbols using
	// search grounding. Responses are validated before being returned;
	// schema mismatches fail closed with ErrMalformedResponse.
	FetchQuotes(ctx context.Context, symbols []string) ([]models.StockQuote, error)
}
