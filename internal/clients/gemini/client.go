// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/wealthflow/wealthflow/internal/common"
	"github.com/wealthflow/wealthflow/internal/interfaces"
	"github.com/wealthflow/wealthflow/internal/models"
)

const (
	DefaultModel     = "gemini-2.5-flash"
	DefaultRateLimit = 2 // requests per second
)

// Client implements the AdvisorClient interface
type Client struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	logger  *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, interfaces.ErrNotConfigured
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client:  genaiClient,
		model:   DefaultModel,
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GenerateContent generates free-text content from a prompt
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	c.logger.Debug().Str("model", c.model).Msg("Generating content")

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(result)
}

// FetchQuotes looks up current prices for the given symbols using
// Gemini search grounding. The response is validated before use:
// schema mismatches fail closed without fabricating quotes.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) ([]models.StockQuote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	prompt := buildQuotePrompt(symbols)
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	c.logger.Debug().Str("model", c.model).Int("symbols", len(symbols)).Msg("Fetching quotes")

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quotes: %w", err)
	}

	text, err := extractTextFromResponse(result)
	if err != nil {
		return nil, err
	}

	quotes, err := parseQuotes(text)
	if err != nil {
		c.logger.Warn().Err(err).Str("response", truncate(text, 200)).Msg("Quote response failed validation")
		return nil, err
	}

	return quotes, nil
}

// buildQuotePrompt asks for a strict JSON array of quote objects.
func buildQuotePrompt(symbols []string) string {
	return fmt.Sprintf(`Find the current stock price for these symbols: %s.
Return the result as a JSON array of objects where each object has "symbol", "price", and "currency".
If it is a Taiwan stock (ending in .TW), assume TWD. If US stock, assume USD.
Do not use markdown formatting.`, strings.Join(symbols, ", "))
}

// parseQuotes decodes and validates the quote payload. Every entry
// must carry a non-empty symbol and a non-negative price; a single bad
// entry rejects the whole response.
func parseQuotes(text string) ([]models.StockQuote, error) {
	cleaned := stripCodeFences(text)

	var quotes []models.StockQuote
	if err := json.Unmarshal([]byte(cleaned), &quotes); err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrMalformedResponse, err)
	}

	for i, q := range quotes {
		if strings.TrimSpace(q.Symbol) == "" {
			return nil, fmt.Errorf("%w: quote %d has no symbol", interfaces.ErrMalformedResponse, i)
		}
		if q.Price.IsNegative() {
			return nil, fmt.Errorf("%w: quote %d has negative price %s", interfaces.ErrMalformedResponse, i, q.Price)
		}
	}

	return quotes, nil
}

// stripCodeFences removes incidental markdown code-fence markup that
// the model emits despite instructions.
func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Ensure Client implements AdvisorClient
var _ interfaces.AdvisorClient = (*Client)(nil)
