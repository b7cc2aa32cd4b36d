// Package advisor produces the dashboard advice sentence from the
// generative gateway, degrading to fixed text on any failure.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/wealthflow/wealthflow/internal/common"
	"github.com/wealthflow/wealthflow/internal/interfaces"
	"github.com/wealthflow/wealthflow/internal/models"
)

// Fallback sentences. Advice is decorative: no failure here is ever
// surfaced as an error to the caller.
const (
	NotConfiguredAdvice = "AI service unavailable. Please check your API settings."
	FallbackAdvice      = "Keep up the good work managing your finances!"
	DefaultAdvice       = "Keep tracking your expenses to build wealth!"
)

// Service implements interfaces.AdvisorService.
// client may be nil when no API key is configured.
type Service struct {
	client interfaces.AdvisorClient
	logger *common.Logger
}

// NewService creates a new advisor service.
func NewService(client interfaces.AdvisorClient, logger *common.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Advice generates a short encouraging sentence from the user's
// headline figures. Unconfigured, failed, and empty responses each
// degrade to their fixed fallback.
func (s *Service) Advice(ctx context.Context, summary models.FinancialSummary) string {
	if s.client == nil {
		return NotConfiguredAdvice
	}

	text, err := s.client.GenerateContent(ctx, buildAdvicePrompt(summary))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Advice generation failed; using fallback")
		return FallbackAdvice
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultAdvice
	}
	return text
}

func buildAdvicePrompt(summary models.FinancialSummary) string {
	return fmt.Sprintf(`I am a personal finance assistant.
User Stats:
- Total Assets: %s
- Net Worth: %s
- Top Expense Category: %s

Give me a short, 2-sentence encouraging advice or tip for the user.`,
		summary.TotalAssets, summary.NetWorth, summary.TopExpenseCategory)
}

// Ensure Service implements AdvisorService
var _ interfaces.AdvisorService = (*Service)(nil)
