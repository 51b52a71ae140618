package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/awahyudi/facility-portal/internal/application/port"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Reporter implements port.ReportGenerator using OpenAI chat completions.
type Reporter struct {
	client  *openai.Client
	model   string
	prompts *PromptConfig
	logger  *zap.Logger
}

// NewReporter creates a new OpenAI report generator
func NewReporter(apiKey, model string, prompts *PromptConfig, logger *zap.Logger) *Reporter {
	return &Reporter{
		client:  openai.NewClient(apiKey),
		model:   model,
		prompts: prompts,
		logger:  logger,
	}
}

// GenerateDailyReport renders the prompt template with the day's summaries
// and returns the model's plain-text report.
func (r *Reporter) GenerateDailyReport(ctx context.Context, input port.ReportInput) (string, error) {
	r.logger.Debug("Generating daily report", zap.String("date", input.Date))

	userPrompt, err := renderTemplate(r.prompts.DailyReport.UserTemplate, input)
	if err != nil {
		return "", fmt.Errorf("failed to render report prompt: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model:       r.model,
		Temperature: r.prompts.DailyReport.Temperature,
		MaxTokens:   r.prompts.DailyReport.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: r.prompts.DailyReport.System,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
	}

	resp, err := r.client.CreateChatCompletion(ctx, req)
	if err != nil {
		r.logger.Error("OpenAI API call failed", zap.Error(err))
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	report := strings.TrimSpace(resp.Choices[0].Message.Content)
	if report == "" {
		return "", fmt.Errorf("empty report from OpenAI")
	}

	r.logger.Info("Daily report generated",
		zap.String("date", input.Date),
		zap.Int("length", len(report)),
		zap.Int("tokens_used", resp.Usage.TotalTokens))

	return report, nil
}

// Verify interface compliance
var _ port.ReportGenerator = (*Reporter)(nil)
