package narrative

import (
	"context"
	"strings"

	"token-scanner/src/helpers"
	"token-scanner/src/logger"
	"token-scanner/src/metrics"
	"token-scanner/src/models"

	"github.com/sashabaranov/go-openai"
)

const backendOpenAI = "openai"

// OpenAINarrator writes the analysis prose through an OpenAI compatible chat
// completion endpoint.
type OpenAINarrator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	Logger      *logger.Logger
}

// -----------------------------------------------------------------------------

func NewOpenAINarrator(cfg models.MNarrativeConfig, log *logger.Logger) *OpenAINarrator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	log.Info("Initializing OpenAI narrator (model=%s)", cfg.Model)

	return &OpenAINarrator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		Logger:      log,
	}
}

// -----------------------------------------------------------------------------

func (o *OpenAINarrator) Narrate(ctx context.Context, analysis *models.Analysis) (string, error) {
	prompt := BuildPrompt(analysis.Identifier, analysis.Profile, analysis.Tier, analysis.Coverage)

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPersona},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: o.temperature,
	}
	if o.maxTokens > 0 {
		req.MaxCompletionTokens = o.maxTokens
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		metrics.NarrativeTotal.WithLabelValues(backendOpenAI, "error").Inc()
		o.Logger.Error("OpenAI call failed for %s: %v", analysis.Identifier, err)
		return "", helpers.NewNarrativeError("chat completion failed", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		metrics.NarrativeTotal.WithLabelValues(backendOpenAI, "empty").Inc()
		return "", helpers.NewNarrativeError("chat completion returned no content", nil)
	}

	metrics.NarrativeTotal.WithLabelValues(backendOpenAI, "ok").Inc()
	o.Logger.Debug("OpenAI narrative for %s (finish_reason=%s)", analysis.Identifier, resp.Choices[0].FinishReason)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
