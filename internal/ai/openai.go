package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sabq-ai/app-template-recommender/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You help newsroom editors pick layout templates. Answer briefly and plainly."

// OpenAIExplainer usa a API de Chat Completions (ou compatível via BaseURL)
type OpenAIExplainer struct {
	client   *openai.Client
	model    string
	language string
}

// NewOpenAIExplainer cria o client da OpenAI
func NewOpenAIExplainer(apiKey, model, baseURL, language string) (*OpenAIExplainer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY não configurada")
	}
	if model == "" {
		return nil, fmt.Errorf("OPENAI_MODEL não configurado")
	}

	var c *openai.Client
	if baseURL != "" {
		cc := openai.DefaultConfig(apiKey)
		cc.BaseURL = baseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(apiKey)
	}
	return &OpenAIExplainer{client: c, model: model, language: language}, nil
}

// Explain implementa Explainer
func (o *OpenAIExplainer) Explain(ctx context.Context, analysis models.ContentAnalysis, recs []models.Recommendation) (string, error) {
	if len(recs) == 0 {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(analysis, recs, o.language)},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("erro na OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
