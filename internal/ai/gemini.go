package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sabq-ai/app-template-recommender/internal/models"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiExplainer usa o Gemini com saída estruturada
type GeminiExplainer struct {
	client   *genai.Client
	model    string
	language string
}

// NewGeminiExplainer cria o client do Gemini
func NewGeminiExplainer(ctx context.Context, apiKey, model, language string) (*GeminiExplainer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY não configurada")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar cliente Gemini: %w", err)
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiExplainer{client: client, model: model, language: language}, nil
}

// explanationSchema define a saída estruturada esperada do modelo
func explanationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"explanation": {
				Type:        genai.TypeString,
				Description: "Explicação curta para o editor",
			},
		},
		Required: []string{"explanation"},
	}
}

// Explain implementa Explainer
func (g *GeminiExplainer) Explain(ctx context.Context, analysis models.ContentAnalysis, recs []models.Recommendation) (string, error) {
	if len(recs) == 0 {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	content := genai.NewContentFromText(buildPrompt(analysis, recs, g.language), genai.RoleUser)
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   explanationSchema(),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, config)
	if err != nil {
		return "", fmt.Errorf("erro no Gemini: %w", err)
	}

	return parseExplanation(resp.Text())
}

func parseExplanation(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("resposta vazia do modelo")
	}
	var out struct {
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return "", fmt.Errorf("erro ao parsear explicação estruturada: %w", err)
	}
	return strings.TrimSpace(out.Explanation), nil
}
