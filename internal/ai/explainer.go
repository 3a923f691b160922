// Package ai gera uma explicação em linguagem natural para o ranking de
// templates. A explicação é opcional: o ranking nunca depende dela.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sabq-ai/app-template-recommender/internal/models"
	"golang.org/x/time/rate"
)

// Provedores suportados
const (
	ProviderNone   = "none"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// maxPromptTemplates limita quantos templates entram no prompt
const maxPromptTemplates = 3

var ErrUnknownProvider = errors.New("provedor de IA desconhecido")

// Explainer explica por que os templates foram ranqueados nesta ordem
type Explainer interface {
	Explain(ctx context.Context, analysis models.ContentAnalysis, recs []models.Recommendation) (string, error)
}

// Config configura o Explainer
type Config struct {
	Provider      string
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	// RatePerMinute limita as chamadas ao provedor. Zero desliga o limite.
	RatePerMinute int
	Language      string
}

// NewExplainer cria o Explainer configurado. Retorna nil, nil quando o
// provedor é "none" ou vazio.
func NewExplainer(ctx context.Context, cfg Config) (Explainer, error) {
	var (
		exp Explainer
		err error
	)

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderNone:
		return nil, nil
	case ProviderGemini:
		exp, err = NewGeminiExplainer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Language)
	case ProviderOpenAI:
		exp, err = NewOpenAIExplainer(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.Language)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RatePerMinute > 0 {
		exp = NewRateLimited(exp, cfg.RatePerMinute)
	}
	return exp, nil
}

// RateLimited limita a vazão de chamadas a outro Explainer
type RateLimited struct {
	next    Explainer
	limiter *rate.Limiter
}

// NewRateLimited permite perMinute chamadas por minuto, com rajada de 1
func NewRateLimited(next Explainer, perMinute int) *RateLimited {
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1),
	}
}

// Explain espera pelo limiter respeitando o contexto
func (r *RateLimited) Explain(ctx context.Context, analysis models.ContentAnalysis, recs []models.Recommendation) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("limite de chamadas de IA: %w", err)
	}
	return r.next.Explain(ctx, analysis, recs)
}

func languageOrDefault(lang string) string {
	if l := strings.TrimSpace(lang); l != "" {
		return l
	}
	return "Arabic"
}

// buildPrompt descreve a análise e os melhores templates para o modelo
func buildPrompt(analysis models.ContentAnalysis, recs []models.Recommendation, language string) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "A news editor is choosing a layout template for %d article(s).\n", analysis.ItemCount)
	fmt.Fprintf(b, "Content signals: images=%t, video=%t, breaking=%t, distinct categories=%d.\n",
		analysis.HasImages, analysis.HasVideo, analysis.HasBreaking, analysis.UniqueCategories)
	b.WriteString("Ranked templates (best first):\n")

	for i, rec := range recs {
		if i >= maxPromptTemplates {
			break
		}
		fmt.Fprintf(b, "%d. %s (%s) score=%.0f: %s\n",
			i+1, rec.Template.ID, rec.Template.Kind, rec.Score, strings.Join(rec.Reasoning, "; "))
	}

	fmt.Fprintf(b, "\nIn %s, write two short sentences telling the editor why the first template fits best. "+
		"Do not invent signals that are not listed.", languageOrDefault(language))
	return b.String()
}
