package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sabq-ai/app-template-recommender/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecs() []models.Recommendation {
	return []models.Recommendation{
		{Template: models.TemplateDescriptor{ID: "grid-gallery", Kind: models.KindGrid}, Score: 55, Reasoning: []string{"renders item collections", "supports multiple images"}},
		{Template: models.TemplateDescriptor{ID: "list-latest", Kind: models.KindList}, Score: 30},
		{Template: models.TemplateDescriptor{ID: "carousel-media", Kind: models.KindCarousel}, Score: 25},
		{Template: models.TemplateDescriptor{ID: "hero-breaking", Kind: models.KindHero}, Score: 0},
	}
}

func TestBuildPrompt(t *testing.T) {
	analysis := models.ContentAnalysis{ItemCount: 3, HasImages: true, UniqueCategories: 2}
	prompt := buildPrompt(analysis, sampleRecs(), "")

	assert.Contains(t, prompt, "3 article(s)")
	assert.Contains(t, prompt, "images=true, video=false, breaking=false, distinct categories=2")
	assert.Contains(t, prompt, "1. grid-gallery (grid) score=55: renders item collections; supports multiple images")
	assert.Contains(t, prompt, "In Arabic")
	assert.NotContains(t, prompt, "hero-breaking", "apenas os primeiros templates entram no prompt")
}

func TestNewExplainer(t *testing.T) {
	ctx := context.Background()

	exp, err := NewExplainer(ctx, Config{Provider: "none"})
	require.NoError(t, err)
	assert.Nil(t, exp)

	exp, err = NewExplainer(ctx, Config{})
	require.NoError(t, err)
	assert.Nil(t, exp)

	_, err = NewExplainer(ctx, Config{Provider: "claude"})
	assert.ErrorIs(t, err, ErrUnknownProvider)

	_, err = NewExplainer(ctx, Config{Provider: "openai", OpenAIModel: "gpt-4o-mini"})
	assert.Error(t, err, "sem chave de API")

	exp, err = NewExplainer(ctx, Config{Provider: "OpenAI", OpenAIAPIKey: "k", OpenAIModel: "m", RatePerMinute: 30})
	require.NoError(t, err)
	_, ok := exp.(*RateLimited)
	assert.True(t, ok)
}

func TestOpenAIExplainer(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotModel = body.Model
		if assert.Len(t, body.Messages, 2) {
			assert.Contains(t, body.Messages[1].Content, "grid-gallery")
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  القالب الشبكي يناسب الصور.  "},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	exp, err := NewOpenAIExplainer("test-key", "gpt-4o-mini", srv.URL+"/v1", "")
	require.NoError(t, err)

	out, err := exp.Explain(context.Background(), models.ContentAnalysis{ItemCount: 3}, sampleRecs())
	require.NoError(t, err)
	assert.Equal(t, "القالب الشبكي يناسب الصور.", out)
	assert.Equal(t, "gpt-4o-mini", gotModel)

	out, err = exp.Explain(context.Background(), models.ContentAnalysis{}, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestParseExplanation(t *testing.T) {
	out, err := parseExplanation(`{"explanation":" ok "}`)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	_, err = parseExplanation("")
	assert.Error(t, err)

	_, err = parseExplanation("texto livre")
	assert.Error(t, err)
}

type countingExplainer struct {
	calls atomic.Int32
}

func (c *countingExplainer) Explain(context.Context, models.ContentAnalysis, []models.Recommendation) (string, error) {
	c.calls.Add(1)
	return "ok", nil
}

func TestRateLimited(t *testing.T) {
	inner := &countingExplainer{}
	// 1 por minuto: a primeira chamada usa a rajada, a segunda precisa esperar
	limited := NewRateLimited(inner, 1)

	out, err := limited.Explain(context.Background(), models.ContentAnalysis{}, sampleRecs())
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = limited.Explain(ctx, models.ContentAnalysis{}, sampleRecs())
	assert.Error(t, err)
	assert.Equal(t, int32(1), inner.calls.Load())
}
