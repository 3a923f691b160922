package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/sabq-ai/app-template-recommender/internal/models"
)

// Recommend analisa os itens e pontua cada template do manifesto.
//
// O resultado é ordenado por score decrescente; empates mantêm a ordem do
// manifesto. Templates sem nenhuma contribuição aparecem com score 0.
// Manifesto vazio retorna lista vazia. Descriptors inválidos retornam
// *models.ValidationError e nenhuma recomendação.
func Recommend(items []models.ContentItem, manifest []models.TemplateDescriptor, opts models.RecommendOptions) ([]models.Recommendation, error) {
	if err := ValidateItems(items); err != nil {
		return nil, err
	}
	return RecommendWithAnalysis(Analyze(items), manifest, opts)
}

// RecommendWithAnalysis pontua o manifesto a partir de uma análise já calculada
func RecommendWithAnalysis(analysis models.ContentAnalysis, manifest []models.TemplateDescriptor, opts models.RecommendOptions) ([]models.Recommendation, error) {
	if opts.Limit < 0 {
		return nil, &models.ValidationError{Field: "limit", Reason: fmt.Sprintf("deve ser >= 0, recebido %d", opts.Limit)}
	}
	if err := ValidateManifest(manifest); err != nil {
		return nil, err
	}

	recs := make([]models.Recommendation, 0, len(manifest))
	for _, tpl := range manifest {
		score, reasoning := Score(tpl, analysis)
		recs = append(recs, models.Recommendation{
			Template:  tpl.Clone(),
			Score:     score,
			Reasoning: reasoning,
		})
	}

	RankRecommendations(recs)

	if opts.Limit > 0 && len(recs) > opts.Limit {
		recs = recs[:opts.Limit]
	}

	return recs, nil
}

// Score calcula o score (0-100) de um template e as justificativas, na ordem:
// kind, tags de best_for (na ordem declarada, sem repetição), capacidade.
func Score(tpl models.TemplateDescriptor, analysis models.ContentAnalysis) (float64, []string) {
	contributions := make([]contribution, 0, len(tpl.BestFor)+2)

	if c, ok := kindContribution(tpl.Kind, analysis); ok {
		contributions = append(contributions, c)
	}

	seen := make(map[models.ContentTag]bool, len(tpl.BestFor))
	for _, tag := range tpl.BestFor {
		if seen[tag] {
			continue
		}
		seen[tag] = true

		rule, ok := tagRules[tag]
		if !ok || !rule.Applies(analysis) {
			continue
		}
		contributions = append(contributions, contribution{rule.Weight, rule.Reason})
	}

	if c, ok := capacityContribution(tpl.Performance, analysis); ok {
		contributions = append(contributions, c)
	}

	raw := 0.0
	reasoning := make([]string, 0, len(contributions))
	for _, c := range contributions {
		raw += c.weight
		reasoning = append(reasoning, c.reason)
	}

	return clamp(raw), reasoning
}

// RankRecommendations ordena por score decrescente preservando a ordem em empates
func RankRecommendations(recs []models.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
}

func clamp(score float64) float64 {
	return math.Max(0, math.Min(models.MaxScore, score))
}
