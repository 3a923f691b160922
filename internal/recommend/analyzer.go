// Package recommend implementa o motor de recomendação de templates:
// análise de conteúdo (Analyze) e pontuação de templates do manifesto (Recommend).
//
// Todas as funções são puras: não fazem I/O, não guardam estado entre chamadas
// e nunca alteram os itens ou descriptors recebidos.
package recommend

import (
	"github.com/sabq-ai/app-template-recommender/internal/models"
	"github.com/sabq-ai/app-template-recommender/internal/utils"
)

// Analyze calcula os sinais agregados de uma lista de itens.
// Lista vazia é válida e retorna a análise zerada.
func Analyze(items []models.ContentItem) models.ContentAnalysis {
	analysis := models.ContentAnalysis{ItemCount: len(items)}

	categories := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.HasImage() {
			analysis.HasImages = true
		}
		if item.HasVideo() {
			analysis.HasVideo = true
		}
		if item.IsBreaking() {
			analysis.HasBreaking = true
		}
		// IDs são comparados como vêm (só trim e NFC); itens sem categoria não contam
		if cat := utils.CategoryKey(item.CategoryID); cat != "" {
			categories[cat] = struct{}{}
		}
	}
	analysis.UniqueCategories = len(categories)

	return analysis
}
