package recommend

import (
	"fmt"

	"github.com/sabq-ai/app-template-recommender/internal/models"
)

// Pesos fixos das contribuições. Alterar qualquer valor muda a ordem
// esperada nos testes de regressão.
const (
	WeightBreaking        = 30.0
	WeightFeatured        = 30.0
	WeightGallery         = 25.0
	WeightVideo           = 25.0
	WeightManyItems       = 20.0
	WeightFewItems        = 15.0
	WeightMixedCategories = 15.0
	WeightSingleCategory  = 10.0
	WeightTextOnly        = 15.0

	WeightKindFit          = 10.0
	PenaltySingleKindMulti = -100.0
	PenaltyOverCapacity    = -15.0

	// GalleryMinItems é o mínimo de itens para a tag gallery pontuar
	GalleryMinItems = 3
	// ManyItemsMin é o mínimo de itens para a tag many-items pontuar
	ManyItemsMin = 4
	// FewItemsMax é o máximo de itens para a tag few-items pontuar
	FewItemsMax = 4
)

// tagRule associa uma tag de conteúdo a um predicado sobre a análise
type tagRule struct {
	Weight  float64
	Reason  string
	Applies func(a models.ContentAnalysis) bool
}

// tagRules é a tabela completa de regras; toda tag de models.AllTags() tem entrada
var tagRules = map[models.ContentTag]tagRule{
	models.TagBreaking: {
		Weight:  WeightBreaking,
		Reason:  "matches breaking-news content",
		Applies: func(a models.ContentAnalysis) bool { return a.HasBreaking },
	},
	models.TagFeatured: {
		Weight:  WeightFeatured,
		Reason:  "built for a single featured story",
		Applies: func(a models.ContentAnalysis) bool { return a.ItemCount == 1 },
	},
	models.TagGallery: {
		Weight:  WeightGallery,
		Reason:  "supports multiple images",
		Applies: func(a models.ContentAnalysis) bool { return a.HasImages && a.ItemCount >= GalleryMinItems },
	},
	models.TagVideo: {
		Weight:  WeightVideo,
		Reason:  "supports video content",
		Applies: func(a models.ContentAnalysis) bool { return a.HasVideo },
	},
	models.TagManyItems: {
		Weight:  WeightManyItems,
		Reason:  "designed for many items",
		Applies: func(a models.ContentAnalysis) bool { return a.ItemCount >= ManyItemsMin },
	},
	models.TagFewItems: {
		Weight:  WeightFewItems,
		Reason:  "fits a short list of items",
		Applies: func(a models.ContentAnalysis) bool { return a.ItemCount >= 2 && a.ItemCount <= FewItemsMax },
	},
	models.TagMixedCategories: {
		Weight:  WeightMixedCategories,
		Reason:  "handles mixed categories",
		Applies: func(a models.ContentAnalysis) bool { return a.UniqueCategories >= 2 },
	},
	models.TagSingleCategory: {
		Weight:  WeightSingleCategory,
		Reason:  "suits a single-category collection",
		Applies: func(a models.ContentAnalysis) bool { return a.UniqueCategories == 1 },
	},
	models.TagTextOnly: {
		Weight:  WeightTextOnly,
		Reason:  "optimized for text-only content",
		Applies: func(a models.ContentAnalysis) bool { return a.ItemCount > 0 && !a.HasImages && !a.HasVideo },
	},
}

// contribution é uma parcela do score com sua justificativa
type contribution struct {
	weight float64
	reason string
}

// kindContribution pontua a compatibilidade entre o kind e a quantidade de itens
func kindContribution(kind models.TemplateKind, a models.ContentAnalysis) (contribution, bool) {
	switch {
	case kind.IsSingle() && a.ItemCount == 1:
		return contribution{WeightKindFit, "renders exactly one item"}, true
	case kind.IsSingle() && a.ItemCount > 1:
		return contribution{
			PenaltySingleKindMulti,
			fmt.Sprintf("renders a single item but %d were supplied", a.ItemCount),
		}, true
	case !kind.IsSingle() && a.ItemCount >= 2:
		return contribution{WeightKindFit, "renders item collections"}, true
	}
	return contribution{}, false
}

// capacityContribution penaliza conteúdo acima do max_items informativo
func capacityContribution(perf models.Performance, a models.ContentAnalysis) (contribution, bool) {
	if perf.MaxItems > 0 && a.ItemCount > perf.MaxItems {
		return contribution{
			PenaltyOverCapacity,
			fmt.Sprintf("exceeds the recommended item count (%d)", perf.MaxItems),
		}, true
	}
	return contribution{}, false
}
