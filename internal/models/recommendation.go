package models

// MaxScore é o teto do score de uma recomendação
const MaxScore = 100.0

// ContentAnalysis contém sinais agregados de uma lista de itens
type ContentAnalysis struct {
	ItemCount        int  `json:"item_count"`
	HasImages        bool `json:"has_images"`
	HasVideo         bool `json:"has_video"`
	HasBreaking      bool `json:"has_breaking"`
	UniqueCategories int  `json:"unique_categories"`
}

// Recommendation é um template candidato pontuado
type Recommendation struct {
	Template  TemplateDescriptor `json:"template"`
	Score     float64            `json:"score"`
	Reasoning []string           `json:"reasoning"`
}

// RecommendOptions ajusta uma chamada de recomendação
type RecommendOptions struct {
	// Limit trunca o resultado aos N primeiros após a ordenação.
	// Zero significa sem limite, não lista vazia: Go não distingue "ausente"
	// de 0, e o HTTP troca limit omitido ou 0 por RECOMMEND_DEFAULT_LIMIT.
	Limit int
}

// AnalyzeRequest representa o corpo de POST /api/v1/analyze
type AnalyzeRequest struct {
	Items []ContentItem `json:"items"`
}

// RecommendRequest representa o corpo de POST /api/v1/recommendations.
// Os itens vêm inline, por IDs (fonte de conteúdo) ou por nome de dataset.
type RecommendRequest struct {
	Items   []ContentItem `json:"items,omitempty"`
	ItemIDs []string      `json:"item_ids,omitempty" binding:"omitempty,max=200"`
	Dataset string        `json:"dataset,omitempty"`
	Limit   int           `json:"limit,omitempty" binding:"lte=100" example:"3"`
	Explain bool          `json:"explain,omitempty"`
}

// RecommendResponse é a resposta de recomendação
type RecommendResponse struct {
	RequestID       string           `json:"request_id,omitempty"`
	Analysis        ContentAnalysis  `json:"analysis"`
	Recommendations []Recommendation `json:"recommendations"`
	Explanation     string           `json:"explanation,omitempty"`
}

// PreviewRequest representa o corpo de POST /api/v1/preview
type PreviewRequest struct {
	TemplateID string        `json:"template_id" binding:"required"`
	Items      []ContentItem `json:"items" binding:"required,min=1"`
}
