package models

// ErrorResponse é o corpo padrão de erro da API
type ErrorResponse struct {
	Error   string `json:"error" example:"campo inválido: manifest[1].kind (kind desconhecido: masonry)"`
	Field   string `json:"field,omitempty" example:"manifest[1].kind"`
	Details string `json:"details,omitempty"`
	// Fallback lista os templates na ordem do manifesto, para uso sem scores
	Fallback []string `json:"fallback,omitempty"`
}

// TemplateListResponse lista o manifesto vigente
type TemplateListResponse struct {
	Version   string               `json:"version,omitempty"`
	Total     int                  `json:"total"`
	Templates []TemplateDescriptor `json:"templates"`
}

// PreviewResponse é a pré-visualização em JSON
type PreviewResponse struct {
	TemplateID string `json:"template_id"`
	HTML       string `json:"html"`
}

// DatasetUpsertRequest é o corpo de PUT /api/v1/playground/datasets/:name
type DatasetUpsertRequest struct {
	Description string        `json:"description,omitempty"`
	Items       []ContentItem `json:"items" binding:"required,max=200"`
}

// DatasetListResponse lista os datasets do playground
type DatasetListResponse struct {
	Total    int              `json:"total"`
	Datasets []DatasetSummary `json:"datasets"`
}
