package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sabq-ai/app-template-recommender/internal/models"
	"github.com/sabq-ai/app-template-recommender/internal/services"
)

// RecommendationHandler expõe o manifesto, a análise, o ranking e a pré-visualização
type RecommendationHandler struct {
	service *services.RecommendationService
}

// NewRecommendationHandler cria o handler
func NewRecommendationHandler(service *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// ListTemplates godoc
// @Summary Lista os templates do manifesto
// @Description Retorna o manifesto vigente na ordem declarada.
// @Tags templates
// @Produce json
// @Success 200 {object} models.TemplateListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/templates [get]
func (h *RecommendationHandler) ListTemplates(c *gin.Context) {
	m, err := h.service.Manifest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TemplateListResponse{
		Version:   m.Version,
		Total:     len(m.Templates),
		Templates: m.Templates,
	})
}

// GetTemplate godoc
// @Summary Busca um template pelo ID
// @Tags templates
// @Produce json
// @Param id path string true "ID do template" example("grid-gallery")
// @Success 200 {object} models.TemplateDescriptor
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/templates/{id} [get]
func (h *RecommendationHandler) GetTemplate(c *gin.Context) {
	tpl, err := h.service.Template(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// Analyze godoc
// @Summary Analisa uma lista de itens
// @Description Calcula os sinais de conteúdo (quantidade, imagens, vídeo, urgência, categorias distintas).
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body models.AnalyzeRequest true "Itens a analisar"
// @Success 200 {object} models.ContentAnalysis
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse "Item sem id"
// @Router /api/v1/analyze [post]
func (h *RecommendationHandler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	analysis, err := h.service.Analyze(c.Request.Context(), req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// Recommend godoc
// @Summary Recomenda templates para um conjunto de itens
// @Description ## Recomendação de templates
// @Description
// @Description Os itens podem vir inline (`items`), por ID na fonte de conteúdo (`item_ids`) ou por nome de dataset do playground (`dataset`), nesta precedência.
// @Description
// @Description O resultado é ordenado por score (0-100) decrescente; empates mantêm a ordem do manifesto.
// @Description Com `explain=true` e um provedor de IA configurado, inclui uma explicação curta; falhas do provedor apenas omitem o campo.
// @Description
// @Description Em erro de validação (422) a resposta traz `fallback`: os templates na ordem do manifesto, sem scores.
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body models.RecommendRequest true "Itens e opções"
// @Success 200 {object} models.RecommendResponse
// @Failure 400 {object} models.ErrorResponse "Corpo inválido ou nenhum item informado"
// @Failure 404 {object} models.ErrorResponse "Dataset não encontrado"
// @Failure 422 {object} models.ErrorResponse "Manifesto ou itens inválidos, com fallback"
// @Failure 503 {object} models.ErrorResponse "Fonte de conteúdo não configurada"
// @Router /api/v1/recommendations [post]
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req models.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	resp, err := h.service.Recommend(ctx, req)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			_ = c.Error(err)
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Error:    err.Error(),
				Field:    ve.Field,
				Fallback: h.service.Fallback(ctx),
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Preview godoc
// @Summary Pré-visualiza um template com itens
// @Description Renderiza o template do manifesto. Templates hero e spotlight aceitam exatamente um item.
// @Tags recommendations
// @Accept json
// @Produce html
// @Produce json
// @Param request body models.PreviewRequest true "Template e itens"
// @Param format query string false "html (padrão) ou json" Enums(html, json)
// @Success 200 {object} models.PreviewResponse "Quando format=json"
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse "Kind de item único com vários itens"
// @Router /api/v1/preview [post]
func (h *RecommendationHandler) Preview(c *gin.Context) {
	var req models.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	html, err := h.service.Preview(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, models.PreviewResponse{TemplateID: req.TemplateID, HTML: html})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
