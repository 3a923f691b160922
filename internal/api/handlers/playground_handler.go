package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sabq-ai/app-template-recommender/internal/models"
	"github.com/sabq-ai/app-template-recommender/internal/services"
)

// PlaygroundHandler gerencia os datasets de exemplo usados pelos editores
type PlaygroundHandler struct {
	service *services.RecommendationService
}

// NewPlaygroundHandler cria o handler
func NewPlaygroundHandler(service *services.RecommendationService) *PlaygroundHandler {
	return &PlaygroundHandler{service: service}
}

// ListDatasets godoc
// @Summary Lista os datasets do playground
// @Tags playground
// @Produce json
// @Success 200 {object} models.DatasetListResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/v1/playground/datasets [get]
func (h *PlaygroundHandler) ListDatasets(c *gin.Context) {
	list, err := h.service.ListDatasets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DatasetListResponse{Total: len(list), Datasets: list})
}

// GetDataset godoc
// @Summary Busca um dataset do playground
// @Tags playground
// @Produce json
// @Param name path string true "Nome do dataset" example("breaking-morning")
// @Success 200 {object} models.Dataset
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/playground/datasets/{name} [get]
func (h *PlaygroundHandler) GetDataset(c *gin.Context) {
	ds, err := h.service.GetDataset(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ds)
}

// PutDataset godoc
// @Summary Cria ou substitui um dataset do playground
// @Tags playground
// @Accept json
// @Produce json
// @Param name path string true "Nome do dataset" example("breaking-morning")
// @Param request body models.DatasetUpsertRequest true "Itens do dataset"
// @Success 200 {object} models.Dataset
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /api/v1/playground/datasets/{name} [put]
func (h *PlaygroundHandler) PutDataset(c *gin.Context) {
	var req models.DatasetUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ds, err := h.service.SaveDataset(c.Request.Context(), models.Dataset{
		Name:        c.Param("name"),
		Description: req.Description,
		Items:       req.Items,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ds)
}
