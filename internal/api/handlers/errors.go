package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sabq-ai/app-template-recommender/internal/models"
	"github.com/sabq-ai/app-template-recommender/internal/services"
)

// statusFor mapeia erros do domínio para status HTTP
func statusFor(err error) int {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrSingleItemKind), errors.Is(err, models.ErrEmptyRender):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrNoItems):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrTemplateNotFound), errors.Is(err, models.ErrDatasetNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNoContentSource), errors.Is(err, services.ErrDatasetsDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError escreve o ErrorResponse; erros 5xx não expõem detalhes internos
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	resp := models.ErrorResponse{Error: err.Error()}

	var ve *models.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
	}

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		slog.ErrorContext(c.Request.Context(), "erro interno", "error", err, "path", c.FullPath())
		resp.Error = "erro interno do servidor"
	}

	_ = c.Error(err)
	c.JSON(status, resp)
}

// respondBindError responde a erros de binding do corpo da requisição
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "corpo da requisição inválido",
		Details: err.Error(),
	})
}
