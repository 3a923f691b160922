package handlers

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Check verifica uma dependência externa
type Check func(ctx context.Context) error

// HealthHandler gerencia os endpoints de health check
type HealthHandler struct {
	version string
	// required derrubam a readiness; optional só aparecem no /health
	required map[string]Check
	optional map[string]Check
}

// NewHealthHandler cria um novo handler de health check
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		version:  version,
		required: make(map[string]Check),
		optional: make(map[string]Check),
	}
}

// Require registra uma dependência necessária para receber tráfego
func (h *HealthHandler) Require(name string, check Check) *HealthHandler {
	h.required[name] = check
	return h
}

// Observe registra uma dependência reportada apenas no /health
func (h *HealthHandler) Observe(name string, check Check) *HealthHandler {
	h.optional[name] = check
	return h
}

// HealthResponse representa a resposta do health check
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// Liveness godoc
// @Summary Liveness probe endpoint
// @Description Verifica se a aplicação está viva (sem checagem de dependências externas)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /liveness [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now().Unix(),
	})
}

// Readiness godoc
// @Summary Readiness probe endpoint
// @Description Verifica se a aplicação está pronta para receber tráfego (manifesto e dependências obrigatórias)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readiness [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ready",
		Checks:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	if failed := runChecks(ctx, h.required, response.Checks); len(failed) > 0 {
		response.Status = "not_ready"
		response.Error = "dependências indisponíveis: " + strings.Join(failed, ", ")
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Health godoc
// @Summary Comprehensive health check endpoint
// @Description Verifica a saúde completa da aplicação (para monitoramento externo de uptime)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Checks:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	failed := runChecks(ctx, h.required, response.Checks)
	degraded := runChecks(ctx, h.optional, response.Checks)

	statusCode := http.StatusOK
	switch {
	case len(failed) > 0:
		response.Status = "unhealthy"
		response.Error = "dependências indisponíveis: " + strings.Join(failed, ", ")
		statusCode = http.StatusServiceUnavailable
	case len(degraded) > 0:
		response.Status = "degraded"
		response.Error = "dependências opcionais indisponíveis: " + strings.Join(degraded, ", ")
	}

	c.JSON(statusCode, response)
}

// runChecks executa as verificações e devolve os nomes que falharam
func runChecks(ctx context.Context, checks map[string]Check, out map[string]string) []string {
	var failed []string
	for name, check := range checks {
		if err := check(ctx); err != nil {
			out[name] = "failed"
			failed = append(failed, name)
			continue
		}
		out[name] = "ok"
	}
	sort.Strings(failed)
	return failed
}
