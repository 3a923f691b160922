package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sabq-ai/app-template-recommender/internal/api/handlers"
	"github.com/sabq-ai/app-template-recommender/internal/config"
	middlewares "github.com/sabq-ai/app-template-recommender/internal/middleware"
	"github.com/sabq-ai/app-template-recommender/internal/observability"
	"github.com/sabq-ai/app-template-recommender/internal/services"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies são os componentes já construídos que o router expõe
type Dependencies struct {
	Service *services.RecommendationService
	Health  *handlers.HealthHandler
	Metrics *observability.Metrics
}

func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		middlewares.RequestID(),
		middlewares.Tracing(),
		middlewares.AccessLog(),
		corsMiddleware(cfg.CORSAllowedOrigins),
	)
	if deps.Metrics != nil {
		r.Use(middlewares.Metrics(deps.Metrics))
	}

	recommendationHandler := handlers.NewRecommendationHandler(deps.Service)
	playgroundHandler := handlers.NewPlaygroundHandler(deps.Service)

	api := r.Group("/api/v1")
	{
		api.GET("/templates", recommendationHandler.ListTemplates)
		api.GET("/templates/:id", recommendationHandler.GetTemplate)
		api.POST("/analyze", recommendationHandler.Analyze)
		api.POST("/recommendations", recommendationHandler.Recommend)
		api.POST("/preview", recommendationHandler.Preview)

		playground := api.Group("/playground")
		{
			playground.GET("/datasets", playgroundHandler.ListDatasets)
			playground.GET("/datasets/:name", playgroundHandler.GetDataset)
			playground.PUT("/datasets/:name", playgroundHandler.PutDataset)
		}
	}

	health := deps.Health
	if health == nil {
		health = handlers.NewHealthHandler(cfg.Version)
	}
	r.GET("/liveness", health.Liveness)
	r.GET("/readiness", health.Readiness)
	r.GET("/health", health.Health)

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware(allowed []string) gin.HandlerFunc {
	allowAll := len(allowed) == 0
	origins := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			allowAll = true
		}
		origins[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case origins[origin]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
