package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	_ "github.com/sabq-ai/app-template-recommender/docs"
	"github.com/sabq-ai/app-template-recommender/internal/ai"
	"github.com/sabq-ai/app-template-recommender/internal/api/handlers"
	"github.com/sabq-ai/app-template-recommender/internal/api/routes"
	"github.com/sabq-ai/app-template-recommender/internal/config"
	"github.com/sabq-ai/app-template-recommender/internal/content"
	"github.com/sabq-ai/app-template-recommender/internal/manifest"
	"github.com/sabq-ai/app-template-recommender/internal/observability"
	"github.com/sabq-ai/app-template-recommender/internal/services"
)

// @title           Template Recommender API
// @version         1.0
// @description     Recomenda templates de layout para conjuntos de notícias do CMS سبق الذكية, com análise de conteúdo, ranking explicável e pré-visualização.

// @contact.name   Sabq Engineering
// @contact.url    https://sabq.org

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

func main() {
	cfg := config.LoadConfig()
	observability.InitLogger(os.Stdout, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("configuração inválida", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, cfg)
	if err != nil {
		slog.Error("tracing desabilitado", "error", err)
		shutdownTracer = func(context.Context) error { return nil }
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(flushCtx); err != nil {
			slog.Error("erro ao encerrar tracer", "error", err)
		}
	}()

	metrics := observability.NewMetrics()
	health := handlers.NewHealthHandler(cfg.Version)

	var rdb *redis.Client
	if cfg.UsesRedis() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
	}

	// Manifesto
	var source manifest.Source = manifest.DefaultSource{}
	switch cfg.ManifestSource {
	case config.ManifestSourceFile:
		source = manifest.NewFileSource(cfg.ManifestPath)
	case config.ManifestSourceRedis:
		store := manifest.NewRedisStore(rdb, cfg.ManifestRedisKey)
		source = store
		health.Require("redis", store.Ping)
	}
	provider := manifest.NewProvider(source, time.Duration(cfg.ManifestTTLMinutes)*time.Minute)
	health.Require("manifest", func(ctx context.Context) error {
		_, err := provider.Get(ctx)
		return err
	})

	// Conteúdo
	var contentSource content.Source
	if cfg.ContentSource == config.ContentSourceTypesense {
		ts := content.NewTypesenseSource(
			content.NewTypesenseClient(cfg.TypesenseProtocol, cfg.TypesenseHost, cfg.TypesensePort, cfg.TypesenseAPIKey),
			cfg.ContentCollection,
		)
		contentSource = ts
		health.Observe("typesense", ts.Ping)
	}

	var datasets services.DatasetRepository
	if cfg.DatasetsDBPath != "" {
		store, err := content.OpenDatasetStore(cfg.DatasetsDBPath)
		if err != nil {
			slog.Warn("playground desabilitado: erro ao abrir banco de datasets", "error", err, "path", cfg.DatasetsDBPath)
		} else {
			defer store.Close()
			datasets = store
			health.Observe("datasets", store.Ping)
		}
	}

	// IA
	explainer, err := ai.NewExplainer(ctx, ai.Config{
		Provider:      cfg.AIProvider,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiModel:   cfg.GeminiChatModel,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIModel:   cfg.OpenAIModel,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		RatePerMinute: cfg.AIRatePerMinute,
		Language:      cfg.AILanguage,
	})
	if err != nil {
		slog.Warn("explicações por IA desabilitadas", "error", err, "provider", cfg.AIProvider)
		explainer = nil
	}

	service := services.NewRecommendationService(services.RecommendationOptions{
		Manifests:      provider,
		Content:        contentSource,
		Datasets:       datasets,
		Explainer:      explainer,
		Metrics:        metrics,
		CacheSize:      cfg.ExplanationCacheSize,
		ExplanationTTL: time.Duration(cfg.ExplanationCacheTTLMinutes) * time.Minute,
		DefaultLimit:   cfg.RecommendDefaultLimit,
	})

	if _, err := provider.Get(ctx); err != nil {
		slog.Warn("manifesto indisponível na inicialização", "error", err)
	}

	gin.SetMode(gin.ReleaseMode)
	r := routes.SetupRouter(cfg, routes.Dependencies{
		Service: service,
		Health:  health,
		Metrics: metrics,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("servidor iniciado", "port", cfg.ServerPort, "manifest_source", cfg.ManifestSource,
			"content_source", cfg.ContentSource, "ai_provider", cfg.AIProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("erro ao iniciar servidor", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("erro ao encerrar servidor", "error", err)
	}
	slog.Info("servidor encerrado")
}
