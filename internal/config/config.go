// Package config gerencia configurações da aplicação via variáveis de ambiente.
//
// # Variáveis de Ambiente
//
// ## Servidor
//   - SERVER_PORT: Porta HTTP (default: 8080)
//   - APP_VERSION: Versão reportada em traces e no /health (default: dev)
//   - DEPLOYMENT_ENV: Ambiente reportado nos traces (default: development)
//   - LOG_LEVEL: debug, info, warn ou error (default: info)
//   - CORS_ALLOWED_ORIGINS: Origens permitidas, separadas por vírgula (default: *)
//
// ## Manifesto
//   - MANIFEST_SOURCE: default, file ou redis (default: default)
//   - MANIFEST_PATH: Arquivo YAML/JSON quando MANIFEST_SOURCE=file
//   - MANIFEST_REDIS_KEY: Chave do manifesto no Redis (default: templates:manifest)
//   - MANIFEST_TTL_MINUTES: Tempo de cache do manifesto em minutos (default: 5)
//
// ## Redis
//   - REDIS_ADDR: Endereço do Redis (default: localhost:6379)
//   - REDIS_PASSWORD: Senha do Redis
//   - REDIS_DB: Banco do Redis (default: 0)
//
// ## Conteúdo
//   - CONTENT_SOURCE: typesense ou none (default: none)
//   - TYPESENSE_HOST: Host do servidor Typesense (default: localhost)
//   - TYPESENSE_PORT: Porta do servidor (default: 8108)
//   - TYPESENSE_API_KEY: Chave de API do Typesense
//   - TYPESENSE_PROTOCOL: Protocolo http/https (default: http)
//   - CONTENT_COLLECTION: Collection de artigos (default: articles)
//   - DATASETS_DB_PATH: Banco SQLite dos datasets do playground (default: data/datasets.db)
//
// ## IA
//   - AI_PROVIDER: gemini, openai ou none (default: none)
//   - AI_LANGUAGE: Idioma das explicações (default: Arabic)
//   - AI_RATE_PER_MINUTE: Máximo de chamadas por minuto ao provedor (default: 30)
//   - GEMINI_API_KEY: Chave da API Google Gemini
//   - GEMINI_CHAT_MODEL: Modelo do Gemini (default: gemini-2.5-flash-lite)
//   - OPENAI_API_KEY: Chave da API OpenAI
//   - OPENAI_MODEL: Modelo da OpenAI (default: gpt-4o-mini)
//   - OPENAI_BASE_URL: URL de uma API compatível com OpenAI
//   - EXPLANATION_CACHE_SIZE: Capacidade do cache de explicações (default: 500)
//   - EXPLANATION_CACHE_TTL_MINUTES: TTL do cache de explicações (default: 60)
//
// ## Recomendação
//   - RECOMMEND_DEFAULT_LIMIT: Limite usado quando a requisição não informa limit (default: 0, sem limite)
//
// ## Tracing
//   - TRACING_ENABLED: Habilita OpenTelemetry (default: false)
//   - TRACING_ENDPOINT: Endpoint OTLP gRPC (default: localhost:4317)
//   - TRACING_SAMPLE_RATIO: Fração de traces amostrados (default: 1.0)
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Valores aceitos em MANIFEST_SOURCE
const (
	ManifestSourceDefault = "default"
	ManifestSourceFile    = "file"
	ManifestSourceRedis   = "redis"
)

// Valores aceitos em CONTENT_SOURCE
const (
	ContentSourceNone      = "none"
	ContentSourceTypesense = "typesense"
)

type Config struct {
	ServerPort         string
	Version            string
	Environment        string
	LogLevel           string
	CORSAllowedOrigins []string

	// Manifesto
	ManifestSource     string
	ManifestPath       string
	ManifestRedisKey   string
	ManifestTTLMinutes int

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Conteúdo
	ContentSource     string
	TypesenseHost     string
	TypesensePort     string
	TypesenseAPIKey   string
	TypesenseProtocol string
	ContentCollection string
	DatasetsDBPath    string

	// IA
	AIProvider                 string
	AILanguage                 string
	AIRatePerMinute            int
	GeminiAPIKey               string
	GeminiChatModel            string
	OpenAIAPIKey               string
	OpenAIModel                string
	OpenAIBaseURL              string
	ExplanationCacheSize       int
	ExplanationCacheTTLMinutes int

	RecommendDefaultLimit int

	// Tracing
	TracingEnabled     bool
	TracingEndpoint    string
	TracingSampleRatio float64
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		Version:            getEnv("APP_VERSION", "dev"),
		Environment:        getEnv("DEPLOYMENT_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		ManifestSource:     strings.ToLower(getEnv("MANIFEST_SOURCE", ManifestSourceDefault)),
		ManifestPath:       getEnv("MANIFEST_PATH", ""),
		ManifestRedisKey:   getEnv("MANIFEST_REDIS_KEY", "templates:manifest"),
		ManifestTTLMinutes: getEnvInt("MANIFEST_TTL_MINUTES", 5),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		ContentSource:     strings.ToLower(getEnv("CONTENT_SOURCE", ContentSourceNone)),
		TypesenseHost:     getEnv("TYPESENSE_HOST", "localhost"),
		TypesensePort:     getEnv("TYPESENSE_PORT", "8108"),
		TypesenseAPIKey:   getEnv("TYPESENSE_API_KEY", ""),
		TypesenseProtocol: getEnv("TYPESENSE_PROTOCOL", "http"),
		ContentCollection: getEnv("CONTENT_COLLECTION", "articles"),
		DatasetsDBPath:    getEnv("DATASETS_DB_PATH", "data/datasets.db"),

		AIProvider:                 strings.ToLower(getEnv("AI_PROVIDER", "none")),
		AILanguage:                 getEnv("AI_LANGUAGE", "Arabic"),
		AIRatePerMinute:            getEnvInt("AI_RATE_PER_MINUTE", 30),
		GeminiAPIKey:               getEnv("GEMINI_API_KEY", ""),
		GeminiChatModel:            getEnv("GEMINI_CHAT_MODEL", "gemini-2.5-flash-lite"),
		OpenAIAPIKey:               getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:                getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:              getEnv("OPENAI_BASE_URL", ""),
		ExplanationCacheSize:       getEnvInt("EXPLANATION_CACHE_SIZE", 500),
		ExplanationCacheTTLMinutes: getEnvInt("EXPLANATION_CACHE_TTL_MINUTES", 60),

		RecommendDefaultLimit: getEnvInt("RECOMMEND_DEFAULT_LIMIT", 0),

		TracingEnabled:     getEnv("TRACING_ENABLED", "false") == "true",
		TracingEndpoint:    getEnv("TRACING_ENDPOINT", "localhost:4317"),
		TracingSampleRatio: getEnvFloat("TRACING_SAMPLE_RATIO", 1.0),
	}
}

// Validate verifica combinações inválidas antes de subir o servidor
func (c *Config) Validate() error {
	switch c.ManifestSource {
	case ManifestSourceDefault, ManifestSourceRedis:
	case ManifestSourceFile:
		if c.ManifestPath == "" {
			return fmt.Errorf("MANIFEST_PATH é obrigatório quando MANIFEST_SOURCE=file")
		}
	default:
		return fmt.Errorf("MANIFEST_SOURCE inválido: %q", c.ManifestSource)
	}

	switch c.ContentSource {
	case ContentSourceNone:
	case ContentSourceTypesense:
		if c.TypesenseAPIKey == "" {
			return fmt.Errorf("TYPESENSE_API_KEY é obrigatório quando CONTENT_SOURCE=typesense")
		}
	default:
		return fmt.Errorf("CONTENT_SOURCE inválido: %q", c.ContentSource)
	}

	if c.RecommendDefaultLimit < 0 {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT não pode ser negativo")
	}
	if c.TracingSampleRatio < 0 || c.TracingSampleRatio > 1 {
		return fmt.Errorf("TRACING_SAMPLE_RATIO deve estar entre 0 e 1")
	}
	return nil
}

// UsesRedis indica se algum componente precisa do Redis
func (c *Config) UsesRedis() bool {
	return c.ManifestSource == ManifestSourceRedis
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
