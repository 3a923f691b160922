package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sabq-ai/app-template-recommender/internal/models"
	"github.com/sabq-ai/app-template-recommender/internal/recommend"
)

// DefaultRedisKey é a chave padrão do manifesto no Redis
const DefaultRedisKey = "templates:manifest"

// ErrManifestNotFound indica que o manifesto não foi publicado no Redis
var ErrManifestNotFound = errors.New("manifesto não encontrado no Redis")

// RedisStore guarda o manifesto como JSON em uma chave do Redis
type RedisStore struct {
	rdb *redis.Client
	key string
}

// NewRedisStore cria um RedisStore; key vazia usa DefaultRedisKey
func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{rdb: rdb, key: key}
}

// Key retorna a chave usada pelo store
func (s *RedisStore) Key() string {
	return s.key
}

// Load lê e valida o manifesto publicado
func (s *RedisStore) Load(ctx context.Context) (*models.Manifest, error) {
	b, err := s.rdb.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, ErrManifestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler manifesto do Redis: %w", err)
	}
	return Parse(b, FormatJSON)
}

// Save valida e publica o manifesto, sem expiração
func (s *RedisStore) Save(ctx context.Context, m *models.Manifest) error {
	if err := recommend.ValidateManifest(m.Templates); err != nil {
		return err
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key, b, 0).Err()
}

// Ping verifica a conexão com o Redis
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
