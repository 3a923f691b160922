package manifest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sabq-ai/app-template-recommender/internal/models"
)

// Provider mantém o manifesto em memória e recarrega da Source após o TTL.
// Se a recarga falhar, a última versão válida continua sendo servida.
type Provider struct {
	source   Source
	ttl      time.Duration
	mu       sync.RWMutex
	current  *models.Manifest
	loadedAt time.Time
	now      func() time.Time
}

// NewProvider cria um Provider. ttl <= 0 mantém o manifesto até Invalidate.
func NewProvider(source Source, ttl time.Duration) *Provider {
	return &Provider{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get retorna uma cópia do manifesto vigente
func (p *Provider) Get(ctx context.Context) (*models.Manifest, error) {
	p.mu.RLock()
	if p.current != nil && !p.expired() {
		m := cloneManifest(p.current)
		p.mu.RUnlock()
		return m, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	// Outra goroutine pode ter recarregado enquanto esperávamos o lock
	if p.current != nil && !p.expired() {
		return cloneManifest(p.current), nil
	}

	m, err := p.source.Load(ctx)
	if err != nil {
		if p.current != nil {
			slog.WarnContext(ctx, "falha ao recarregar manifesto, usando versão anterior",
				"error", err, "version", p.current.Version)
			p.loadedAt = p.now()
			return cloneManifest(p.current), nil
		}
		return nil, err
	}

	p.current = m
	p.loadedAt = p.now()
	slog.InfoContext(ctx, "manifesto carregado", "version", m.Version, "templates", len(m.Templates))
	return cloneManifest(m), nil
}

// Invalidate força a recarga na próxima chamada de Get
func (p *Provider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadedAt = time.Time{}
}

// Loaded informa se algum manifesto já foi carregado
func (p *Provider) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current != nil
}

func (p *Provider) expired() bool {
	if p.loadedAt.IsZero() {
		return true
	}
	if p.ttl <= 0 {
		return false
	}
	return p.now().Sub(p.loadedAt) >= p.ttl
}

func cloneManifest(m *models.Manifest) *models.Manifest {
	out := &models.Manifest{
		Version:   m.Version,
		Templates: make([]models.TemplateDescriptor, len(m.Templates)),
	}
	for i, t := range m.Templates {
		out.Templates[i] = t.Clone()
	}
	return out
}
