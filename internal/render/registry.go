package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/sabq-ai/app-template-recommender/internal/models"
)

// Renderer desenha um template para um Request
type Renderer interface {
	Render(w io.Writer, tpl models.TemplateDescriptor, req Request) error
}

// RendererFunc adapta uma função a Renderer
type RendererFunc func(w io.Writer, tpl models.TemplateDescriptor, req Request) error

func (f RendererFunc) Render(w io.Writer, tpl models.TemplateDescriptor, req Request) error {
	return f(w, tpl, req)
}

// Registry mapeia IDs de template para renderizadores, com fallback por kind.
// É populado na inicialização e lido concorrentemente pelos handlers.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Renderer
	byKind map[models.TemplateKind]Renderer
}

// NewRegistry cria um registry com os renderizadores HTML padrão para cada kind
func NewRegistry() *Registry {
	r := &Registry{
		byID:   make(map[string]Renderer),
		byKind: make(map[models.TemplateKind]Renderer),
	}
	for _, kind := range models.AllKinds() {
		r.RegisterKind(kind, NewHTMLRenderer(kind))
	}
	return r
}

// Register associa um renderizador a um template específico
func (r *Registry) Register(templateID string, renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[templateID] = renderer
}

// RegisterKind substitui o renderizador padrão de um kind
func (r *Registry) RegisterKind(kind models.TemplateKind, renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKind[kind] = renderer
}

// Lookup retorna o renderizador do template (por ID, depois por kind)
func (r *Registry) Lookup(tpl models.TemplateDescriptor) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if renderer, ok := r.byID[tpl.ID]; ok {
		return renderer, nil
	}
	if renderer, ok := r.byKind[tpl.Kind]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("nenhum renderizador para template %q (kind %q)", tpl.ID, tpl.Kind)
}

// Render monta o Request de acordo com o kind e despacha para o renderizador
func (r *Registry) Render(w io.Writer, tpl models.TemplateDescriptor, items []models.ContentItem) error {
	req, err := NewRequest(tpl.Kind, items)
	if err != nil {
		return err
	}

	renderer, err := r.Lookup(tpl)
	if err != nil {
		return err
	}

	return renderer.Render(w, tpl, req)
}
