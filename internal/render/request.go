// Package render despacha templates do manifesto para renderizadores.
//
// A forma do conteúdo depende do kind: hero e spotlight recebem exatamente um
// item (SingleItem), os demais recebem uma coleção (Collection). NewRequest é o
// único construtor e aplica essa regra; hero/spotlight com mais de um item é
// erro do chamador (models.ErrSingleItemKind), nunca truncado.
package render

import (
	"fmt"

	"github.com/sabq-ai/app-template-recommender/internal/models"
)

// Request é o conteúdo a renderizar: SingleItem ou Collection
type Request interface {
	Len() int
	request()
}

// SingleItem carrega o item de templates hero/spotlight
type SingleItem struct {
	Item models.ContentItem
}

func (SingleItem) Len() int { return 1 }
func (SingleItem) request() {}

// Collection carrega os itens de templates grid/list/carousel
type Collection struct {
	Items []models.ContentItem
}

func (c Collection) Len() int { return len(c.Items) }
func (Collection) request() {}

// NewRequest escolhe a variante de acordo com o kind
func NewRequest(kind models.TemplateKind, items []models.ContentItem) (Request, error) {
	if !kind.IsValid() {
		return nil, &models.ValidationError{Field: "kind", Reason: fmt.Sprintf("kind desconhecido: %s", kind)}
	}
	if len(items) == 0 {
		return nil, models.ErrEmptyRender
	}

	if kind.IsSingle() {
		if len(items) > 1 {
			return nil, fmt.Errorf("%w: %s recebeu %d itens", models.ErrSingleItemKind, kind, len(items))
		}
		return SingleItem{Item: items[0]}, nil
	}

	cp := make([]models.ContentItem, len(items))
	copy(cp, items)
	return Collection{Items: cp}, nil
}
