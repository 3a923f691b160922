// Package content resolve itens de conteúdo a partir de IDs (Typesense) e
// guarda datasets nomeados do playground (SQLite).
package content

import (
	"context"

	"github.com/sabq-ai/app-template-recommender/internal/models"
)

// Source busca snapshots de itens pelo ID
type Source interface {
	// GetItems retorna os itens encontrados na ordem dos ids pedidos.
	// IDs inexistentes são omitidos; quem chama decide se isso é erro.
	GetItems(ctx context.Context, ids []string) ([]models.ContentItem, error)
}

// MissingIDs retorna os ids pedidos que não aparecem em items
func MissingIDs(ids []string, items []models.ContentItem) []string {
	found := make(map[string]bool, len(items))
	for _, it := range items {
		found[it.ID] = true
	}
	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// dedupe remove IDs vazios e repetidos mantendo a ordem
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
