package models

import (
	"errors"
	"fmt"
)

var (
	ErrSingleItemKind   = errors.New("template de item único recebeu mais de um item")
	ErrEmptyRender      = errors.New("nenhum item para renderizar")
	ErrTemplateNotFound = errors.New("template não encontrado no manifesto")
	ErrDatasetNotFound  = errors.New("dataset não encontrado")
	ErrNoContentSource  = errors.New("fonte de conteúdo não configurada")
	ErrNoItems          = errors.New("nenhum item informado (items, item_ids ou dataset)")
)

// ValidationError indica que um campo obrigatório para o scoring está ausente ou inválido
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("campo inválido: %s", e.Field)
	}
	return fmt.Sprintf("campo inválido: %s (%s)", e.Field, e.Reason)
}

// IsValidationError verifica se err é (ou embrulha) um ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
