package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// tatweel é o caractere de alongamento árabe (U+0640), puramente tipográfico
const tatweel = 'ـ'

// CategoryKey devolve a chave de identidade de uma categoria: o ID sem espaços
// nas bordas e em NFC. IDs que diferem em caixa ou acentos continuam distintos.
func CategoryKey(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return ""
	}
	return norm.NFC.String(category)
}

// NormalizeCategory gera a forma de busca de uma categoria, usada só para
// exibição e filtros na pré-visualização, nunca para contar categorias.
// Remove diacríticos (tashkeel árabe, acentos latinos), tatweel e espaços nas bordas.
// Exemplo: "سِيَاسَة" -> "سياسة", "Économie" -> "economie"
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return ""
	}

	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == tatweel })),
		norm.NFC,
	)
	normalized, _, err := transform.String(t, category)
	if err != nil {
		normalized = category
	}

	return strings.ToLower(normalized)
}
