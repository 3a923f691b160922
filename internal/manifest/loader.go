// Package manifest carrega o manifesto de templates de um arquivo (YAML/JSON),
// do Redis ou do manifesto embutido, e o mantém em cache por sessão.
package manifest

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sabq-ai/app-template-recommender/internal/models"
	"github.com/sabq-ai/app-template-recommender/internal/recommend"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultManifest []byte

// Source fornece o manifesto de templates
type Source interface {
	Load(ctx context.Context) (*models.Manifest, error)
}

// Default retorna o manifesto embutido
func Default() *models.Manifest {
	m, err := Parse(defaultManifest, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("manifesto embutido inválido: %v", err))
	}
	return m
}

// DefaultSource é um Source que sempre retorna o manifesto embutido
type DefaultSource struct{}

func (DefaultSource) Load(context.Context) (*models.Manifest, error) {
	return Default(), nil
}

// Format identifica a codificação do manifesto
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath deduz o formato pela extensão do arquivo
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("extensão de manifesto não suportada: %q", filepath.Ext(path))
}

// Parse decodifica e valida um manifesto
func Parse(data []byte, format Format) (*models.Manifest, error) {
	var m models.Manifest

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("erro ao decodificar manifesto YAML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("erro ao decodificar manifesto JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("formato de manifesto desconhecido: %q", format)
	}

	if err := recommend.ValidateManifest(m.Templates); err != nil {
		return nil, err
	}
	return &m, nil
}

// FileSource lê o manifesto de um arquivo local
type FileSource struct {
	Path string
}

// NewFileSource cria um FileSource
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load lê e valida o arquivo a cada chamada
func (f *FileSource) Load(_ context.Context) (*models.Manifest, error) {
	format, err := FormatFromPath(f.Path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler manifesto %s: %w", f.Path, err)
	}

	return Parse(data, format)
}
