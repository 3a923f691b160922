package models

// TemplateKind define a categoria estrutural de um template
type TemplateKind string

const (
	KindHero      TemplateKind = "hero"
	KindSpotlight TemplateKind = "spotlight"
	KindGrid      TemplateKind = "grid"
	KindList      TemplateKind = "list"
	KindCarousel  TemplateKind = "carousel"
)

// AllKinds retorna todos os kinds válidos em ordem canônica
func AllKinds() []TemplateKind {
	return []TemplateKind{KindHero, KindSpotlight, KindGrid, KindList, KindCarousel}
}

// IsValid verifica se o kind é conhecido
func (k TemplateKind) IsValid() bool {
	switch k {
	case KindHero, KindSpotlight, KindGrid, KindList, KindCarousel:
		return true
	}
	return false
}

// IsSingle indica se o kind renderiza exatamente um item
func (k TemplateKind) IsSingle() bool {
	return k == KindHero || k == KindSpotlight
}

// ContentTag é um sinal de conteúdo reconhecido no campo best_for
type ContentTag string

const (
	TagBreaking        ContentTag = "breaking"
	TagFeatured        ContentTag = "featured"
	TagGallery         ContentTag = "gallery"
	TagVideo           ContentTag = "video"
	TagManyItems       ContentTag = "many-items"
	TagFewItems        ContentTag = "few-items"
	TagMixedCategories ContentTag = "mixed-categories"
	TagSingleCategory  ContentTag = "single-category"
	TagTextOnly        ContentTag = "text-only"
)

// AllTags retorna todas as tags reconhecidas
func AllTags() []ContentTag {
	return []ContentTag{
		TagBreaking, TagFeatured, TagGallery, TagVideo, TagManyItems,
		TagFewItems, TagMixedCategories, TagSingleCategory, TagTextOnly,
	}
}

// IsValid verifica se a tag é reconhecida
func (t ContentTag) IsValid() bool {
	for _, known := range AllTags() {
		if t == known {
			return true
		}
	}
	return false
}

// PaginationMode define a estratégia de paginação do template
type PaginationMode string

const (
	PaginationNone     PaginationMode = "none"
	PaginationLoadMore PaginationMode = "load-more"
	PaginationInfinite PaginationMode = "infinite"
	PaginationPaged    PaginationMode = "paged"
)

// HydrationHint indica como o front-end deve hidratar o template
type HydrationHint string

const (
	HydrationEager   HydrationHint = "eager"
	HydrationLazy    HydrationHint = "lazy"
	HydrationVisible HydrationHint = "visible"
	HydrationNone    HydrationHint = "none"
)

// Behaviors descreve capacidades comportamentais do template
type Behaviors struct {
	Pagination PaginationMode `json:"pagination,omitempty" yaml:"pagination,omitempty" validate:"omitempty,oneof=none load-more infinite paged"`
	Animate    bool           `json:"animate" yaml:"animate"`
	Virtualize bool           `json:"virtualize" yaml:"virtualize"`
}

// Performance contém dicas de performance. MaxItems é informativo.
type Performance struct {
	Hydration HydrationHint `json:"hydration,omitempty" yaml:"hydration,omitempty" validate:"omitempty,oneof=eager lazy visible none"`
	MaxItems  int           `json:"max_items,omitempty" yaml:"max_items,omitempty" validate:"gte=0"`
}

// Styles descreve atributos visuais
type Styles struct {
	Density   string `json:"density,omitempty" yaml:"density,omitempty" validate:"omitempty,oneof=compact comfortable spacious"`
	Elevation int    `json:"elevation" yaml:"elevation" validate:"gte=0,lte=5"`
}

// A11y descreve atributos de acessibilidade
type A11y struct {
	MinContrastRatio float64 `json:"min_contrast_ratio,omitempty" yaml:"min_contrast_ratio,omitempty" validate:"omitempty,gte=1,lte=21"`
	KeyboardNav      bool    `json:"keyboard_nav" yaml:"keyboard_nav"`
}

// TemplateDescriptor representa um template candidato do manifesto
type TemplateDescriptor struct {
	ID          string       `json:"id" yaml:"id" validate:"required"`
	Name        string       `json:"name,omitempty" yaml:"name,omitempty"`
	Kind        TemplateKind `json:"kind" yaml:"kind" validate:"required,template_kind"`
	BestFor     []ContentTag `json:"best_for" yaml:"best_for" validate:"dive,content_tag"`
	Behaviors   Behaviors    `json:"behaviors" yaml:"behaviors"`
	Performance Performance  `json:"performance" yaml:"performance"`
	Styles      Styles       `json:"styles" yaml:"styles"`
	A11y        A11y         `json:"a11y" yaml:"a11y"`
}

// Clone retorna uma cópia profunda do descriptor
func (t TemplateDescriptor) Clone() TemplateDescriptor {
	c := t
	if t.BestFor != nil {
		c.BestFor = make([]ContentTag, len(t.BestFor))
		copy(c.BestFor, t.BestFor)
	}
	return c
}

// Manifest é o conjunto ordenado de templates disponíveis
type Manifest struct {
	Version   string               `json:"version,omitempty" yaml:"version,omitempty"`
	Templates []TemplateDescriptor `json:"templates" yaml:"templates"`
}

// Find busca um template pelo ID
func (m *Manifest) Find(id string) (TemplateDescriptor, bool) {
	for _, t := range m.Templates {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return TemplateDescriptor{}, false
}

// IDs retorna os IDs na ordem do manifesto
func (m *Manifest) IDs() []string {
	ids := make([]string, len(m.Templates))
	for i, t := range m.Templates {
		ids[i] = t.ID
	}
	return ids
}
