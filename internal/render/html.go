package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/sabq-ai/app-template-recommender/internal/models"
	"github.com/sabq-ai/app-template-recommender/internal/utils"
)

// summaryRunes limita o resumo em texto puro das células de coleção
const summaryRunes = 160

const itemPartial = `{{define "item"}}<article class="tpl-item{{if .Breaking}} is-breaking{{end}}" data-id="{{.ID}}"{{if .Category}} data-category="{{.Category}}"{{end}}>
{{- if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}" loading="lazy">{{end}}
{{- if .VideoURL}}<video src="{{.VideoURL}}" controls preload="none"></video>{{end}}
{{- if .Breaking}}<span class="badge badge-breaking">عاجل</span>{{end}}
<h2>{{.Title}}</h2>
{{- if .Excerpt}}<div class="excerpt">{{.Excerpt}}</div>{{else if .Summary}}<p class="summary">{{.Summary}}</p>{{end}}
{{- if .Published}}<time datetime="{{.Published}}">{{.Published}}</time>{{end}}
</article>{{end}}`

const singleLayout = `<section class="tpl tpl-{{.Kind}}" data-template="{{.TemplateID}}" data-density="{{.Density}}" data-elevation="{{.Elevation}}" dir="auto">
{{template "item" .Item}}
</section>`

const collectionLayout = `<section class="tpl tpl-{{.Kind}}" data-template="{{.TemplateID}}" data-density="{{.Density}}" data-elevation="{{.Elevation}}" data-pagination="{{.Pagination}}"{{if .Animate}} data-animate{{end}}{{if .Virtualize}} data-virtualize{{end}}{{if .Keyboard}} tabindex="0" role="list"{{end}} dir="auto">
{{- range .Items}}
<div class="tpl-cell"{{if $.Keyboard}} role="listitem"{{end}}>{{template "item" .}}</div>
{{- end}}
</section>`

type itemView struct {
	ID        string
	Title     string
	ImageURL  string
	VideoURL  string
	Category  string
	Breaking  bool
	Excerpt   template.HTML
	Summary   string
	Published string
}

type layoutView struct {
	Kind       models.TemplateKind
	TemplateID string
	Density    string
	Elevation  int
	Pagination models.PaginationMode
	Animate    bool
	Virtualize bool
	Keyboard   bool
	Item       itemView
	Items      []itemView
}

// HTMLRenderer gera a pré-visualização HTML de um kind
type HTMLRenderer struct {
	kind models.TemplateKind
	tmpl *template.Template
}

// NewHTMLRenderer cria o renderizador padrão do kind
func NewHTMLRenderer(kind models.TemplateKind) *HTMLRenderer {
	layout := collectionLayout
	if kind.IsSingle() {
		layout = singleLayout
	}
	tmpl := template.Must(template.New(string(kind)).Parse(layout))
	template.Must(tmpl.Parse(itemPartial))
	return &HTMLRenderer{kind: kind, tmpl: tmpl}
}

// Render implementa Renderer
func (h *HTMLRenderer) Render(w io.Writer, tpl models.TemplateDescriptor, req Request) error {
	view := layoutView{
		Kind:       h.kind,
		TemplateID: tpl.ID,
		Density:    tpl.Styles.Density,
		Elevation:  tpl.Styles.Elevation,
		Pagination: tpl.Behaviors.Pagination,
		Animate:    tpl.Behaviors.Animate,
		Virtualize: tpl.Behaviors.Virtualize,
		Keyboard:   tpl.A11y.KeyboardNav,
	}

	switch r := req.(type) {
	case SingleItem:
		if !h.kind.IsSingle() {
			return fmt.Errorf("renderizador %s espera uma coleção", h.kind)
		}
		view.Item = toItemView(r.Item, true)
	case Collection:
		if h.kind.IsSingle() {
			return fmt.Errorf("%w: renderizador %s", models.ErrSingleItemKind, h.kind)
		}
		view.Items = make([]itemView, len(r.Items))
		for i, it := range r.Items {
			view.Items[i] = toItemView(it, false)
		}
	default:
		return fmt.Errorf("request de renderização desconhecido: %T", req)
	}

	return h.tmpl.Execute(w, view)
}

// toItemView prepara o item para o template. Kinds de item único mostram o
// excerpt completo em HTML sanitizado; células de coleção recebem só um
// resumo em texto puro, escapado pelo html/template.
func toItemView(item models.ContentItem, full bool) itemView {
	view := itemView{
		ID:       item.ID,
		Title:    item.Title,
		ImageURL: item.ImageURL,
		VideoURL: item.VideoURL,
		Category: utils.NormalizeCategory(item.CategoryID),
		Breaking: item.IsBreaking(),
	}
	if full {
		view.Excerpt = template.HTML(utils.RenderMarkdown(item.Excerpt))
	} else {
		view.Summary = utils.Excerpt(item.Excerpt, summaryRunes)
	}
	if !item.PublishedAt.IsZero() {
		view.Published = item.PublishedAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	return view
}
