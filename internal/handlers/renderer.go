package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"

	"github.com/gin-gonic/gin/render"
	"github.com/shopspring/decimal"

	"resell_front_end/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLRenderer garde un jeu de templates par page (page + base.html)
type HTMLRenderer struct {
	Templates map[string]*template.Template
}

func (r *HTMLRenderer) Instance(name string, data interface{}) render.Render {
	return render.HTML{
		Template: r.Templates[name],
		Name:     "base",
		Data:     data,
	}
}

// TemplateFuncs est partagé par toutes les pages
var TemplateFuncs = template.FuncMap{
	"price": func(d decimal.Decimal) string {
		return d.StringFixed(2) + " €"
	},
	"owner": func(u *models.User) string {
		if u == nil {
			return "Vendeur inconnu"
		}
		return u.DisplayName()
	},
	"roleLabel": func(r models.Role) string {
		return r.Label()
	},
}

// LoadTemplates parse chaque page avec base.html
func LoadTemplates() (*HTMLRenderer, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	templates := map[string]*template.Template{}
	for _, page := range pages {
		name := path.Base(page)
		if name == "base.html" {
			continue
		}
		tmpl, err := template.New(name).Funcs(TemplateFuncs).ParseFS(templateFS, "templates/base.html", page)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return &HTMLRenderer{Templates: templates}, nil
}

// MustLoadTemplates panique si un template embarqué est invalide
func MustLoadTemplates() *HTMLRenderer {
	r, err := LoadTemplates()
	if err != nil {
		panic(err)
	}
	return r
}

var _ render.HTMLRender = (*HTMLRenderer)(nil)
