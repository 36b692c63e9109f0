package view

import (
	"embed"
	"html/template"
	"io"

	"clinicmap/internal/errors"

	"github.com/labstack/echo/v4"
)

// IndexTemplate is the name of the map page template
const IndexTemplate = "index.html"

//go:embed templates/*.html
var templateFS embed.FS

// PageData is everything the map page needs
type PageData struct {
	MapboxToken   string
	Locations     []Location
	SearchDisease string
	MapCenter     [2]float64 // [lon, lat]
	MapZoom       float64
	UserLat       float64
	UserLon       float64
	ShareURL      string
	QRCodeURL     string
}

// Renderer implements echo.Renderer over the embedded templates
type Renderer struct {
	templates *template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse page templates")
	}

	return &Renderer{templates: templates}, nil
}

// Render executes the named template
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return errors.WithStack(r.templates.ExecuteTemplate(w, name, data))
}
