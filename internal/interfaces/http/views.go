package http

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

// LayoutName plantilla base; cada página se inserta en ella con {{embed}}.
const LayoutName = "layout"

// DateLayout formato de fecha de los movimientos en el historial.
const DateLayout = "02/01/2006 15:04:05"

// NewViews crea el motor de plantillas HTML de Fiber sobre las plantillas embebidas.
// Las páginas se nombran por archivo sin extensión: dashboard, history, edit.
func NewViews() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic("views: " + err.Error())
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("stockClass", stockClass)
	engine.AddFunc("formatDate", func(t time.Time) string { return t.Format(DateLayout) })
	return engine
}

// stockClass color del saldo: más de 5 verde, 1..5 amarillo, 0 rojo.
func stockClass(qty int) string {
	switch {
	case qty > 5:
		return "stock-ok"
	case qty > 0:
		return "stock-low"
	}
	return "stock-out"
}
