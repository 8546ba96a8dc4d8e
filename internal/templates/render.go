package templates

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed html/*.html
var pageFS embed.FS

//go:embed static
var staticFS embed.FS

// funcs are available to every page.
var funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

// Load parses every embedded page. Pages are addressed by file name,
// e.g. "login.html".
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(pageFS, "html/*.html")
}

// Static returns the stylesheet and image assets served under /static.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return http.FS(sub)
}

// Render writes a page to a Gin context
func Render(c *gin.Context, status int, page string, props any) {
	c.Header("Cache-Control", "no-store")
	c.HTML(status, page, props)
}
