package web

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ecotravel/handlers"
	"ecotravel/widgets"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"imageURL": imageURL,
}

func LoadTemplates(router *gin.Engine) {
	router.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.tmpl")))
}

// imageURL lets http(s), inline images and scheme-less paths through to CSS
// url(). Anything else stays a plain string and is filtered by html/template.
func imageURL(s string) any {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "data:image/"):
		return template.URL(s)
	case !strings.Contains(strings.SplitN(lower, "/", 2)[0], ":"):
		return template.URL(s)
	}
	return s
}

// FavoritesModal renders the body of the favorites modal, or its items as JSON
// with ?format=json. Rendering reads through GetAll so the stored list is
// cleaned up as a side effect.
func FavoritesModal(h *handlers.Favorites) gin.HandlerFunc {
	return func(c *gin.Context) {
		repo := h.Repository(c)
		items := widgets.Items(repo.GetAll(), h.Resolver(c).Normalize)
		if c.Query("format") == "json" {
			c.JSON(http.StatusOK, gin.H{
				"items":   items,
				"count":   repo.Count(),
				"counter": widgets.NewCounter(repo.Count()),
			})
			return
		}
		c.HTML(http.StatusOK, "favorites_modal.tmpl", gin.H{
			"items": items,
			"empty": widgets.EmptyListText,
		})
	}
}
