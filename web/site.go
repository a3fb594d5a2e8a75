package web

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"ecotravel/gallery"
	"ecotravel/handlers"
	"ecotravel/logger"
	"ecotravel/utils"
)

// Site serves the static travel site from dir for every unmatched GET
func Site(dir string) gin.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, handlers.NotFoundResponse)
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}

type ThumbRequest struct {
	Path string `form:"path" binding:"required"`
	Size uint   `form:"size"`
}

// GalleryThumb answers /gallery/thumb?path=...&size=... for the lightbox
func GalleryThumb(t *gallery.Thumbnailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		r := ThumbRequest{}
		if err := c.ShouldBindQuery(&r); err != nil {
			c.JSON(http.StatusBadRequest, handlers.Response{Error: err.Error()})
			return
		}
		if r.Size == 0 {
			r.Size = t.MaxSize
		}
		b, err := t.Thumb(r.Path, r.Size)
		switch {
		case err == nil:
		case errors.Is(err, gallery.ErrBadSize), errors.Is(err, gallery.ErrOutsideRoot):
			c.JSON(http.StatusBadRequest, handlers.Response{Error: err.Error()})
			return
		case errors.Is(err, os.ErrNotExist):
			c.JSON(http.StatusNotFound, handlers.NotFoundResponse)
			return
		default:
			logger.Log.WithError(err).WithField("path", r.Path).Warn("Thumbnail failed")
			c.JSON(http.StatusInternalServerError, handlers.ThumbFailedResponse)
			return
		}
		// thumbnails never change for a given path and size
		c.Header("cache-control", "private, max-age="+strconv.Itoa(utils.CacheDay))
		c.Data(http.StatusOK, "image/jpeg", b)
	}
}

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /favorites\n")
}
