package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCacheRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name      string
		cacheTime int
		want      string
	}{
		{"no cache", CacheNoCache, "no-cache"},
		{"a day", CacheDay, "private, max-age=86400"},
		{"custom", CacheCustom, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use((&CacheRouter{CacheTime: tt.cacheTime}).Handler())
			router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.want, w.Header().Get("cache-control"))
		})
	}
}

func TestErrorLogMiddleware_PassesBodyThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorLogMiddleware)
	router.GET("/", func(c *gin.Context) { c.String(http.StatusTeapot, "short and stout") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "short and stout", w.Body.String())
}
