package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// registerStaticRoutes serves the bundled front-end: real files from
// staticDir when they exist, index.html for every other non-API path (SPA
// fallback). API misses keep their 404.
func registerStaticRoutes(r *gin.Engine, staticDir string) {
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
			return
		}

		requested := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}

		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.String(http.StatusNotFound, "index.html not found")
			return
		}
		c.File(index)
	})
}
