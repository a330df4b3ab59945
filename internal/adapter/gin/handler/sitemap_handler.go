package handler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// Route describes one registered method and path template
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// SitemapResponse lists every route the server answers
type SitemapResponse struct {
	Routes []Route `json:"routes"`
}

// Sitemap handles GET / by listing the routes returned by routes.
// gin's ":id" and "*any" segments are rendered as "{id}" and "{any}".
func Sitemap(routes func() gin.RoutesInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		infos := routes()
		out := make([]Route, 0, len(infos))
		for _, r := range infos {
			out = append(out, Route{Method: r.Method, Path: pathTemplate(r.Path)})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Path != out[j].Path {
				return out[i].Path < out[j].Path
			}
			return out[i].Method < out[j].Method
		})

		c.JSON(http.StatusOK, SitemapResponse{Routes: out})
	}
}

func pathTemplate(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if strings.HasPrefix(s, ":") || strings.HasPrefix(s, "*") {
			segments[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}
