package router

import (
	"fmt"
	"html/template"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/thescoop/internal/handler"
	"github.com/thescoop/web"
)

// SetupRouter configures the gin engine, templates and routes.
func SetupRouter(api *handler.API, logger *slog.Logger) (*gin.Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(handler.RequestID(logger), handler.AccessLog(), gin.Recovery())

	tmpl, err := template.New("").Funcs(FuncMap()).ParseFS(web.Templates, web.TemplatePattern)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/ping", handler.Ping)

	r.GET("/", api.ShowHome)
	r.GET("/about", api.ShowAbout)
	r.GET("/post/:slug", api.ShowPostDetail)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/posts", api.GetPosts)
		apiGroup.GET("/posts/:slug", api.GetPost)
	}

	r.NoRoute(api.NotFound)

	return r, nil
}
