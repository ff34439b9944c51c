package handler

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thescoop/internal/service"
)

const defaultSiteName = "The Scoop EA"

// Site carries the site-wide values every page needs.
type Site struct {
	Name    string
	BaseURL string
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	posts  *service.PostService
	pages  *service.PageService
	site   Site
	logger *slog.Logger
	now    func() time.Time
}

// NewAPI constructs a handler set with shared services.
func NewAPI(posts *service.PostService, pages *service.PageService, site Site, logger *slog.Logger) *API {
	site.Name = strings.TrimSpace(site.Name)
	if site.Name == "" {
		site.Name = defaultSiteName
	}
	site.BaseURL = strings.TrimRight(strings.TrimSpace(site.BaseURL), "/")
	if logger == nil {
		logger = slog.Default()
	}

	return &API{
		posts:  posts,
		pages:  pages,
		site:   site,
		logger: logger,
		now:    time.Now,
	}
}

// Site returns the configured site values.
func (a *API) Site() Site {
	return a.site
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		payload["site"] = gin.H{
			"name":    a.site.Name,
			"baseUrl": a.site.BaseURL,
		}
	}
	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = a.site.Name
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = a.now().Year()
	}
	if _, exists := payload["meta"]; !exists {
		payload["meta"] = a.defaultMeta(c, payload)
	}

	c.HTML(status, template, payload)
}
