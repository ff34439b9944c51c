package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thescoop/internal/log"
	"github.com/thescoop/internal/service"
)

const (
	homePerPage   = 10
	featuredLimit = 3
	aboutFallback = "The Scoop EA is your go-to source for the latest gossip and entertainment news. Launched in 2025, we bring you the juiciest stories from around the globe. Stay tuned!"
)

// ShowHome renders the post list with category and tag filters.
func (a *API) ShowHome(c *gin.Context) {
	ctx := c.Request.Context()
	category := strings.TrimSpace(c.Query("category"))
	tag := strings.TrimSpace(c.Query("tag"))
	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)

	posts, err := a.posts.List(ctx, service.PostFilter{
		Category: category,
		Tag:      tag,
		Page:     page,
		PerPage:  homePerPage,
	})
	if err != nil {
		log.FromContext(ctx).Error("list posts", "error", err)
		a.renderHTML(c, http.StatusInternalServerError, "home.html", gin.H{
			"title": "Latest Gossip",
			"error": "Posts could not be loaded right now.",
		})
		return
	}

	var featured any
	if category == "" && tag == "" && posts.Page == 1 {
		if items, err := a.posts.Featured(ctx, featuredLimit); err == nil && len(items) > 0 {
			featured = items
		}
	}

	categories, err := a.posts.Categories(ctx)
	if err != nil {
		c.Error(err)
	}

	title := "Latest Gossip"
	switch {
	case category != "":
		title = category
	case tag != "":
		title = "#" + tag
	}

	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title":      title,
		"category":   category,
		"tag":        tag,
		"posts":      posts.Posts,
		"featured":   featured,
		"categories": categories,
		"page":       posts.Page,
		"totalPages": posts.TotalPages,
		"hasPrev":    posts.Page > 1,
		"hasNext":    posts.Page < posts.TotalPages,
		"prevURL":    pageURL(posts.Page-1, category, tag),
		"nextURL":    pageURL(posts.Page+1, category, tag),
	})
}

// ShowPostDetail renders one post with its markdown body.
func (a *API) ShowPostDetail(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")

	post, err := a.posts.Get(ctx, slug)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			a.renderNotFound(c, "That story could not be found.")
			return
		}
		log.FromContext(ctx).Error("load post", "slug", slug, "error", err)
		a.renderHTML(c, http.StatusInternalServerError, "post_detail.html", gin.H{
			"title": "Post",
			"error": "This post could not be loaded right now.",
		})
		return
	}

	meta := a.postMeta(c, *post)
	a.renderHTML(c, http.StatusOK, "post_detail.html", gin.H{
		"title":      post.Frontmatter.Title,
		"post":       post,
		"content":    a.posts.Render(*post),
		"meta":       meta,
		"shareLinks": shareLinks(meta.URL, post.Frontmatter.Title),
	})
}

// ShowAbout renders the about page, falling back to built-in copy when no
// about.md exists.
func (a *API) ShowAbout(c *gin.Context) {
	page, err := a.pages.About()
	if err != nil {
		if !errors.Is(err, service.ErrPageNotFound) {
			log.FromContext(c.Request.Context()).Warn("load about page", "error", err)
		}
		a.renderHTML(c, http.StatusOK, "about.html", gin.H{
			"title": "About Us",
			"page": gin.H{
				"Title":   "About Us",
				"Summary": aboutFallback,
			},
			"content": template.HTML(`<p class="text-gray-600">` + template.HTMLEscapeString(aboutFallback) + `</p>`),
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "about.html", gin.H{
		"title":   page.Title,
		"page":    page,
		"content": a.posts.RenderMarkdown(page.Content),
	})
}

// NotFound is the catch-all for unknown routes.
func (a *API) NotFound(c *gin.Context) {
	a.renderNotFound(c, "The page you were looking for does not exist.")
}

func (a *API) renderNotFound(c *gin.Context, message string) {
	a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{
		"title":   "Not Found",
		"message": message,
	})
}
