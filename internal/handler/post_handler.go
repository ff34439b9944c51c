package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thescoop/internal/content"
	"github.com/thescoop/internal/log"
	"github.com/thescoop/internal/service"
)

const (
	totalCountHeader = "X-Total-Count"
	totalPagesHeader = "X-Total-Pages"
)

// GetPosts returns posts in the artifact shape. Query parameters category,
// tag, search and featured filter the list; page and perPage switch on
// pagination, with counters reported in response headers.
func (a *API) GetPosts(c *gin.Context) {
	ctx := c.Request.Context()
	filter := service.PostFilter{
		Category:     strings.TrimSpace(c.Query("category")),
		Tag:          strings.TrimSpace(c.Query("tag")),
		Search:       strings.TrimSpace(c.Query("search")),
		FeaturedOnly: parseBool(c.Query("featured")),
	}

	if _, paged := c.GetQuery("page"); !paged {
		posts, err := a.posts.Filter(ctx, filter)
		if err != nil {
			log.FromContext(ctx).Error("filter posts", "error", err)
			respondError(c, http.StatusInternalServerError, "failed to load posts")
			return
		}
		c.JSON(http.StatusOK, posts)
		return
	}

	filter.Page = parsePositiveInt(c.Query("page"), 1)
	filter.PerPage = parsePositiveInt(c.Query("perPage"), homePerPage)
	result, err := a.posts.List(ctx, filter)
	if err != nil {
		log.FromContext(ctx).Error("list posts", "error", err)
		respondError(c, http.StatusInternalServerError, "failed to load posts")
		return
	}

	c.Header(totalCountHeader, strconv.Itoa(result.Total))
	c.Header(totalPagesHeader, strconv.Itoa(result.TotalPages))
	posts := result.Posts
	if posts == nil {
		posts = []content.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost returns one post together with its rendered body.
func (a *API) GetPost(c *gin.Context) {
	ctx := c.Request.Context()
	post, err := a.posts.Get(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		log.FromContext(ctx).Error("load post", "slug", c.Param("slug"), "error", err)
		respondError(c, http.StatusInternalServerError, "failed to load post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post": post,
		"html": string(a.posts.Render(*post)),
	})
}

// Ping is the liveness probe.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
