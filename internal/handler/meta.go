package handler

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thescoop/internal/content"
	"github.com/thescoop/internal/service"
)

const metaDescriptionLimit = 160

// PageMeta feeds the <title>, description and social preview tags.
type PageMeta struct {
	Title       string
	Description string
	URL         string
	Image       string
	Type        string
	SiteName    string
	TwitterCard string
	Author      string
	Published   string
}

// ShareLink is one "share this post" target.
type ShareLink struct {
	Network string
	Label   string
	URL     string
}

func (a *API) defaultMeta(c *gin.Context, payload gin.H) PageMeta {
	title, _ := payload["title"].(string)
	fullTitle := a.site.Name
	if title != "" {
		fullTitle = title + " | " + a.site.Name
	}
	return PageMeta{
		Title:       fullTitle,
		Description: "The latest gossip and entertainment news from " + a.site.Name + ".",
		URL:         a.absoluteURL(c, c.Request.URL.Path),
		Type:        "website",
		SiteName:    a.site.Name,
		TwitterCard: "summary",
	}
}

func (a *API) postMeta(c *gin.Context, post content.Post) PageMeta {
	fm := post.Frontmatter

	description := strings.TrimSpace(fm.Description)
	if description == "" {
		description = service.Summarize(post.Content, metaDescriptionLimit)
	}

	meta := PageMeta{
		Title:       fm.Title + " | " + a.site.Name,
		Description: description,
		URL:         a.absoluteURL(c, postPath(post.Slug)),
		Type:        "article",
		SiteName:    a.site.Name,
		TwitterCard: "summary",
		Author:      fm.Author,
		Published:   fm.Date,
	}
	if image := strings.TrimSpace(fm.Image); image != "" {
		meta.Image = a.absoluteURL(c, image)
		meta.TwitterCard = "summary_large_image"
	}
	return meta
}

func postPath(slug string) string {
	return "/post/" + url.PathEscape(slug)
}

// absoluteURL resolves path against the configured base URL, or the request
// host when none is configured. Absolute URLs are returned unchanged.
func (a *API) absoluteURL(c *gin.Context, path string) string {
	if parsed, err := url.Parse(path); err == nil && parsed.IsAbs() {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	base := a.site.BaseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	return base + path
}

func shareLinks(pageURL, title string) []ShareLink {
	encodedURL := url.QueryEscape(pageURL)
	encodedTitle := url.QueryEscape(title)
	return []ShareLink{
		{Network: "x", Label: "Share on X", URL: "https://twitter.com/intent/tweet?url=" + encodedURL + "&text=" + encodedTitle},
		{Network: "facebook", Label: "Share on Facebook", URL: "https://www.facebook.com/sharer/sharer.php?u=" + encodedURL},
		{Network: "whatsapp", Label: "Share on WhatsApp", URL: "https://wa.me/?text=" + url.QueryEscape(title+" "+pageURL)},
	}
}
