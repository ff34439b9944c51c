package content

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const isoDate = "2006-01-02"

// Normalize turns a raw metadata map into a fully populated Frontmatter and
// resolves the post slug. It is the only place defaults are applied, so every
// ingestion path (live scan, artifact build) yields the same shape.
//
// fileSlug is the filename without its extension; an explicit "slug" key
// wins over it when it fits in one URL path segment. now supplies the
// default date.
func Normalize(meta map[string]any, fileSlug string, now time.Time) (string, Frontmatter) {
	slug := fileSlug
	if explicit, ok := stringValue(meta["slug"]); ok && routableSlug(strings.TrimSpace(explicit)) {
		slug = strings.TrimSpace(explicit)
	}

	description, ok := stringValue(meta["description"])
	if !ok {
		description, _ = stringValue(meta["excerpt"])
	}

	fm := Frontmatter{
		Title:       stringOr(meta["title"], DefaultTitle),
		Description: description,
		Author:      stringOr(meta["author"], DefaultAuthor),
		Date:        dateOr(meta["date"], now),
		Image:       stringOr(meta["image"], ""),
		Category:    stringOr(meta["category"], DefaultCategory),
		Tags:        tagsValue(meta["tags"]),
		Featured:    boolValue(meta["featured"]),
		ReadTime:    stringOr(meta["readTime"], DefaultReadTime),
	}
	return slug, fm
}

func stringOr(value any, fallback string) string {
	if s, ok := stringValue(value); ok {
		return s
	}
	return fallback
}

// stringValue accepts non-empty strings and scalar numbers. Booleans, maps and
// sequences are not usable as text.
func stringValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func dateOr(value any, now time.Time) string {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			return v
		}
	case time.Time:
		if !v.IsZero() {
			return formatTime(v)
		}
	case fmt.Stringer:
		// TOML local dates and datetimes.
		if s := v.String(); s != "" {
			return s
		}
	}
	return now.UTC().Format(isoDate)
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(isoDate)
	}
	return t.Format(time.RFC3339)
}

func tagsValue(value any) []string {
	tags := []string{}
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if s, ok := stringValue(item); ok {
				tags = append(tags, s)
			}
		}
	case []string:
		for _, item := range v {
			if item != "" {
				tags = append(tags, item)
			}
		}
	}
	return tags
}

func boolValue(value any) bool {
	b, ok := value.(bool)
	return ok && b
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	isoDate,
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate interprets a frontmatter date. The second result is false when no
// known layout matches, in which case the zero time is returned so the post
// sorts as the oldest.
func ParseDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// routableSlug reports whether slug fits in a single path segment.
func routableSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsFunc(slug, func(r rune) bool {
		return r == '/' || r == '\\' || r == '?' || r == '#' || unicode.IsSpace(r)
	})
}
