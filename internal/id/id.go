package id

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var (
	nonWord   = regexp.MustCompile(`[^a-z0-9_-]+`)
	collapsed = regexp.MustCompile(`-{2,}`)
)

// Slug normalizes a URL path into a filesystem-and-id-safe string.
// Path separators become hyphens, non-word characters are stripped,
// repeated hyphens collapse, and leading/trailing hyphens are trimmed.
func Slug(path string) string {
	s := strings.ToLower(path)
	s = strings.ReplaceAll(s, "/", "-")
	s = nonWord.ReplaceAllString(s, "")
	s = collapsed.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Transaction derives a sortable transaction identifier from a request's
// method, URL and capture time. Format: <epoch-millis>__<METHOD>_<slug>.
//
// Two captures of the same method and path within the same millisecond
// produce the same identifier. No collision detection is performed; the
// last write wins.
func Transaction(method, rawURL string, at time.Time) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		path = u.Path
	}
	return fmt.Sprintf("%d__%s_%s", at.UnixMilli(), strings.ToUpper(method), Slug(path))
}
