// Package images picks the picture stored with a favorite.
package images

import (
	"net/url"
	"regexp"
	"strings"

	"ecotravel/favorites"
)

var absoluteRe = regexp.MustCompile(`(?i)^https?://`)

// Images maps entity ids to image URLs, per collection
type Images map[favorites.Collection]map[string]string

func (im Images) lookup(kind favorites.Collection, id string) string {
	if im == nil {
		return ""
	}
	return im[kind][id]
}

func (im Images) set(kind favorites.Collection, id, src string) {
	if im[kind] == nil {
		im[kind] = map[string]string{}
	}
	im[kind][id] = src
}

// Resolver resolves images relative to one page
type Resolver struct {
	base  *url.URL
	live  Images
	table Images
}

// NewResolver builds a resolver for the page at base. live holds the images
// found on that page, table the static fallbacks. Either may be nil.
func NewResolver(base string, live, table Images) *Resolver {
	r := &Resolver{live: live, table: table}
	if u, err := url.Parse(base); err == nil && u.IsAbs() {
		r.base = u
	}
	return r
}

// Resolve returns the best image for an entity: the one shown on the page,
// then the static table, then explicit. Empty when nothing matches.
func (r *Resolver) Resolve(kind favorites.Collection, id, explicit string) string {
	for _, candidate := range []string{r.live.lookup(kind, id), r.table.lookup(kind, id), explicit} {
		if candidate != "" {
			return r.Normalize(candidate)
		}
	}
	return ""
}

// Normalize makes path absolute against the page. Absolute http(s) URLs and
// data URIs are kept, anything that cannot be parsed is returned unchanged.
func (r *Resolver) Normalize(path string) string {
	return Normalize(r.base, path)
}

func Normalize(base *url.URL, path string) string {
	if path == "" {
		return ""
	}
	if absoluteRe.MatchString(path) || strings.HasPrefix(path, "data:") {
		return path
	}
	if base == nil {
		return path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return path
	}
	return base.ResolveReference(ref).String()
}
