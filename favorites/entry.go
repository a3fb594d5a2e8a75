// Package favorites keeps the visitor's favorite routes and attractions in a
// durable key-value store.
package favorites

import (
	"fmt"
	"strings"
)

type Collection string

const (
	Routes      Collection = "routes"
	Attractions Collection = "attractions"
)

// Keys every stored entry carries
const (
	KeyID          = "id"
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyImage       = "image"
)

// ParseCollection accepts the collection names as well as the singular
// widget types ("route", "attraction")
func ParseCollection(s string) (Collection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "routes", "route":
		return Routes, nil
	case "attractions", "attraction":
		return Attractions, nil
	}
	return "", fmt.Errorf("unknown favorites collection %q", s)
}

// Type is the singular name the widgets use
func (c Collection) Type() string {
	switch c {
	case Routes:
		return "route"
	case Attractions:
		return "attraction"
	}
	return ""
}

// Entry is an open record: the well known keys plus whatever the caller stored.
type Entry map[string]any

func (e Entry) str(key string) string {
	s, _ := e[key].(string)
	return s
}

func (e Entry) ID() string          { return e.str(KeyID) }
func (e Entry) Title() string       { return e.str(KeyTitle) }
func (e Entry) Description() string { return e.str(KeyDescription) }
func (e Entry) Image() string       { return e.str(KeyImage) }

// Clone copies the record, including nested lists and objects
func (e Entry) Clone() Entry {
	if e == nil {
		return nil
	}
	out := make(Entry, len(e))
	for k, v := range e {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, nested := range v {
			out[k] = cloneValue(nested)
		}
		return out
	case Entry:
		return v.Clone()
	case []any:
		out := make([]any, len(v))
		for i, nested := range v {
			out[i] = cloneValue(nested)
		}
		return out
	default:
		return v
	}
}

// newEntry merges data under id. The id argument always wins over data["id"].
func newEntry(id string, data Entry) Entry {
	e := make(Entry, len(data)+4)
	for k, v := range data {
		e[k] = cloneValue(v)
	}
	for _, k := range []string{KeyTitle, KeyDescription, KeyImage} {
		if _, ok := e[k]; !ok {
			e[k] = ""
		}
	}
	e[KeyID] = id
	return e
}

// Store is the persisted root object
type Store struct {
	Routes      []Entry `json:"routes"`
	Attractions []Entry `json:"attractions"`
}

func (s Store) clone() Store {
	out := Store{
		Routes:      make([]Entry, len(s.Routes)),
		Attractions: make([]Entry, len(s.Attractions)),
	}
	for i, e := range s.Routes {
		out.Routes[i] = e.Clone()
	}
	for i, e := range s.Attractions {
		out.Attractions[i] = e.Clone()
	}
	return out
}

// Dedup keeps the first entry for every id, preserving order
func Dedup(entries []Entry) []Entry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		id := e.ID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, e)
	}
	return out
}
