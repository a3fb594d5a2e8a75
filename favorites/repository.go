package favorites

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"ecotravel/logger"
	"ecotravel/storage"
)

const DefaultKey = "ecotravel_favorites"

type AddResult uint8

const (
	Ignored AddResult = iota // unknown collection, nothing written
	Inserted
	Updated
)

func (r AddResult) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	}
	return "ignored"
}

// Repository holds one profile's favorites in memory and flushes them to the
// durable store after every mutation. It is not safe for concurrent use.
type Repository struct {
	store     storage.KeyValueStore
	key       string
	favorites Store
	err       error
}

// Load reads the favorites stored under key. Missing or corrupt values give
// an empty list, Load never fails.
func Load(store storage.KeyValueStore, key string) *Repository {
	if key == "" {
		key = DefaultKey
	}
	r := &Repository{store: store, key: key}
	r.favorites = r.load()
	return r
}

func (r *Repository) load() Store {
	empty := Store{Routes: []Entry{}, Attractions: []Entry{}}
	value, ok, err := r.store.Get(r.key)
	if err != nil {
		logger.Log.WithError(err).WithField("key", r.key).Warn("Favorites storage unavailable, starting empty")
		return empty
	}
	if !ok {
		return empty
	}
	s, err := decode(value)
	if err != nil {
		logger.Log.WithError(err).WithField("key", r.key).Warn("Discarding corrupt favorites")
		return empty
	}
	s.Routes = Dedup(validEntries(s.Routes))
	s.Attractions = Dedup(validEntries(s.Attractions))
	return s
}

func decode(value string) (Store, error) {
	var s Store
	dec := json.NewDecoder(strings.NewReader(value))
	// Keep numbers as written so caller fields round-trip exactly
	dec.UseNumber()
	if err := dec.Decode(&s); err != nil {
		return Store{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Store{}, errors.New("trailing data after favorites object")
	}
	return s, nil
}

// validEntries drops records that have no string id
func validEntries(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := e[KeyID].(string); ok {
			out = append(out, e)
		}
	}
	return out
}

func (r *Repository) list(c Collection) *[]Entry {
	switch c {
	case Routes:
		return &r.favorites.Routes
	case Attractions:
		return &r.favorites.Attractions
	}
	return nil
}

func (r *Repository) dedup() {
	r.favorites.Routes = Dedup(r.favorites.Routes)
	r.favorites.Attractions = Dedup(r.favorites.Attractions)
}

func (r *Repository) persist() {
	r.dedup()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.favorites); err != nil {
		r.fail(err)
		return
	}
	if err := r.store.Set(r.key, strings.TrimSuffix(buf.String(), "\n")); err != nil {
		r.fail(err)
		return
	}
	r.err = nil
}

func (r *Repository) fail(err error) {
	r.err = err
	logger.Log.WithError(err).WithField("key", r.key).Error("Cannot persist favorites")
}

// Err returns the error of the last write, if it failed
func (r *Repository) Err() error {
	return r.err
}

func indexOf(entries []Entry, id string) int {
	for i, e := range entries {
		if e.ID() == id {
			return i
		}
	}
	return -1
}

// Add appends a new entry, or replaces an existing one in place so the
// list order stays the same.
func (r *Repository) Add(c Collection, id string, data Entry) AddResult {
	r.dedup()
	entries := r.list(c)
	if entries == nil {
		return Ignored
	}
	entry := newEntry(id, data)
	if i := indexOf(*entries, id); i >= 0 {
		(*entries)[i] = entry
		r.persist()
		return Updated
	}
	*entries = append(*entries, entry)
	r.persist()
	return Inserted
}

// Remove deletes every entry with id. Removing an unknown id still persists.
func (r *Repository) Remove(c Collection, id string) {
	entries := r.list(c)
	if entries == nil {
		return
	}
	kept := make([]Entry, 0, len(*entries))
	for _, e := range *entries {
		if e.ID() != id {
			kept = append(kept, e)
		}
	}
	*entries = kept
	r.persist()
}

func (r *Repository) IsFavorite(c Collection, id string) bool {
	entries := r.list(c)
	return entries != nil && indexOf(*entries, id) >= 0
}

// Toggle reports whether the entity is a favorite afterwards
func (r *Repository) Toggle(c Collection, id string, data Entry) bool {
	if r.IsFavorite(c, id) {
		r.Remove(c, id)
		return false
	}
	return r.Add(c, id, data) != Ignored
}

// GetAll returns a copy of both lists and writes the cleaned up form back.
func (r *Repository) GetAll() Store {
	r.persist()
	return r.favorites.clone()
}

// Get returns a copy of the entry with id
func (r *Repository) Get(c Collection, id string) (Entry, bool) {
	entries := r.list(c)
	if entries == nil {
		return nil, false
	}
	if i := indexOf(*entries, id); i >= 0 {
		return (*entries)[i].Clone(), true
	}
	return nil, false
}

func (r *Repository) Count() int {
	return len(r.favorites.Routes) + len(r.favorites.Attractions)
}
