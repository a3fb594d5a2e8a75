package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"ecotravel/auth"
	"ecotravel/favorites"
	"ecotravel/images"
	"ecotravel/logger"
	"ecotravel/storage"
	"ecotravel/widgets"
)

// Favorites serves the favorite buttons and the counter. Every request loads
// the caller's list, runs one operation and answers with re-queried state.
type Favorites struct {
	Store   storage.KeyValueStore
	Key     string        // namespace key of the favorites blob
	Pages   *images.Index // harvested site pages, may be nil
	Table   images.Images // static image table
	BaseURL string        // used when the request has no usable Referer
}

type FavoriteRequest struct {
	Type        string          `form:"type" json:"type" binding:"required"`
	ID          string          `form:"id" json:"id" binding:"required"`
	Title       string          `form:"title" json:"title"`
	Description string          `form:"description" json:"description"`
	Image       string          `form:"image" json:"image"`
	Extra       json.RawMessage `form:"-" json:"extra"`
	extra       map[string]any
}

// decodeExtra keeps numbers as written, large integers included
func (r *FavoriteRequest) decodeExtra() error {
	if len(r.Extra) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(r.Extra))
	dec.UseNumber()
	return dec.Decode(&r.extra)
}

type StatusRequest struct {
	Type string `form:"type" json:"type" binding:"required"`
	ID   string `form:"id" json:"id" binding:"required"`
}

type StateResponse struct {
	Type     string               `json:"type"`
	ID       string               `json:"id"`
	Favorite bool                 `json:"favorite"`
	Result   string               `json:"result,omitempty"`
	Count    int                  `json:"count"`
	Counter  widgets.Counter      `json:"counter"`
	Button   widgets.ToggleButton `json:"button"`
}

type CountResponse struct {
	Count   int             `json:"count"`
	Counter widgets.Counter `json:"counter"`
}

func (h *Favorites) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/favorites")
	g.POST("/toggle", h.Toggle)
	g.POST("/add", h.Add)
	g.POST("/remove", h.Remove)
	g.GET("/status", h.Status)
	g.GET("/list", h.List)
	g.GET("/count", h.Count)
}

// Repository loads the favorites of the caller's browser profile
func (h *Favorites) Repository(c *gin.Context) *favorites.Repository {
	profileID := auth.LoadSession(c).ProfileID()
	store := storage.WithPrefix(h.Store, auth.StoragePrefix(profileID))
	return favorites.Load(store, h.Key)
}

// Resolver resolves images against the page the request came from
func (h *Favorites) Resolver(c *gin.Context) *images.Resolver {
	base := h.BaseURL
	var live images.Images
	if ref, err := url.Parse(c.Request.Referer()); err == nil && ref.IsAbs() {
		base = ref.String()
		live = h.Pages.Page(h.sitePath(ref.Path))
	}
	return images.NewResolver(base, live, h.Table)
}

// sitePath maps a request path to the page path below BaseURL, the way
// harvested pages are indexed
func (h *Favorites) sitePath(p string) string {
	base, err := url.Parse(h.BaseURL)
	if err != nil {
		return p
	}
	prefix := strings.TrimSuffix(base.Path, "/")
	switch {
	case prefix == "":
		return p
	case p == prefix:
		return "/"
	case strings.HasPrefix(p, prefix+"/"):
		return strings.TrimPrefix(p, prefix)
	}
	return p
}

func (h *Favorites) entry(c *gin.Context, collection favorites.Collection, r *FavoriteRequest) favorites.Entry {
	data := make(favorites.Entry, len(r.extra)+3)
	for k, v := range r.extra {
		data[k] = v
	}
	data[favorites.KeyTitle] = r.Title
	data[favorites.KeyDescription] = r.Description
	data[favorites.KeyImage] = h.Resolver(c).Resolve(collection, r.ID, r.Image)
	return data
}

func (h *Favorites) state(repo *favorites.Repository, collection favorites.Collection, id string) StateResponse {
	favorite := repo.IsFavorite(collection, id)
	return StateResponse{
		Type:     collection.Type(),
		ID:       id,
		Favorite: favorite,
		Count:    repo.Count(),
		Counter:  widgets.NewCounter(repo.Count()),
		Button:   widgets.Button(favorite),
	}
}

func logPersistError(c *gin.Context, repo *favorites.Repository) {
	if err := repo.Err(); err != nil {
		logger.WithProfile(auth.LoadSession(c).ProfileID()).WithError(err).Error("Favorites change not persisted")
	}
}

func bindFavorite(c *gin.Context) (*FavoriteRequest, favorites.Collection, bool) {
	r := FavoriteRequest{}
	if err := c.ShouldBind(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return nil, "", false
	}
	if err := r.decodeExtra(); err != nil {
		c.JSON(http.StatusBadRequest, BadExtraResponse)
		return nil, "", false
	}
	collection, err := favorites.ParseCollection(r.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, BadCollectionResponse)
		return nil, "", false
	}
	return &r, collection, true
}

func bindStatus(c *gin.Context) (*StatusRequest, favorites.Collection, bool) {
	r := StatusRequest{}
	if err := c.ShouldBind(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return nil, "", false
	}
	collection, err := favorites.ParseCollection(r.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, BadCollectionResponse)
		return nil, "", false
	}
	return &r, collection, true
}

func (h *Favorites) Toggle(c *gin.Context) {
	r, collection, ok := bindFavorite(c)
	if !ok {
		return
	}
	repo := h.Repository(c)
	repo.Toggle(collection, r.ID, h.entry(c, collection, r))
	logPersistError(c, repo)
	c.JSON(http.StatusOK, h.state(repo, collection, r.ID))
}

func (h *Favorites) Add(c *gin.Context) {
	r, collection, ok := bindFavorite(c)
	if !ok {
		return
	}
	repo := h.Repository(c)
	result := repo.Add(collection, r.ID, h.entry(c, collection, r))
	logPersistError(c, repo)
	state := h.state(repo, collection, r.ID)
	state.Result = result.String()
	c.JSON(http.StatusOK, state)
}

func (h *Favorites) Remove(c *gin.Context) {
	r, collection, ok := bindStatus(c)
	if !ok {
		return
	}
	repo := h.Repository(c)
	repo.Remove(collection, r.ID)
	logPersistError(c, repo)
	c.JSON(http.StatusOK, h.state(repo, collection, r.ID))
}

func (h *Favorites) Status(c *gin.Context) {
	r, collection, ok := bindStatus(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.state(h.Repository(c), collection, r.ID))
}

// List returns both lists; reading also writes back the cleaned up form
func (h *Favorites) List(c *gin.Context) {
	repo := h.Repository(c)
	all := repo.GetAll()
	logPersistError(c, repo)
	c.JSON(http.StatusOK, all)
}

func (h *Favorites) Count(c *gin.Context) {
	count := h.Repository(c).Count()
	c.JSON(http.StatusOK, CountResponse{
		Count:   count,
		Counter: widgets.NewCounter(count),
	})
}
