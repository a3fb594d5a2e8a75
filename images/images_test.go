package images

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecotravel/favorites"
)

const pageURL = "https://ecotravel.example/routes-page/index.html"

func TestNormalize(t *testing.T) {
	r := NewResolver(pageURL, nil, nil)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"relative", "images/a.jpg", "https://ecotravel.example/routes-page/images/a.jpg"},
		{"parent", "../assets/park.jpg", "https://ecotravel.example/assets/park.jpg"},
		{"root relative", "/assets/park.jpg", "https://ecotravel.example/assets/park.jpg"},
		{"absolute http", "http://cdn.example/x.jpg", "http://cdn.example/x.jpg"},
		{"absolute upper case", "HTTPS://cdn.example/x.jpg", "HTTPS://cdn.example/x.jpg"},
		{"data uri", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"malformed escape", "%zz.jpg", "%zz.jpg"},
		{"missing scheme", ":bad", ":bad"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Normalize(tt.in))
		})
	}
}

func TestNormalize_NoBase(t *testing.T) {
	r := NewResolver("", nil, nil)
	assert.Equal(t, "images/a.jpg", r.Normalize("images/a.jpg"))
}

func TestResolve_Priority(t *testing.T) {
	live := Images{favorites.Routes: {"x": "https://ecotravel.example/live.jpg"}}
	table := Images{favorites.Routes: {"x": "table/x.jpg"}}
	const explicit = "explicit/x.jpg"

	r := NewResolver(pageURL, live, table)
	assert.Equal(t, "https://ecotravel.example/live.jpg", r.Resolve(favorites.Routes, "x", explicit))

	r = NewResolver(pageURL, nil, table)
	assert.Equal(t, "https://ecotravel.example/routes-page/table/x.jpg", r.Resolve(favorites.Routes, "x", explicit))

	r = NewResolver(pageURL, nil, nil)
	assert.Equal(t, "https://ecotravel.example/routes-page/explicit/x.jpg", r.Resolve(favorites.Routes, "x", explicit))
	assert.Equal(t, "", r.Resolve(favorites.Routes, "x", ""))
}

func TestResolve_KindsAreSeparate(t *testing.T) {
	table := Images{favorites.Attractions: {"x": "attraction.jpg"}}
	r := NewResolver(pageURL, nil, table)
	assert.Equal(t, "", r.Resolve(favorites.Routes, "x", ""))
	assert.Equal(t, "https://ecotravel.example/routes-page/attraction.jpg", r.Resolve(favorites.Attractions, "x", ""))
}

const samplePage = `<!doctype html>
<html><body>
<div class="route-card">
  <img src="images/tiraspol.jpg">
  <button class="favorite-btn-route" data-route-id="tiraspol" data-route-image="ignored.jpg"><i class="far fa-heart"></i></button>
</div>
<article>
  <button class="favorite-btn-route" data-route-id="dubossary" data-route-image="/assets/dub.jpg"></button>
</article>
<div class="slider-card">
  <img src="https://cdn.example/rodina.jpg">
  <button class="favorite-btn-attraction" data-attraction-id="rodina"></button>
</div>
<button class="favorite-btn-attraction" data-attraction-id="lonely"></button>
<button class="favorite-btn-route" data-route-image="no-id.jpg"></button>
<div class="attraction-card">
  <img src="first.jpg">
  <button class="favorite-btn-attraction" data-attraction-id="botanic"></button>
</div>
<div class="attraction-card">
  <img src="second.jpg">
  <button class="favorite-btn-attraction" data-attraction-id="botanic"></button>
</div>
</body></html>`

func TestHarvest(t *testing.T) {
	found, err := Harvest(strings.NewReader(samplePage), pageURL)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"tiraspol":  "https://ecotravel.example/routes-page/images/tiraspol.jpg",
		"dubossary": "https://ecotravel.example/assets/dub.jpg",
	}, found[favorites.Routes])
	assert.Equal(t, map[string]string{
		"rodina":  "https://cdn.example/rodina.jpg",
		"botanic": "https://ecotravel.example/routes-page/second.jpg",
	}, found[favorites.Attractions])
}

func TestHarvestDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "routes-page"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "routes-page", "index.html"), []byte(samplePage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "style.css"), []byte("body{}"), 0o644))

	idx, err := HarvestDir(root, "https://ecotravel.example/")
	require.NoError(t, err)

	page := idx.Page("/routes-page/index.html")
	require.NotNil(t, page)
	assert.Equal(t, "https://ecotravel.example/routes-page/images/tiraspol.jpg", page[favorites.Routes]["tiraspol"])
	assert.Equal(t, page, idx.Page("/routes-page/"))
	assert.Nil(t, idx.Page("/style.css"))
	assert.Nil(t, idx.Page("/missing.html"))
}

func TestIndex_NilSafe(t *testing.T) {
	var idx *Index
	assert.Nil(t, idx.Page("/"))
}

func TestTable(t *testing.T) {
	table, err := LoadTable("")
	require.NoError(t, err)
	assert.Equal(t, "routes-page/kamenka-terassi/images/Rashkov1.jpg", table[favorites.Routes]["north-pmr"])

	table, err = ParseTable([]byte(`
[routes]
north-pmr = "override.jpg"
new-route = "new.jpg"

[attractions]
botanic = "garden.jpg"
`))
	require.NoError(t, err)
	assert.Equal(t, "override.jpg", table[favorites.Routes]["north-pmr"])
	assert.Equal(t, "new.jpg", table[favorites.Routes]["new-route"])
	assert.Equal(t, "routes-page/central-region/images/ecat2.jpg", table[favorites.Routes]["tiraspol"])
	assert.Equal(t, "garden.jpg", table[favorites.Attractions]["botanic"])

	_, err = ParseTable([]byte("[routes\nbroken"))
	assert.Error(t, err)
}

func TestLoadTable_FromFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "images.toml")
	require.NoError(t, os.WriteFile(p, []byte("[attractions]\nrodina = \"r.jpg\"\n"), 0o644))
	table, err := LoadTable(p)
	require.NoError(t, err)
	assert.Equal(t, "r.jpg", table[favorites.Attractions]["rodina"])

	_, err = LoadTable(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
