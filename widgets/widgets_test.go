package widgets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ecotravel/favorites"
)

func TestButton(t *testing.T) {
	assert.Equal(t, ToggleButton{Active: true, Class: "active", Icon: "fas"}, Button(true))
	assert.Equal(t, ToggleButton{Icon: "far"}, Button(false))
}

func TestNewCounter(t *testing.T) {
	tests := []struct {
		count int
		want  Counter
	}{
		{0, Counter{Text: "0", Display: "none"}},
		{1, Counter{Text: "1", Display: "flex"}},
		{12, Counter{Text: "12", Display: "flex"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewCounter(tt.count))
	}
}

func TestItems(t *testing.T) {
	s := favorites.Store{
		Routes: []favorites.Entry{
			{favorites.KeyID: "r1", favorites.KeyTitle: "Route", favorites.KeyDescription: "d", favorites.KeyImage: "http://x/r1.jpg"},
		},
		Attractions: []favorites.Entry{
			{favorites.KeyID: "a1"},
		},
	}
	prefix := func(p string) string {
		if strings.HasPrefix(p, "http") {
			return p
		}
		return "https://site/" + p
	}
	items := Items(s, prefix)
	assert.Equal(t, []ListItem{
		{Type: "route", ID: "r1", Title: "Route", Description: "d", Image: "http://x/r1.jpg", RemoveClass: "remove-favorite-route"},
		{Type: "attraction", ID: "a1", Title: DefaultTitle, Image: "https://site/" + DefaultImage, RemoveClass: "remove-favorite-attraction"},
	}, items)
}

func TestItems_Empty(t *testing.T) {
	items := Items(favorites.Store{}, nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
