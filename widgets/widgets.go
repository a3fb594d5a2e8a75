// Package widgets computes what the favorite buttons, the counter and the
// favorites modal should display. It only reads favorites, it never writes.
package widgets

import (
	"strconv"

	"ecotravel/favorites"
)

const (
	EmptyListText = "У вас пока нет избранных элементов"
	DefaultTitle  = "Без названия"
	DefaultImage  = "assets/images/park.jpg"
)

type ToggleButton struct {
	Active bool   `json:"active"`
	Class  string `json:"class"` // "active" or empty
	Icon   string `json:"icon"`  // font awesome style: "fas" filled, "far" outlined
}

func Button(active bool) ToggleButton {
	if active {
		return ToggleButton{Active: true, Class: "active", Icon: "fas"}
	}
	return ToggleButton{Icon: "far"}
}

type Counter struct {
	Text    string `json:"text"`
	Display string `json:"display"`
}

// NewCounter hides the badge when there is nothing to count
func NewCounter(count int) Counter {
	c := Counter{Text: strconv.Itoa(count), Display: "none"}
	if count > 0 {
		c.Display = "flex"
	}
	return c
}

type ListItem struct {
	Type        string `json:"type"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	RemoveClass string `json:"remove_class"`
}

// Items lists routes first, then attractions. normalize makes stored image
// paths absolute for the page rendering the list.
func Items(s favorites.Store, normalize func(string) string) []ListItem {
	result := make([]ListItem, 0, len(s.Routes)+len(s.Attractions))
	for _, group := range []struct {
		c       favorites.Collection
		entries []favorites.Entry
	}{
		{favorites.Routes, s.Routes},
		{favorites.Attractions, s.Attractions},
	} {
		for _, e := range group.entries {
			item := ListItem{
				Type:        group.c.Type(),
				ID:          e.ID(),
				Title:       e.Title(),
				Description: e.Description(),
				Image:       e.Image(),
				RemoveClass: "remove-favorite-" + group.c.Type(),
			}
			if item.Title == "" {
				item.Title = DefaultTitle
			}
			if item.Image == "" {
				item.Image = DefaultImage
			}
			if normalize != nil {
				item.Image = normalize(item.Image)
			}
			result = append(result, item)
		}
	}
	return result
}
