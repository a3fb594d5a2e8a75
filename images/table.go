package images

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"ecotravel/favorites"
)

// DefaultTable lists the canonical picture of every known route and
// attraction, relative to the site root.
func DefaultTable() Images {
	return Images{
		favorites.Routes: {
			"north-pmr":     "routes-page/kamenka-terassi/images/Rashkov1.jpg",
			"tiraspol":      "routes-page/central-region/images/ecat2.jpg",
			"bender-south":  "routes-page/benderDnestr/images/naberej.jpg",
			"slobodzeya":    "routes-page/parkTurunchik/images/rodina6.jpg",
			"dubossary":     "routes-page/dubossary/images/dubossary.jpg",
			"tiraspol-ring": "routes-page/greenPulseTiraspol/images/park1.jpg",
			"dnestr-heart":  "routes-page/yagorlyk/images/yun_0001-2.jpg",
		},
		favorites.Attractions: {
			"turunchuk":          "pages/attraction-page/turunchuk/turunchuk-hero.jpg",
			"vineyards":          "assets/images/grape_tiras.jpg",
			"rodina":             "pages/attraction-page/park-rodina/images/rodina1.jpg",
			"wittgenstein":       "pages/attraction-page/park-vingsteina/images/park1.jpg",
			"botanic":            "pages/attraction-page/botanic-garden/images/botanic1.jpg",
			"kitskansky-forest":  "pages/attraction-page/kitskanski-forest/images/kitsk1.jpg",
			"kuchurgan-liman":    "pages/attraction-page/kuchurgan-liman/images/liman.jpeg",
			"lavender-field":     "pages/attraction-page/lavandovoe-pole/images/lavanda.jpg",
			"vykhvatintsy-caves": "pages/attraction-page/yagorlyk/images/yag.jpg",
		},
	}
}

type tableFile struct {
	Routes      map[string]string `toml:"routes"`
	Attractions map[string]string `toml:"attractions"`
}

// ParseTable reads a TOML table with [routes] and [attractions] sections
// and lays it over the defaults.
func ParseTable(data []byte) (Images, error) {
	var f tableFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("image table: %w", err)
	}
	table := DefaultTable()
	for id, p := range f.Routes {
		table.set(favorites.Routes, id, p)
	}
	for id, p := range f.Attractions {
		table.set(favorites.Attractions, id, p)
	}
	return table, nil
}

// LoadTable returns the default table when path is empty
func LoadTable(path string) (Images, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTable(data)
}
