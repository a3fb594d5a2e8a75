package images

import (
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ecotravel/favorites"
	"ecotravel/logger"
)

type buttonSpec struct {
	kind       favorites.Collection
	selector   string
	idAttr     string
	imageAttr  string
	containers string
}

var buttons = []buttonSpec{
	{
		kind:       favorites.Routes,
		selector:   ".favorite-btn-route",
		idAttr:     "data-route-id",
		imageAttr:  "data-route-image",
		containers: ".route-card, article, .slider-card",
	},
	{
		kind:       favorites.Attractions,
		selector:   ".favorite-btn-attraction",
		idAttr:     "data-attraction-id",
		imageAttr:  "data-attraction-image",
		containers: ".slider-card, .attraction-card, article",
	},
}

// Harvest collects, for every favorite button on the page, the image of the
// card it sits in (or the button's own image attribute). Results are absolute
// against pageURL.
func Harvest(r io.Reader, pageURL string) (Images, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	base, _ := url.Parse(pageURL)
	if base != nil && !base.IsAbs() {
		base = nil
	}

	found := Images{}
	for _, button := range buttons {
		doc.Find(button.selector).Each(func(_ int, btn *goquery.Selection) {
			id, _ := btn.Attr(button.idAttr)
			if id == "" {
				return
			}
			src, _ := btn.Closest(button.containers).Find("img").First().Attr("src")
			if src == "" {
				src, _ = btn.Attr(button.imageAttr)
			}
			if src == "" {
				return
			}
			// last button wins, like re-running the page scripts
			found.set(button.kind, id, Normalize(base, src))
		})
	}
	return found, nil
}

// Index holds the harvested images of every page of the site, by URL path
type Index struct {
	pages map[string]Images
}

func NewIndex() *Index {
	return &Index{pages: map[string]Images{}}
}

// HarvestDir scans every HTML page below root. baseURL is where root is served.
func HarvestDir(root, baseURL string) (*Index, error) {
	idx := NewIndex()
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".html") {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		pagePath := "/" + filepath.ToSlash(rel)
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		found, err := Harvest(f, base.ResolveReference(&url.URL{Path: strings.TrimPrefix(pagePath, "/")}).String())
		if err != nil {
			logger.Log.WithError(err).WithField("page", pagePath).Warn("Cannot parse page")
			return nil
		}
		idx.Add(pagePath, found)
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Log.WithField("pages", len(idx.pages)).Info("Harvested favorite images")
	return idx, nil
}

func (idx *Index) Add(pagePath string, found Images) {
	idx.pages[cleanPagePath(pagePath)] = found
}

// Page returns the images of the page at pagePath, nil when unknown
func (idx *Index) Page(pagePath string) Images {
	if idx == nil {
		return nil
	}
	p := cleanPagePath(pagePath)
	if found, ok := idx.pages[p]; ok {
		return found
	}
	if strings.HasSuffix(p, "/") {
		return idx.pages[p+"index.html"]
	}
	return nil
}

func cleanPagePath(p string) string {
	if p == "" {
		return "/"
	}
	cleaned := path.Clean("/" + p)
	if strings.HasSuffix(p, "/") && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned
}
