package links

import (
	"strings"

	"github.com/igegov/cv-portfolio/internal/types"
)

// placeholderGame marks an elided entry in hand-written content.
const placeholderGame = "..."

// FindCollection returns the collection item with the given ID. An empty ID selects
// the first collection in the content.
func FindCollection(cv *types.CVData, id string) (*types.PortfolioItem, error) {
	if cv == nil {
		return nil, &CollectionError{ID: id, Message: "no content"}
	}
	if id == "" {
		for i := range cv.Portfolio {
			if cv.Portfolio[i].IsCollection() {
				return &cv.Portfolio[i], nil
			}
		}
		return nil, &CollectionError{Message: "content has no collection item"}
	}

	item := cv.FindPortfolioItem(id)
	switch {
	case item == nil:
		return nil, &CollectionError{ID: id, Message: "portfolio item not found"}
	case !item.IsCollection():
		return nil, &CollectionError{ID: id, Message: "portfolio item is not a collection"}
	case len(item.Games) == 0:
		return nil, &CollectionError{ID: id, Message: "collection has no games"}
	}
	return item, nil
}

// GameURL joins a base URL and a slug.
func GameURL(base, slug string) string {
	return strings.TrimRight(base, "/") + "/" + slug
}

// GenerateURLs sets every game's URL to base/Slugify(name) and returns how many
// games changed. Placeholder entries are left alone.
func GenerateURLs(item *types.PortfolioItem, base string) int {
	changed := 0
	for i := range item.Games {
		g := &item.Games[i]
		name := strings.TrimSpace(g.Name)
		if name == "" || name == placeholderGame {
			continue
		}
		url := GameURL(base, Slugify(name))
		if g.URL != url {
			g.URL = url
			changed++
		}
	}
	return changed
}

// ApplyResults writes checked URLs back to the matching games and returns how many changed.
func ApplyResults(item *types.PortfolioItem, results []Result) int {
	byIndex := make(map[int]Result, len(results))
	for _, r := range results {
		byIndex[r.Index] = r
	}

	changed := 0
	for i := range item.Games {
		r, ok := byIndex[i]
		if !ok || r.URL == "" || item.Games[i].Name != r.Title {
			continue
		}
		if item.Games[i].URL != r.URL {
			item.Games[i].URL = r.URL
			changed++
		}
	}
	return changed
}
