package sites

import (
	"fmt"

	"github.com/akiyahub/akiya-crawler/internal/crawler"
)

// All returns every supported site in crawl order.
func All() []crawler.Site {
	return []crawler.Site{
		NewNifty(),
		NewHatomark(),
		NewSumai(),
	}
}

// ByName resolves a site by its registered name.
func ByName(name string) (crawler.Site, error) {
	for _, site := range All() {
		if site.Name() == name {
			return site, nil
		}
	}
	return nil, fmt.Errorf("unknown site %q", name)
}
