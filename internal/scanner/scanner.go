package scanner

import (
	"context"
	"fmt"

	"MovieScanner/internal/domain"
)

// Site couples the listing side and the detail side of one review site's
// scraper. Both sides key their output by absolute detail link.
type Site interface {
	Name() string
	FetchListing(ctx context.Context, listingURL string) ([]domain.RawListingEntry, error)
	ExtractDetail(ctx context.Context, detailLink string) (domain.RawDetailEntry, error)
}

// Registry keeps a mapping from scanner names to their implementations.
type Registry struct {
	sites map[string]Site
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sites: map[string]Site{}}
}

// Register adds or replaces a site scraper.
func (r *Registry) Register(site Site) {
	if r.sites == nil {
		r.sites = map[string]Site{}
	}
	r.sites[site.Name()] = site
}

// Resolve returns a site scraper by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Site, error) {
	if site, ok := r.sites[name]; ok {
		return site, nil
	}
	return nil, fmt.Errorf("scanner %s is not registered", name)
}
