package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/law-makers/reviewscrape/internal/extract"
	urlutil "github.com/law-makers/reviewscrape/internal/utils/url"
)

// ErrUnsupportedDomain is returned for URLs outside the supported sites
var ErrUnsupportedDomain = errors.New("unsupported domain")

// Site is an article source with its extraction rules
type Site struct {
	Domain    string
	Extractor *extract.Extractor
}

// Registry maps registrable domains to sites
type Registry struct {
	sites map[string]Site
}

// NewRegistry builds a registry from sites
func NewRegistry(sites ...Site) *Registry {
	r := &Registry{sites: make(map[string]Site, len(sites))}
	for _, s := range sites {
		r.sites[strings.ToLower(s.Domain)] = s
	}
	return r
}

// DefaultRegistry supports techradar.com with the given extractor options
func DefaultRegistry(opts extract.Options) *Registry {
	return NewRegistry(Site{Domain: "techradar.com", Extractor: extract.New(opts)})
}

// Supported returns the supported domains, sorted
func (r *Registry) Supported() []string {
	out := make([]string, 0, len(r.sites))
	for d := range r.sites {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Resolve returns the site for domain. A subdomain of a supported site
// resolves to that site.
func (r *Registry) Resolve(domain string) (Site, error) {
	if s, ok := r.sites[domain]; ok {
		return s, nil
	}
	if s, ok := r.sites[urlutil.RegistrableDomain(domain)]; ok {
		return s, nil
	}
	return Site{}, fmt.Errorf("%w: %s (currently supported domains: %s)",
		ErrUnsupportedDomain, domain, strings.Join(r.Supported(), ", "))
}
