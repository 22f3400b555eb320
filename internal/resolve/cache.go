package resolve

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"

	"github.com/JonMunkholm/vaxecon/internal/core"
)

// DefaultCacheSize comfortably holds every country spelling in one run.
const DefaultCacheSize = 1024

type cachedMatch struct {
	iso3  string
	exact bool
}

// CachedResolver memoizes another resolver. Unresolved names are cached too.
type CachedResolver struct {
	next   core.CountryResolver
	cache  *lru.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCachedResolver wraps next with an LRU cache of the given size.
func NewCachedResolver(next core.CountryResolver, size int) (*CachedResolver, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("resolver cache: %w", err)
	}
	return &CachedResolver{next: next, cache: cache}, nil
}

// Resolve implements core.CountryResolver.
func (c *CachedResolver) Resolve(name string) (string, bool) {
	if v, ok := c.cache.Get(name); ok {
		c.hits.Add(1)
		m := v.(cachedMatch)
		return m.iso3, m.exact
	}
	c.misses.Add(1)

	iso3, exact := c.next.Resolve(name)
	c.cache.Add(name, cachedMatch{iso3: iso3, exact: exact})
	return iso3, exact
}

// Stats returns cache hit and miss counts.
func (c *CachedResolver) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// New builds the default production resolver: the reference list at path
// (or the embedded one), fuzzy matching, and a cache.
func New(path string, cacheSize int) (*CachedResolver, error) {
	countries, err := LoadCountriesFile(path)
	if err != nil {
		return nil, err
	}
	return NewCachedResolver(NewFuzzyResolver(countries), cacheSize)
}
