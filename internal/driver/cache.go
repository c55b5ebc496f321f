package driver

import (
	"crypto/sha256"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"jsfront/internal/parser"
)

// Digest is the SHA-256 of normalized file content.
type Digest [sha256.Size]byte

// ContentDigest hashes src.
func ContentDigest(src []byte) Digest {
	return sha256.Sum256(src)
}

type cacheKey struct {
	path     string
	content  Digest
	language parser.Language
	maxDiag  int
}

// Cache keeps recent parse results keyed by path, content digest and
// parse options. It is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[cacheKey, *ParseResult]
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// NewCache creates a cache holding up to size results.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[cacheKey, *ParseResult](size)
	if err != nil {
		return nil, fmt.Errorf("parse cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

func (c *Cache) get(k cacheKey) (*ParseResult, bool) {
	if c == nil {
		return nil, false
	}
	res, ok := c.entries.Get(k)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return res, ok
}

func (c *Cache) put(k cacheKey, res *ParseResult) {
	if c == nil {
		return
	}
	c.entries.Add(k, res)
}

// Len reports the number of cached results.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

// Stats returns hit and miss counters since creation.
func (c *Cache) Stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.entries.Purge()
}
