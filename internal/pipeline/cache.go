package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jonathan/candidate-screener/internal/types"
)

// ParseCache reuses parsed resumes for identical resume text and hints
type ParseCache struct {
	c *cache.Cache
}

// NewParseCache creates a cache whose entries live for ttl. A non-positive ttl returns nil, which disables caching.
func NewParseCache(ttl time.Duration) *ParseCache {
	if ttl <= 0 {
		return nil
	}
	return &ParseCache{c: cache.New(ttl, 2*ttl)}
}

// Get returns the cached parse for key
func (p *ParseCache) Get(key string) (types.ParsedResume, bool) {
	if p == nil {
		return types.ParsedResume{}, false
	}
	v, ok := p.c.Get(key)
	if !ok {
		return types.ParsedResume{}, false
	}
	parsed, ok := v.(types.ParsedResume)
	return parsed, ok
}

// Set stores a parse under key with the default expiration
func (p *ParseCache) Set(key string, parsed types.ParsedResume) {
	if p == nil {
		return
	}
	p.c.SetDefault(key, parsed)
}

// Len reports the number of unexpired entries
func (p *ParseCache) Len() int {
	if p == nil {
		return 0
	}
	return p.c.ItemCount()
}

// parseKey hashes resume text together with the contact hints
func parseKey(text string, hints types.ResumeHints) string {
	h := sha256.New()
	for _, part := range []string{text, hints.Name, hints.Email, hints.Phone} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
