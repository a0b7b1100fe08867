package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/Aashish23092/salary-extraction-engine/dto"
)

// Fingerprint derives a content key for a document from its page text
// (falling back to the raw bytes for documents without a text layer).
func Fingerprint(doc *dto.Document) string {
	h := sha256.New()
	if doc.PageCount() > 0 {
		for _, page := range doc.Pages {
			h.Write([]byte(page))
			h.Write([]byte{0})
		}
	} else {
		h.Write(doc.Raw)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ResultCache memoizes extraction results by document fingerprint.
// Entries may be evicted or the whole cache dropped at any time
// without correctness impact.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]*dto.ExtractionResult
}

func NewResultCache() *ResultCache {
	return &ResultCache{entries: make(map[string]*dto.ExtractionResult)}
}

// Get returns a copy of the cached result so callers cannot mutate
// the cached value.
func (c *ResultCache) Get(fingerprint string) (*dto.ExtractionResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cached, ok := c.entries[fingerprint]
	if !ok {
		return nil, false
	}
	return cloneResult(cached), true
}

func (c *ResultCache) Put(fingerprint string, result *dto.ExtractionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fingerprint] = cloneResult(result)
}

// Drop clears the cache.
func (c *ResultCache) Drop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*dto.ExtractionResult)
}

func cloneResult(result *dto.ExtractionResult) *dto.ExtractionResult {
	clone := *result
	clone.Fields = make([]dto.Field, len(result.Fields))
	copy(clone.Fields, result.Fields)
	return &clone
}
