package marian

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/minilingo/anuvad/internal/engine"
	"github.com/minilingo/anuvad/internal/language"
)

// DefaultCacheCapacity bounds the number of loaded model/tokenizer pairs
// kept in memory at once.
const DefaultCacheCapacity = 4

// Entry is a loaded model/tokenizer pair for one translation direction.
// Entries are immutable once loaded and safe to share between requests.
type Entry struct {
	Pair      language.Pair
	ModelID   string
	Tokenizer engine.Tokenizer
	Model     engine.Model
}

// Cache memoizes loaded model/tokenizer pairs keyed by translation direction.
// It is bounded LRU: when a new distinct direction exceeds capacity, the
// least-recently-used entry is evicted. Concurrent misses on the same
// direction collapse into a single engine load.
type Cache struct {
	engine engine.Engine
	lru    *lru.Cache[language.Pair, *Entry]
	group  singleflight.Group
}

// NewCache creates a cache bounded to capacity entries. Capacity values
// below 1 fall back to DefaultCacheCapacity.
func NewCache(eng engine.Engine, capacity int) (*Cache, error) {
	if capacity < 1 {
		capacity = DefaultCacheCapacity
	}
	l, err := lru.New[language.Pair, *Entry](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create model cache: %w", err)
	}
	return &Cache{engine: eng, lru: l}, nil
}

// Get returns the entry for a direction, loading tokenizer and model from
// the engine on first use. A hit is a pure lookup with no engine calls.
func (c *Cache) Get(ctx context.Context, p language.Pair) (*Entry, error) {
	if entry, ok := c.lru.Get(p); ok {
		return entry, nil
	}

	// Collapse concurrent first-use loads of the same direction so at most
	// one fetch happens per pair.
	v, err, _ := c.group.Do(p.String(), func() (any, error) {
		if entry, ok := c.lru.Get(p); ok {
			return entry, nil
		}
		entry, err := c.load(ctx, p)
		if err != nil {
			return nil, err
		}
		c.lru.Add(p, entry)
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entry), nil
}

func (c *Cache) load(ctx context.Context, p language.Pair) (*Entry, error) {
	modelID := ModelName(p)

	tokenizer, err := c.engine.LoadTokenizer(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("tokenizer for %s: %w", modelID, err)
	}
	model, err := c.engine.LoadModel(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("model for %s: %w", modelID, err)
	}

	return &Entry{
		Pair:      p,
		ModelID:   modelID,
		Tokenizer: tokenizer,
		Model:     model,
	}, nil
}

// Len returns the number of loaded entries currently held.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Contains reports whether a direction is loaded without updating recency.
func (c *Cache) Contains(p language.Pair) bool {
	return c.lru.Contains(p)
}
