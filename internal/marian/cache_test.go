package marian

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/minilingo/anuvad/internal/engine"
	"github.com/minilingo/anuvad/internal/language"
)

type fakeTokenizer struct{}

func (fakeTokenizer) Encode(ctx context.Context, texts []string) (engine.EncodedBatch, error) {
	return engine.EncodedBatch{}, nil
}

func (fakeTokenizer) Decode(ctx context.Context, seqs engine.TokenSequences, skipSpecial bool) ([]string, error) {
	return nil, nil
}

type fakeModel struct{}

func (fakeModel) Generate(ctx context.Context, batch engine.EncodedBatch, opts engine.GenerateOptions) (engine.TokenSequences, error) {
	return engine.TokenSequences{}, nil
}

// countingEngine is a call-count spy for the load operations.
type countingEngine struct {
	tokenizerLoads atomic.Int32
	modelLoads     atomic.Int32
	loadDelay      time.Duration
	loadErr        error
}

func (e *countingEngine) LoadTokenizer(ctx context.Context, modelID string) (engine.Tokenizer, error) {
	e.tokenizerLoads.Add(1)
	if e.loadDelay > 0 {
		time.Sleep(e.loadDelay)
	}
	if e.loadErr != nil {
		return nil, e.loadErr
	}
	return fakeTokenizer{}, nil
}

func (e *countingEngine) LoadModel(ctx context.Context, modelID string) (engine.Model, error) {
	e.modelLoads.Add(1)
	if e.loadErr != nil {
		return nil, e.loadErr
	}
	return fakeModel{}, nil
}

func TestCache_HitAvoidsReload(t *testing.T) {
	eng := &countingEngine{}
	c, err := NewCache(eng, DefaultCacheCapacity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pair := language.Pair{Source: language.English, Target: language.Hindi}

	first, err := c.Get(context.Background(), pair)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Get(context.Background(), pair)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("expected the same entry on cache hit")
	}
	if n := eng.tokenizerLoads.Load(); n != 1 {
		t.Errorf("expected 1 tokenizer load, got %d", n)
	}
	if n := eng.modelLoads.Load(); n != 1 {
		t.Errorf("expected 1 model load, got %d", n)
	}
	if first.ModelID != "Helsinki-NLP/opus-mt-en-hi" {
		t.Errorf("unexpected model id %q", first.ModelID)
	}
}

func TestCache_DistinctPairsLoadSeparately(t *testing.T) {
	eng := &countingEngine{}
	c, _ := NewCache(eng, DefaultCacheCapacity)

	enHi := language.Pair{Source: language.English, Target: language.Hindi}
	hiEn := language.Pair{Source: language.Hindi, Target: language.English}

	if _, err := c.Get(context.Background(), enHi); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Get(context.Background(), hiEn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := eng.modelLoads.Load(); n != 2 {
		t.Errorf("expected 2 model loads for 2 directions, got %d", n)
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 cached entries, got %d", c.Len())
	}
}

// Only two valid directions exist in the deployed language set, so eviction
// is exercised with synthetic pairs.
func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	eng := &countingEngine{}
	c, _ := NewCache(eng, DefaultCacheCapacity)

	pairs := []language.Pair{
		{Source: "aa", Target: "bb"},
		{Source: "cc", Target: "dd"},
		{Source: "ee", Target: "ff"},
		{Source: "gg", Target: "hh"},
	}
	for _, p := range pairs {
		if _, err := c.Get(context.Background(), p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if c.Len() != DefaultCacheCapacity {
		t.Fatalf("expected %d entries, got %d", DefaultCacheCapacity, c.Len())
	}

	// Touch the oldest entry so it becomes the most recently used.
	if _, err := c.Get(context.Background(), pairs[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A fifth distinct pair must evict the least-recently-used entry, which
	// is now pairs[1].
	fifth := language.Pair{Source: "ii", Target: "jj"}
	if _, err := c.Get(context.Background(), fifth); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Len() != DefaultCacheCapacity {
		t.Errorf("expected capacity to stay at %d, got %d", DefaultCacheCapacity, c.Len())
	}
	if !c.Contains(pairs[0]) {
		t.Error("recently used entry must not be evicted")
	}
	if c.Contains(pairs[1]) {
		t.Error("least-recently-used entry must be evicted")
	}
	if !c.Contains(fifth) {
		t.Error("newly loaded entry must be cached")
	}

	// Re-loading the evicted pair goes back to the engine.
	before := eng.modelLoads.Load()
	if _, err := c.Get(context.Background(), pairs[1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eng.modelLoads.Load() != before+1 {
		t.Error("expected a fresh load for the evicted pair")
	}
}

func TestCache_ConcurrentMissesCollapse(t *testing.T) {
	eng := &countingEngine{loadDelay: 50 * time.Millisecond}
	c, _ := NewCache(eng, DefaultCacheCapacity)

	pair := language.Pair{Source: language.English, Target: language.Hindi}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Get(context.Background(), pair); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := eng.tokenizerLoads.Load(); n != 1 {
		t.Errorf("expected concurrent misses to collapse into 1 tokenizer load, got %d", n)
	}
	if n := eng.modelLoads.Load(); n != 1 {
		t.Errorf("expected concurrent misses to collapse into 1 model load, got %d", n)
	}
}

func TestCache_LoadFailureNotCached(t *testing.T) {
	eng := &countingEngine{loadErr: errors.New("network unavailable")}
	c, _ := NewCache(eng, DefaultCacheCapacity)

	pair := language.Pair{Source: language.English, Target: language.Hindi}

	if _, err := c.Get(context.Background(), pair); err == nil {
		t.Fatal("expected error when the engine load fails")
	}
	if c.Len() != 0 {
		t.Errorf("failed loads must not be cached, got %d entries", c.Len())
	}

	// A later attempt retries the load.
	eng.loadErr = nil
	if _, err := c.Get(context.Background(), pair); err != nil {
		t.Fatalf("unexpected error after engine recovery: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry after recovery, got %d", c.Len())
	}
}

func TestNewCache_CapacityFallback(t *testing.T) {
	c, err := NewCache(&countingEngine{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c == nil {
		t.Fatal("expected non-nil cache")
	}
}
