// Package translator is the single entry point for translating text between
// the supported languages. It validates input, resolves the model through the
// bounded cache, and delegates tokenization, generation, and decoding to the
// external engine.
package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/minilingo/anuvad/internal/engine"
	"github.com/minilingo/anuvad/internal/language"
	"github.com/minilingo/anuvad/internal/marian"
)

const (
	// DefaultMaxNewTokens bounds generation output length.
	DefaultMaxNewTokens = 128
	// numBeams is the beam-search width used for every generation call.
	numBeams = 4
)

// ErrModelLoad marks a failed fetch/load of the model or tokenizer.
var ErrModelLoad = errors.New("model load failed")

// ErrTranslation marks a failed tokenize/generate/decode call.
var ErrTranslation = errors.New("translation failed")

// Config tunes a Translator. Zero values fall back to defaults.
type Config struct {
	// MaxNewTokens caps generated output length; defaults to
	// DefaultMaxNewTokens.
	MaxNewTokens int
	// CacheCapacity bounds the model cache; defaults to
	// marian.DefaultCacheCapacity.
	CacheCapacity int
}

// Translator translates text between the supported languages. It owns the
// model cache; construct one per process and share it.
type Translator struct {
	cache        *marian.Cache
	maxNewTokens int
}

// New creates a Translator backed by eng.
func New(eng engine.Engine, cfg Config) (*Translator, error) {
	if cfg.MaxNewTokens <= 0 {
		cfg.MaxNewTokens = DefaultMaxNewTokens
	}
	cache, err := marian.NewCache(eng, cfg.CacheCapacity)
	if err != nil {
		return nil, err
	}
	return &Translator{
		cache:        cache,
		maxNewTokens: cfg.MaxNewTokens,
	}, nil
}

// Translate translates text from srcRaw to tgtRaw.
//
// Blank or whitespace-only text returns "" with no validation and no model
// load. Invalid language input fails with language.ErrUnsupported or
// language.ErrSamePair; engine failures surface as ErrModelLoad or
// ErrTranslation without retries.
func (t *Translator) Translate(ctx context.Context, text, srcRaw, tgtRaw string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	pair, err := language.NewPair(srcRaw, tgtRaw)
	if err != nil {
		return "", err
	}

	entry, err := t.cache.Get(ctx, pair)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelLoad, err)
	}

	batch, err := entry.Tokenizer.Encode(ctx, []string{norm.NFC.String(text)})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslation, err)
	}

	seqs, err := entry.Model.Generate(ctx, batch, engine.GenerateOptions{
		MaxNewTokens:  t.maxNewTokens,
		NumBeams:      numBeams,
		EarlyStopping: true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslation, err)
	}

	outputs, err := entry.Tokenizer.Decode(ctx, seqs, true)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslation, err)
	}
	if len(outputs) == 0 {
		return "", nil
	}
	return outputs[0], nil
}

// CachedModels returns the number of model/tokenizer pairs currently loaded.
func (t *Translator) CachedModels() int {
	return t.cache.Len()
}
