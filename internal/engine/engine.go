// Package engine defines the contract with the external translation engine:
// loading a pretrained model/tokenizer pair by identifier and running the
// tokenize → generate → decode pipeline. anuvad implements none of the
// algorithmic content itself; everything behind this interface is delegated.
package engine

import "context"

// GenerateOptions bound the sequence generation call.
type GenerateOptions struct {
	// MaxNewTokens caps the number of generated tokens.
	MaxNewTokens int
	// NumBeams is the beam-search width.
	NumBeams int
	// EarlyStopping stops beam search once enough finished candidates exist.
	EarlyStopping bool
}

// EncodedBatch is an engine-specific tokenized input batch. The payload is
// opaque to callers; it is produced by a Tokenizer and consumed by the Model
// loaded from the same engine.
type EncodedBatch struct {
	raw any
}

// TokenSequences is an engine-specific set of generated output sequences,
// produced by Model.Generate and consumed by Tokenizer.Decode.
type TokenSequences struct {
	raw any
}

// Tokenizer converts between text and token sequences for one model.
type Tokenizer interface {
	// Encode tokenizes texts into a batch suitable for generation.
	Encode(ctx context.Context, texts []string) (EncodedBatch, error)
	// Decode converts generated sequences back to text, one string per
	// sequence, skipping special tokens when skipSpecial is set.
	Decode(ctx context.Context, seqs TokenSequences, skipSpecial bool) ([]string, error)
}

// Model generates target-language token sequences from an encoded batch.
type Model interface {
	Generate(ctx context.Context, batch EncodedBatch, opts GenerateOptions) (TokenSequences, error)
}

// Engine loads pretrained tokenizer/model pairs from an external model
// repository. Loading may block on network or disk; both operations honor
// the passed context.
type Engine interface {
	LoadTokenizer(ctx context.Context, modelID string) (Tokenizer, error)
	LoadModel(ctx context.Context, modelID string) (Model, error)
}
