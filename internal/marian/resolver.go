// Package marian maps translation directions to pretrained Helsinki-NLP
// MarianMT model identifiers and memoizes the loaded model/tokenizer pairs.
package marian

import (
	"fmt"

	"github.com/minilingo/anuvad/internal/language"
)

// modelNameTemplate is the Helsinki-NLP opus-mt naming convention:
// one model per ordered language direction.
const modelNameTemplate = "Helsinki-NLP/opus-mt-%s-%s"

// ModelName returns the model identifier for a translation direction.
// The mapping is a fixed deterministic template; the pair is assumed to be
// already validated (see language.NewPair).
func ModelName(p language.Pair) string {
	return fmt.Sprintf(modelNameTemplate, p.Source, p.Target)
}
