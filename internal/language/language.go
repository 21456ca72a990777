// Package language defines the supported language codes and the ordered
// translation direction (source → target) used throughout anuvad.
package language

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a normalized lowercase ISO 639-1 language code from the
// supported set.
type Code string

const (
	English Code = "en"
	Hindi   Code = "hi"
)

// ErrUnsupported is returned when a raw code is not in the supported set.
var ErrUnsupported = errors.New("unsupported language code")

// ErrSamePair is returned when source and target normalize to the same code.
var ErrSamePair = errors.New("source and target languages must be different")

var supported = []Code{English, Hindi}

// Supported returns the supported codes in stable order. The returned slice
// is a copy; callers may not mutate the supported set.
func Supported() []Code {
	out := make([]Code, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether code is in the supported set. It does not
// normalize; use Normalize for raw user input.
func IsSupported(code Code) bool {
	for _, c := range supported {
		if c == code {
			return true
		}
	}
	return false
}

// Normalize trims and lowercases a raw language code and checks it against
// the supported set.
func Normalize(raw string) (Code, error) {
	code := Code(strings.ToLower(strings.TrimSpace(raw)))
	if !IsSupported(code) {
		return "", fmt.Errorf("%w %q (supported: %s)", ErrUnsupported, raw, joinSupported())
	}
	return code, nil
}

func joinSupported() string {
	parts := make([]string, len(supported))
	for i, c := range supported {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

// Pair is an ordered translation direction. Source and Target are always
// normalized supported codes and never equal.
type Pair struct {
	Source Code
	Target Code
}

// NewPair normalizes both raw codes and rejects identical directions.
func NewPair(srcRaw, tgtRaw string) (Pair, error) {
	src, err := Normalize(srcRaw)
	if err != nil {
		return Pair{}, err
	}
	tgt, err := Normalize(tgtRaw)
	if err != nil {
		return Pair{}, err
	}
	if src == tgt {
		return Pair{}, ErrSamePair
	}
	return Pair{Source: src, Target: tgt}, nil
}

// Opposite returns the other code of the two-code supported set. It is used
// to infer a target direction when only the source is known.
func Opposite(code Code) Code {
	if code == English {
		return Hindi
	}
	return English
}

func (p Pair) String() string {
	return fmt.Sprintf("%s-%s", p.Source, p.Target)
}
