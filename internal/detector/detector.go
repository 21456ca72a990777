// Package detector guesses the source language of input text when the user
// does not specify one. The detector is restricted to the supported set, so
// anything that is not recognizably Hindi or English is reported as unknown.
package detector

import (
	lingua "github.com/pemistahl/lingua-go"

	"github.com/minilingo/anuvad/internal/language"
)

// Detector wraps a lingua-go detector built for the supported languages.
// Building the detector is expensive; reuse the instance.
type Detector struct {
	det lingua.LanguageDetector
}

func New() *Detector {
	det := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Hindi).
		Build()

	return &Detector{det: det}
}

// Detect returns the supported-set code the text is most likely written in.
// Empty or undecidable text returns ok=false.
func (d *Detector) Detect(text string) (language.Code, bool) {
	if text == "" {
		return "", false
	}
	lang, ok := d.det.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	switch lang {
	case lingua.English:
		return language.English, true
	case lingua.Hindi:
		return language.Hindi, true
	}
	return "", false
}
