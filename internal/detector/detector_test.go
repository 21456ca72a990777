package detector

import (
	"testing"

	"github.com/minilingo/anuvad/internal/language"
)

func TestDetector_Detect(t *testing.T) {
	d := New()

	tests := []struct {
		name     string
		text     string
		wantCode language.Code
		wantOK   bool
	}{
		{
			name:     "empty text",
			text:     "",
			wantCode: "",
			wantOK:   false,
		},
		{
			name:     "english text",
			text:     "Hello, this is a test in English.",
			wantCode: language.English,
			wantOK:   true,
		},
		{
			name:     "hindi text",
			text:     "नमस्ते, यह हिंदी में एक परीक्षण है।",
			wantCode: language.Hindi,
			wantOK:   true,
		},
		{
			name:     "english sentence with punctuation",
			text:     "The quick brown fox jumps over the lazy dog.",
			wantCode: language.English,
			wantOK:   true,
		},
		{
			name:     "hindi question",
			text:     "आप कैसे हैं? आज मौसम बहुत अच्छा है।",
			wantCode: language.Hindi,
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := d.Detect(tt.text)
			if ok != tt.wantOK {
				t.Errorf("Detect(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
				return
			}
			if tt.wantOK && code != tt.wantCode {
				t.Errorf("Detect(%q) = %q, want %q", tt.text, code, tt.wantCode)
			}
		})
	}
}

func TestDetector_ShortText(t *testing.T) {
	d := New()

	// Short text may or may not be detected, just check it doesn't panic.
	code, ok := d.Detect("Hi")
	_ = code
	_ = ok
}
