// Package ocr recognises text in images.
//
// An Engine is a scoped resource: callers create one per recognition, use it,
// and Close it on every exit path. Nothing is shared between calls.
package ocr

import "context"

// LanguageEnglish is the tesseract-style code used by the extraction pipeline.
const LanguageEnglish = "eng"

type Engine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
	Close() error
}

// Provider starts engines configured for one language.
type Provider interface {
	NewEngine(ctx context.Context, language string) (Engine, error)
}

// languageHint maps tesseract codes onto BCP-47 hints.
func languageHint(language string) string {
	switch language {
	case "eng":
		return "en"
	case "spa":
		return "es"
	case "fra":
		return "fr"
	case "deu":
		return "de"
	default:
		return language
	}
}
