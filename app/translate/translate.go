package translate

import (
	"context"
	"fmt"

	"github.com/lysyi3m/rss-babel/app/cfg"
)

// systemInstruction keeps backend output strictly to the translation itself.
const systemInstruction = "You are a precise translation engine. " +
	"Translate the user's text faithfully into the target language, preserving names, numbers, and proper nouns. " +
	"Do not add commentary. Output ONLY the translation."

// Translator is the pluggable translation capability. Name identifies the
// backend in cache keys, so renaming a backend invalidates its cached
// translations.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Resolve picks the configured backend. Backend selection happens once at
// startup; an unknown name or a missing credential is a configuration error,
// not a per-item failure.
func Resolve(c *cfg.Cfg) (Translator, error) {
	switch c.Translator {
	case "openai":
		return NewOpenAI(c.OpenAIModel, c.OpenAIAPIKey)
	case "gemini":
		return NewGemini(context.Background(), c.GeminiModel, c.GeminiAPIKey)
	default:
		return nil, fmt.Errorf("unsupported translator %q (supported: openai, gemini)", c.Translator)
	}
}

func prompt(text, targetLang string) string {
	return fmt.Sprintf("Target language: %s\n\nText:\n%s", targetLang, text)
}
