package di

import (
	"context"
	"os"

	"natal_backend/internal/feature/reading/adapters/gemini"
	"natal_backend/internal/feature/reading/usecase"
)

// EnvKeyGeminiNarrator enables the Gemini-narrated synthesis section when set to "true".
const EnvKeyGeminiNarrator = "GEMINI_NARRATOR"

// NewNarrator creates a Narrator implementation based on the environment.
// When the Gemini narrator is disabled it returns nil, and readings are
// assembled from the embedded interpretation library alone.
func NewNarrator(ctx context.Context) (usecase.Narrator, error) {
	if os.Getenv(EnvKeyGeminiNarrator) != "true" {
		return nil, nil
	}

	narrator, err := gemini.NewGeminiNarrator(ctx)
	if err != nil {
		return nil, err
	}
	return narrator, nil
}
