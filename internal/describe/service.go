// Package describe suggests entry descriptions by showing the image to
// a vision-capable model. Suggestions are advisory; nothing is written
// to the project unless the caller applies them.
package describe

import (
	"context"
	"fmt"
	"os"

	"github.com/slidecat/slidecat/internal/gemini"
	"github.com/slidecat/slidecat/internal/ollama"
	"github.com/slidecat/slidecat/internal/paths"
	"github.com/slidecat/slidecat/internal/project"
	"github.com/slidecat/slidecat/internal/providers"
)

const defaultPrompt = `Describe this image in two or three sentences for a catalog record.
Mention the subject, visible structures and anything notable about image quality.
Return only the description text.`

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// SuggestDescription generates a description for the entry's image.
// Only locally stored images can be described.
func (s *Service) SuggestDescription(ctx context.Context, entry *project.ImageEntry, provider, model string) (string, error) {
	imagePath := entry.ResolvedPath()
	if !paths.IsLocal(imagePath) {
		return "", fmt.Errorf("cannot describe remote image %s", imagePath)
	}
	if _, err := os.Stat(imagePath); err != nil {
		return "", fmt.Errorf("image file not reachable: %w", err)
	}

	if provider == "" {
		provider = os.Getenv("DESCRIBE_PROVIDER")
		if provider == "" {
			provider = "ollama"
		}
	}

	var p providers.Provider
	switch provider {
	case "ollama":
		if model == "" {
			model = os.Getenv("OLLAMA_MODEL")
			if model == "" {
				model = "llava:13b"
			}
		}
		p = ollama.New()
	case "gemini":
		if model == "" {
			model = os.Getenv("GEMINI_MODEL")
			if model == "" {
				model = "gemini-1.5-flash"
			}
		}
		p = gemini.New()
	default:
		return "", fmt.Errorf("unknown provider %q (supported: ollama, gemini)", provider)
	}

	config := providers.Config{
		Model:       model,
		Temperature: 0.2,
		Prompt:      defaultPrompt,
		ImagePath:   imagePath,
	}
	description, err := p.Describe(ctx, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate description: %w", err)
	}
	return description, nil
}
