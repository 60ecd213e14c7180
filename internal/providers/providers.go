package providers

import (
	"context"
)

// Config represents the configuration for a vision model request
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	// ImagePath is the local image the prompt refers to.
	ImagePath string
}

// Provider defines the interface for a vision-capable model provider
type Provider interface {
	Describe(ctx context.Context, config Config) (string, error)
}
