package llm

import (
	"context"

	"golang.org/x/oauth2"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}

// ImageProvider generates images from text prompts.
type ImageProvider interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error)
}

// Client is a provider that does both text and images.
type Client interface {
	Provider
	ImageProvider
}

// KeySource resolves credentials when a request is made, so a key connected
// after startup takes effect without rebuilding the provider.
type KeySource interface {
	// APIKey returns the API key for provider, or "" when none is configured.
	APIKey(provider string) string
	// TokenSource returns an OAuth2 token source for provider, or nil.
	TokenSource(provider string) oauth2.TokenSource
}

// StaticKeys is a KeySource backed by a fixed map of API keys.
type StaticKeys map[string]string

func (k StaticKeys) APIKey(provider string) string { return k[provider] }

func (k StaticKeys) TokenSource(string) oauth2.TokenSource { return nil }
