package llm

import (
	"fmt"
)

// Default models per provider.
const (
	DefaultGoogleModel      = "gemini-3-flash-preview"
	DefaultGoogleImageModel = "gemini-2.5-flash-image"
	DefaultOpenAIModel      = "gpt-4o-mini"
	DefaultOpenAIImageModel = "dall-e-3"
)

// NewClient creates a text-and-image client for the given provider type.
// Supported provider types: "google", "openai". Empty models fall back to
// the provider defaults. Credentials are resolved from keys per request, so
// a missing key surfaces as ErrCredentialMissing at call time.
func NewClient(providerType, model, imageModel string, keys KeySource) (Client, error) {
	switch providerType {
	case "google", "":
		if model == "" {
			model = DefaultGoogleModel
		}
		if imageModel == "" {
			imageModel = DefaultGoogleImageModel
		}
		return NewGoogleProvider(keys, model, imageModel), nil

	case "openai":
		if model == "" {
			model = DefaultOpenAIModel
		}
		if imageModel == "" {
			imageModel = DefaultOpenAIImageModel
		}
		return NewOpenAIProvider(keys, model, imageModel), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
