package config

import "time"

// FileName is the conventional config file in the working directory.
const FileName = ".redwire.yml"

// ModelPreset names the text and image models used for a provider.
type ModelPreset struct {
	Model      string
	ImageModel string
}

var modelPresets = map[ProviderType]ModelPreset{
	ProviderGoogle: {Model: "gemini-3-flash-preview", ImageModel: "gemini-2.5-flash-image"},
	ProviderOpenAI: {Model: "gpt-4o-mini", ImageModel: "dall-e-3"},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:     ProviderGoogle,
		Model:        modelPresets[ProviderGoogle].Model,
		ImageModel:   modelPresets[ProviderGoogle].ImageModel,
		RateLimitRPM: 30,
		DataDir:      ".redwire",
		Server: ServerConfig{
			Host:      "127.0.0.1",
			Port:      8080,
			AdminPath: "/console",
		},
		Studio: StudioConfig{
			KeyPollInterval: 3 * time.Second,
			RequestTimeout:  2 * time.Minute,
		},
		Simulation: SimulationConfig{
			CheckoutDelay:  2 * time.Second,
			AffiliateDelay: 1500 * time.Millisecond,
		},
		Notification: NotificationConfig{
			TTL: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// GetPreset returns the model preset for the given provider.
// Returns the Google preset if the provider is not found.
func GetPreset(provider ProviderType) ModelPreset {
	if p, ok := modelPresets[provider]; ok {
		return p
	}
	return modelPresets[ProviderGoogle]
}
