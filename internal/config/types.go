package config

import "time"

// ProviderType identifies the generation service.
type ProviderType string

const (
	ProviderGoogle ProviderType = "google"
	ProviderOpenAI ProviderType = "openai"
)

// Config is the top-level redwire configuration, corresponding to .redwire.yml.
type Config struct {
	Provider     ProviderType       `yaml:"provider" koanf:"provider"`
	Model        string             `yaml:"model" koanf:"model"`
	ImageModel   string             `yaml:"image_model" koanf:"image_model"`
	RateLimitRPM int                `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`
	DataDir      string             `yaml:"data_dir" koanf:"data_dir"`
	Server       ServerConfig       `yaml:"server" koanf:"server"`
	Studio       StudioConfig       `yaml:"studio" koanf:"studio"`
	Simulation   SimulationConfig   `yaml:"simulation" koanf:"simulation"`
	Notification NotificationConfig `yaml:"notifications" koanf:"notifications"`
	Log          LogConfig          `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP listener and console settings.
type ServerConfig struct {
	Host           string   `yaml:"host" koanf:"host"`
	Port           int      `yaml:"port" koanf:"port"`
	AdminPath      string   `yaml:"admin_path" koanf:"admin_path"`
	SessionSecret  string   `yaml:"session_secret" koanf:"session_secret"`
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
}

// StudioConfig tunes the generation side of the console.
type StudioConfig struct {
	KeyPollInterval time.Duration `yaml:"key_poll_interval" koanf:"key_poll_interval"`
	RequestTimeout  time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
}

// SimulationConfig holds the artificial delays of the simulated flows.
type SimulationConfig struct {
	CheckoutDelay  time.Duration `yaml:"checkout_delay" koanf:"checkout_delay"`
	AffiliateDelay time.Duration `yaml:"affiliate_delay" koanf:"affiliate_delay"`
}

// NotificationConfig controls the toast feed.
type NotificationConfig struct {
	TTL time.Duration `yaml:"ttl" koanf:"ttl"`
	// WebhookURL receives sale notifications as JSON posts ("admin SMS").
	// Empty disables forwarding.
	WebhookURL string `yaml:"webhook_url" koanf:"webhook_url"`
}

// LogConfig selects log verbosity and encoding.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
