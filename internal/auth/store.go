package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// GoogleCredentials stores OAuth2 tokens for Google API access.
type GoogleCredentials struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenExpiry  string `json:"token_expiry,omitempty"`
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
}

// APIKeyCredentials stores an API key for a provider.
type APIKeyCredentials struct {
	APIKey string `json:"api_key,omitempty"`
}

// Credentials holds stored credentials for all providers.
type Credentials struct {
	Google *GoogleCredentials `json:"google,omitempty"`
	Gemini *APIKeyCredentials `json:"gemini,omitempty"`
	OpenAI *APIKeyCredentials `json:"openai,omitempty"`
}

// CredentialPath returns the path to the credentials file (~/.redwire/credentials.json).
func CredentialPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".redwire", "credentials.json"), nil
}

// Load reads credentials from ~/.redwire/credentials.json.
// Returns empty credentials if the file doesn't exist.
func Load() (*Credentials, error) {
	path, err := CredentialPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	return &creds, nil
}

// Save writes credentials to ~/.redwire/credentials.json with restricted permissions.
func Save(creds *Credentials) error {
	path, err := CredentialPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling credentials: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}

// envVars lists the environment variables checked per provider, in order.
var envVars = map[string][]string{
	"google": {"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"},
	"openai": {"OPENAI_API_KEY"},
}

// GetAPIKey returns the API key for the given provider.
// It checks the environment variables first, then falls back to stored credentials.
func GetAPIKey(provider string) string {
	for _, name := range envVars[provider] {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}

	creds, err := Load()
	if err != nil {
		return ""
	}

	switch provider {
	case "google":
		// OAuth tokens are resolved separately; this is the key-based path.
		if creds.Gemini != nil {
			return creds.Gemini.APIKey
		}
	case "openai":
		if creds.OpenAI != nil {
			return creds.OpenAI.APIKey
		}
	}

	return ""
}

// HasGoogleOAuth returns true if Google OAuth credentials are stored.
func HasGoogleOAuth() bool {
	creds, err := Load()
	if err != nil {
		return false
	}
	return creds.Google != nil && creds.Google.RefreshToken != ""
}

// Remove deletes the stored credentials for provider, or all of them when
// provider is empty.
func Remove(provider string) error {
	creds, err := Load()
	if err != nil {
		return err
	}
	switch provider {
	case "":
		creds = &Credentials{}
	case "google":
		creds.Google = nil
		creds.Gemini = nil
	case "openai":
		creds.OpenAI = nil
	default:
		return fmt.Errorf("unknown provider %q", provider)
	}
	return Save(creds)
}
