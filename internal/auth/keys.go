package auth

import (
	"sync"

	"golang.org/x/oauth2"
)

// Keys resolves credentials for generation requests. A key connected in the
// console wins over the environment, which wins over stored credentials.
// Console keys live only in memory.
type Keys struct {
	mu     sync.RWMutex
	manual map[string]string
	tokens map[string]oauth2.TokenSource

	// lookup and oauth are swapped in tests.
	lookup func(provider string) string
	oauth  func() (*GoogleCredentials, bool)
}

// NewKeys returns a Keys backed by the environment and ~/.redwire/credentials.json.
func NewKeys() *Keys {
	return &Keys{
		manual: make(map[string]string),
		tokens: make(map[string]oauth2.TokenSource),
		lookup: GetAPIKey,
		oauth:  storedGoogleOAuth,
	}
}

// Connect records a key entered in the console for provider.
func (k *Keys) Connect(provider, key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if key == "" {
		delete(k.manual, provider)
		return
	}
	k.manual[provider] = key
}

// Disconnect forgets the console key for provider.
func (k *Keys) Disconnect(provider string) {
	k.Connect(provider, "")
}

// Manual reports whether a console key is set for provider.
func (k *Keys) Manual(provider string) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.manual[provider] != ""
}

func (k *Keys) APIKey(provider string) string {
	k.mu.RLock()
	key := k.manual[provider]
	k.mu.RUnlock()
	if key != "" {
		return key
	}
	return k.lookup(provider)
}

// TokenSource returns a cached, auto-refreshing token source built from
// stored Google OAuth credentials. Other providers have none.
func (k *Keys) TokenSource(provider string) oauth2.TokenSource {
	if provider != "google" {
		return nil
	}

	k.mu.RLock()
	ts := k.tokens[provider]
	k.mu.RUnlock()
	if ts != nil {
		return ts
	}

	creds, ok := k.oauth()
	if !ok {
		return nil
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if ts = k.tokens[provider]; ts == nil {
		ts = NewGoogleTokenSource(creds)
		k.tokens[provider] = ts
	}
	return ts
}

// Has reports whether any credential resolves for provider.
func (k *Keys) Has(provider string) bool {
	if k.APIKey(provider) != "" {
		return true
	}
	if provider == "google" {
		_, ok := k.oauth()
		return ok
	}
	return false
}

// Reset drops cached token sources so the next request rereads storage.
func (k *Keys) Reset() {
	k.mu.Lock()
	k.tokens = make(map[string]oauth2.TokenSource)
	k.mu.Unlock()
}

func storedGoogleOAuth() (*GoogleCredentials, bool) {
	creds, err := Load()
	if err != nil || creds.Google == nil || creds.Google.RefreshToken == "" {
		return nil, false
	}
	return creds.Google, true
}
