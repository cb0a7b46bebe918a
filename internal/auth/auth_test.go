package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestKeys(stored map[string]string, google *GoogleCredentials) *Keys {
	k := NewKeys()
	k.lookup = func(p string) string { return stored[p] }
	k.oauth = func() (*GoogleCredentials, bool) { return google, google != nil }
	return k
}

func TestManualKeyWinsOverStored(t *testing.T) {
	k := newTestKeys(map[string]string{"google": "from-env"}, nil)

	if got := k.APIKey("google"); got != "from-env" {
		t.Errorf("APIKey = %q, want from-env", got)
	}
	k.Connect("google", "from-console")
	if got := k.APIKey("google"); got != "from-console" {
		t.Errorf("APIKey = %q, want from-console", got)
	}
	if !k.Manual("google") {
		t.Error("expected manual key recorded")
	}

	k.Disconnect("google")
	if got := k.APIKey("google"); got != "from-env" {
		t.Errorf("APIKey after disconnect = %q", got)
	}
}

func TestHasConsidersOAuth(t *testing.T) {
	k := newTestKeys(nil, &GoogleCredentials{RefreshToken: "r", ClientID: "c"})
	if !k.Has("google") {
		t.Error("expected google credential via OAuth")
	}
	if k.Has("openai") {
		t.Error("expected no openai credential")
	}
}

func TestTokenSourceIsCached(t *testing.T) {
	k := newTestKeys(nil, &GoogleCredentials{AccessToken: "a", RefreshToken: "r", ClientID: "c"})

	first := k.TokenSource("google")
	if first == nil {
		t.Fatal("expected token source")
	}
	if k.TokenSource("google") != first {
		t.Error("token source rebuilt on second call")
	}
	if k.TokenSource("openai") != nil {
		t.Error("openai has no token source")
	}

	k.Reset()
	if k.TokenSource("google") == first {
		t.Error("Reset kept cached token source")
	}
}

func TestSaveLoadRemove(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OPENAI_API_KEY", "")

	creds := &Credentials{
		Gemini: &APIKeyCredentials{APIKey: "g-key"},
		OpenAI: &APIKeyCredentials{APIKey: "o-key"},
	}
	if err := Save(creds); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(filepath.Join(home, ".redwire", "credentials.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	if got := GetAPIKey("openai"); got != "o-key" {
		t.Errorf("GetAPIKey(openai) = %q", got)
	}

	if err := Remove("openai"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.OpenAI != nil {
		t.Error("openai credentials not removed")
	}
	if loaded.Gemini == nil || loaded.Gemini.APIKey != "g-key" {
		t.Error("gemini credentials lost")
	}
}

func TestEnvironmentBeatsStoredKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := Save(&Credentials{Gemini: &APIKeyCredentials{APIKey: "stored"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	t.Setenv("GEMINI_API_KEY", "env")
	if got := GetAPIKey("google"); got != "env" {
		t.Errorf("GetAPIKey = %q, want env", got)
	}
}
