package auth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleScope = "https://www.googleapis.com/auth/generative-language"

// consentTimeout bounds how long the browser flow waits for the callback.
const consentTimeout = 5 * time.Minute

func googleConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       []string{googleScope},
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
	}
}

// RunGoogleOAuth performs the OAuth2 browser flow for Gemini access. It
// serves the redirect on a loopback port, opens the consent page and
// exchanges the returned code. Progress messages go to out.
func RunGoogleOAuth(ctx context.Context, clientID, clientSecret string, out io.Writer) (*GoogleCredentials, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("starting local server: %w", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	conf := googleConfig(clientID, clientSecret, fmt.Sprintf("http://localhost:%d/callback", port))

	state := uuid.NewString()
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			errCh <- errors.New("OAuth callback state mismatch")
			return
		}
		code := q.Get("code")
		if code == "" {
			msg := q.Get("error")
			if msg == "" {
				msg = "no authorization code received"
			}
			fmt.Fprintf(w, "<html><body><h2>Authorization failed</h2><p>%s</p><p>You can close this tab.</p></body></html>", html.EscapeString(msg))
			errCh <- fmt.Errorf("OAuth callback error: %s", msg)
			return
		}
		fmt.Fprint(w, "<html><body><h2>Red Wire is connected.</h2><p>You can close this tab and return to the terminal.</p></body></html>")
		codeCh <- code
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("local server error: %w", err)
		}
	}()
	defer server.Close()

	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Fprintf(out, "\nOpening browser for Google authorization...\n")
	fmt.Fprintf(out, "If the browser doesn't open, visit this URL:\n%s\n\n", authURL)
	openBrowser(authURL)

	ctx, cancel := context.WithTimeout(ctx, consentTimeout)
	defer cancel()

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for authorization: %w", ctx.Err())
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	return &GoogleCredentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenExpiry:  token.Expiry.Format(time.RFC3339),
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}, nil
}

// NewGoogleTokenSource creates an auto-refreshing OAuth2 token source from stored credentials.
func NewGoogleTokenSource(creds *GoogleCredentials) oauth2.TokenSource {
	conf := googleConfig(creds.ClientID, creds.ClientSecret, "")

	expiry, _ := time.Parse(time.RFC3339, creds.TokenExpiry)
	token := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		Expiry:       expiry,
		TokenType:    "Bearer",
	}

	return conf.TokenSource(context.Background(), token)
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
