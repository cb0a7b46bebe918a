package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/redwireai/storefront/internal/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API credentials for AI providers",
	Long: `Store and manage API credentials for the rebrand and image providers.

Credentials are stored in ~/.redwire/credentials.json and used as a
fallback when environment variables are not set. A key entered in the
console takes precedence over both until the server restarts.`,
}

var authGoogleCmd = &cobra.Command{
	Use:   "google",
	Short: "Authenticate with Google via OAuth2",
	Long: `Opens your browser for Google OAuth2 authorization.

This grants redwire access to the Generative Language API (Gemini).
You need a Google Cloud OAuth2 Client ID and Secret, which can be
created at https://console.cloud.google.com/apis/credentials`,
	RunE: runAuthGoogle,
}

var authGeminiCmd = &cobra.Command{
	Use:   "gemini-key",
	Short: "Store a Gemini API key",
	Long: `Store your Gemini API key for persistent use.

Get your API key at https://aistudio.google.com/app/apikey`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return storeKey("Gemini", func(c *auth.Credentials, key string) {
			c.Gemini = &auth.APIKeyCredentials{APIKey: key}
		})
	},
}

var authOpenAICmd = &cobra.Command{
	Use:   "openai",
	Short: "Store OpenAI API key",
	Long: `Store your OpenAI API key for persistent use.

Get your API key at https://platform.openai.com/api-keys`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return storeKey("OpenAI", func(c *auth.Credentials, key string) {
			c.OpenAI = &auth.APIKeyCredentials{APIKey: key}
		})
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which providers have stored credentials",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout [provider]",
	Short: "Remove stored credentials",
	Long: `Remove stored credentials for a provider.

If no provider is specified, removes all stored credentials.
Valid providers: google, openai`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"google", "openai"},
	RunE:      runAuthLogout,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authGoogleCmd)
	authCmd.AddCommand(authGeminiCmd)
	authCmd.AddCommand(authOpenAICmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a value is required")
	}
	return nil
}

func promptValue(label string, mask bool) (string, error) {
	p := promptui.Prompt{Label: label, Validate: required}
	if mask {
		p.Mask = '*'
	}
	v, err := p.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}

func runAuthGoogle(cmd *cobra.Command, args []string) error {
	// Get Client ID and Secret from env or prompt.
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")

	var err error
	if clientID == "" {
		if clientID, err = promptValue("Google OAuth2 Client ID", false); err != nil {
			return fmt.Errorf("client ID: %w", err)
		}
	}
	if clientSecret == "" {
		if clientSecret, err = promptValue("Google OAuth2 Client Secret", true); err != nil {
			return fmt.Errorf("client secret: %w", err)
		}
	}

	google, err := auth.RunGoogleOAuth(cmd.Context(), clientID, clientSecret, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("OAuth flow failed: %w", err)
	}

	creds, err := auth.Load()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}
	creds.Google = google
	if err := auth.Save(creds); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Google credentials stored successfully!")
	return nil
}

func storeKey(name string, set func(*auth.Credentials, string)) error {
	apiKey, err := promptValue(name+" API key", true)
	if err != nil {
		return fmt.Errorf("reading API key: %w", err)
	}

	creds, err := auth.Load()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}
	set(creds, apiKey)
	if err := auth.Save(creds); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	fmt.Printf("%s credentials stored successfully!\n", name)
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	creds, err := auth.Load()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	out := cmd.OutOrStdout()
	path, _ := auth.CredentialPath()
	fmt.Fprintf(out, "Credentials file: %s\n\n", path)

	fmt.Fprintln(out, "Provider     Status")
	fmt.Fprintln(out, "--------     ------")

	// Google
	switch {
	case envSet("GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"):
		fmt.Fprintln(out, "google       configured (env var: API key)")
	case creds.Gemini != nil && creds.Gemini.APIKey != "":
		fmt.Fprintln(out, "google       configured (stored: API key)")
	case creds.Google != nil && creds.Google.RefreshToken != "":
		fmt.Fprintln(out, "google       configured (stored: OAuth2)")
	default:
		fmt.Fprintln(out, "google       not configured")
	}

	// OpenAI
	switch {
	case envSet("OPENAI_API_KEY"):
		fmt.Fprintln(out, "openai       configured (env var)")
	case creds.OpenAI != nil && creds.OpenAI.APIKey != "":
		fmt.Fprintln(out, "openai       configured (stored)")
	default:
		fmt.Fprintln(out, "openai       not configured")
	}

	return nil
}

func envSet(names ...string) bool {
	for _, n := range names {
		if os.Getenv(n) != "" {
			return true
		}
	}
	return false
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	provider := ""
	if len(args) == 1 {
		provider = args[0]
	}
	if err := auth.Remove(provider); err != nil {
		return err
	}
	if provider == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "All stored credentials removed.")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s credentials removed.\n", provider)
	}
	return nil
}
