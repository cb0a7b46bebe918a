package cmd

import (
	"github.com/spf13/cobra"

	"github.com/redwireai/storefront/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "redwire",
	Short: "Red Wire AI storefront with an AI-assisted content console",
	Long: `Red Wire serves the Red Wire AI storefront: product pages, a simulated
checkout and onboarding flow, a blog and live sale notifications.

A hidden console lets an administrator edit every piece of site copy,
inject custom code, manage the blog and rebrand the whole site from a
short business description using an AI provider.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.FileName, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
