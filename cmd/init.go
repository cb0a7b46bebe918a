package cmd

import (
	"github.com/spf13/cobra"

	"github.com/redwireai/storefront/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize redwire configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that picks the AI provider, port, data directory and a secret console path, then writes them to .redwire.yml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
