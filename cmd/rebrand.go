package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redwireai/storefront/internal/audit"
	"github.com/redwireai/storefront/internal/auth"
	"github.com/redwireai/storefront/internal/config"
	"github.com/redwireai/storefront/internal/llm"
	"github.com/redwireai/storefront/internal/progress"
	"github.com/redwireai/storefront/internal/studio"
)

var rebrandCmd = &cobra.Command{
	Use:   "rebrand [business description]",
	Short: "Rebrand the site from a business description",
	Long: `Generates new site copy, a hero image and a trust image for the given
business description and saves them to the database.

Stop a running server first: it holds its own copy of the site state and
will overwrite the result on its next save.`,
	Example: `  redwire rebrand "A family bakery in Lisbon selling sourdough and pastéis de nata"
  redwire rebrand --file brief.txt`,
	RunE: runRebrand,
}

func init() {
	rebrandCmd.Flags().String("file", "", "read the business description from a file")
	rootCmd.AddCommand(rebrandCmd)
}

func runRebrand(cmd *cobra.Command, args []string) error {
	businessContext := strings.Join(args, " ")
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		businessContext = string(data)
	}
	if strings.TrimSpace(businessContext) == "" {
		return fmt.Errorf("a business description is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	ctx := cmd.Context()

	database, svc, err := openState(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	keys := auth.NewKeys()
	if !keys.Has(string(cfg.Provider)) {
		return fmt.Errorf("no %s credential found\nSet %s or run `redwire auth`", cfg.Provider, config.APIKeyEnvVar(cfg.Provider))
	}
	client, err := newClient(cfg, keys)
	if err != nil {
		return err
	}

	st := studio.New(client, svc, studio.Options{
		Model:      cfg.Model,
		ImageModel: cfg.ImageModel,
		Audit:      audit.NewStore(database, logger),
		Logger:     logger,
	})

	reporter := progress.NewReporter(os.Stderr)
	reporter.Start(fmt.Sprintf("Rebranding with %s", cfg.Model))
	err = st.Rebrand(ctx, businessContext)
	if err != nil {
		reporter.Finish("Rebrand failed")
		_ = svc.Close(ctx)
		if llm.IsCredentialError(err) {
			return fmt.Errorf("the %s credential was rejected: %w", cfg.Provider, err)
		}
		return err
	}
	reporter.Finish("Rebrand applied")

	if err := svc.Close(ctx); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	s := svc.Settings()
	fmt.Printf("Site name:    %s\n", s.SiteName)
	fmt.Printf("Hero heading: %s\n", s.HeroHeading)
	return nil
}
