package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/redwireai/storefront/internal/audit"
	"github.com/redwireai/storefront/internal/content"
)

// previewWidth truncates long values such as data URLs in listings.
const previewWidth = 60

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect, export and import site settings",
	Long: `Reads and writes the persisted site settings directly.

Stop a running server before importing: it holds its own copy of the
site state and will overwrite imported values on its next save.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List settings fields and their current values",
	RunE:  runSettingsShow,
}

var settingsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current settings as YAML",
	RunE:  runSettingsExport,
}

var settingsImportCmd = &cobra.Command{
	Use:   "import <file.yml>",
	Short: "Merge settings from a YAML file",
	Long: `Merges the keys of a YAML mapping over the current settings. Unknown
keys and non-string values are skipped; fields not in the file keep their
current value.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsImport,
}

func init() {
	settingsShowCmd.Flags().String("section", "", "only show fields of this section")
	settingsExportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsExportCmd)
	settingsCmd.AddCommand(settingsImportCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
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
	defer svc.Close(ctx)

	fields := content.Fields()
	if section, _ := cmd.Flags().GetString("section"); section != "" {
		fields = content.FieldsIn(section)
		if len(fields) == 0 {
			return fmt.Errorf("unknown section %q (valid: %s)", section, strings.Join(content.Sections, ", "))
		}
	}

	settings := svc.Settings()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTION\tFIELD\tVALUE")
	for _, f := range fields {
		v, _ := settings.Get(f.Key)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Section, f.Key, preview(v))
	}
	return tw.Flush()
}

func runSettingsExport(cmd *cobra.Command, args []string) error {
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
	defer svc.Close(ctx)

	settings := svc.Settings()
	out := make(map[string]string)
	for _, f := range content.Fields() {
		v, _ := settings.Get(f.Key)
		out[f.Key] = v
	}

	var w io.Writer = cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer file.Close()
		w = file
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return enc.Close()
}

func runSettingsImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	partial, err := parseSettingsYAML(data)
	if err != nil {
		return err
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

	var applied []string
	if _, err := svc.UpdateSettings(func(s *content.SiteSettings) error {
		applied = content.MergeSettings(s, partial)
		return nil
	}); err != nil {
		_ = svc.Close(ctx)
		return fmt.Errorf("applying settings: %w", err)
	}
	if err := svc.Close(ctx); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	sort.Strings(applied)
	audit.NewStore(database, logger).Record(ctx, audit.Entry{
		Actor:    audit.ActorAdmin,
		Action:   audit.ActionSettingsImport,
		Target:   "settings",
		NewValue: strings.Join(applied, ","),
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d fields from %s\n", len(applied), len(partial), args[0])
	return nil
}

// parseSettingsYAML decodes a YAML mapping into the partial form used for
// persisted settings.
func parseSettingsYAML(data []byte) (content.PartialSettings, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}
	partial := make(content.PartialSettings, len(raw))
	for k, v := range raw {
		b, err := json.Marshal(v)
		if err != nil {
			continue
		}
		partial[k] = b
	}
	return partial, nil
}

func preview(v string) string {
	v = strings.ReplaceAll(v, "\n", `\n`)
	if len(v) > previewWidth {
		return v[:previewWidth-3] + "..."
	}
	return v
}
