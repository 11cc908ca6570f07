package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"font-helper/core/config"
	"font-helper/core/logger"
	"font-helper/feature/fonts"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// fontsCmd represents the fonts command
var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "List the fonts the server would report",
	Long:  `Scans the configured font directories and prints every face found. Use --json for the exact payload served on /figma/font-files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, logg, err := loadCLI()
		if err != nil {
			return err
		}
		defer logg.Sync()

		stack := openFonts(cfg, logg)
		defer stack.close()

		resp, err := fonts.NewService(stack.index, logg).FontFiles(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "FAMILY\tSTYLE\tWEIGHT\tSTRETCH\tITALIC\tPATH")
		paths := make([]string, 0, len(resp.FontFiles))
		for path := range resp.FontFiles {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			for _, e := range resp.FontFiles[path] {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%t\t%s\n", e.Family, e.Style, e.Weight, e.Stretch, e.Italic, path)
			}
		}
		return w.Flush()
	},
}

// pruneCmd represents the fonts prune command
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop cached metadata for fonts that no longer exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadCLI()
		if err != nil {
			return err
		}
		defer logg.Sync()

		stack := openFonts(cfg, logg)
		defer stack.close()
		if stack.cache == nil {
			return fmt.Errorf("font cache database is not available")
		}

		fontList, err := stack.index.Fonts(cmd.Context())
		if err != nil {
			return err
		}
		keep := make([]string, 0, len(fontList))
		for _, f := range fontList {
			keep = append(keep, f.Path)
		}

		removed, err := stack.cache.Prune(cmd.Context(), keep)
		if err != nil {
			return err
		}
		logg.Info("Font cache pruned", zap.Int64("removed", removed), zap.Int("kept", len(keep)))
		return nil
	},
}

// loadCLI loads configuration and a console logger for one-shot commands.
func loadCLI() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Log.Format = "console"
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logg, nil
}

func init() {
	fontsCmd.Flags().Bool("json", false, "print the font-files payload as JSON")
	fontsCmd.AddCommand(pruneCmd)
	RootCmd.AddCommand(fontsCmd)
}
