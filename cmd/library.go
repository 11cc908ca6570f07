package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"font-helper/core/storage"
	"font-helper/feature/library"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// libraryCmd represents the library command
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the shared font library",
	Long:  `Mirrors fonts between the configured S3 bucket and the local library directory.`,
}

// librarySyncCmd represents the library sync command
var librarySyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download missing or changed library fonts",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newLibraryService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		report, err := svc.Sync(cmd.Context())
		if err != nil {
			return err
		}
		logg.Info("Library sync finished",
			zap.Int("downloaded", len(report.Downloaded)),
			zap.Int("skipped", len(report.Skipped)),
			zap.Strings("failed", report.Failed))
		if len(report.Failed) > 0 {
			return fmt.Errorf("%d library fonts failed to download", len(report.Failed))
		}
		return nil
	},
}

// libraryPushCmd represents the library push command
var libraryPushCmd = &cobra.Command{
	Use:   "push <font files...>",
	Short: "Upload local font files to the library",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newLibraryService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		keys, err := svc.Push(cmd.Context(), args)
		if err != nil {
			return err
		}
		logg.Info("Library push finished", zap.Strings("keys", keys))
		return nil
	},
}

// libraryStatusCmd represents the library status command
var libraryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Compare the bucket with the local library directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newLibraryService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		files, err := svc.Status(cmd.Context())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	},
}

func newLibraryService() (*library.Service, *zap.Logger, error) {
	cfg, logg, err := loadCLI()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Storage.Enabled {
		return nil, nil, fmt.Errorf("font library is disabled (set STORAGE_ENABLED=true)")
	}
	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return library.NewService(store, cfg.Storage, cfg.Fonts.LibraryDir, logg, nil), logg, nil
}

func init() {
	libraryCmd.AddCommand(librarySyncCmd, libraryPushCmd, libraryStatusCmd)
	RootCmd.AddCommand(libraryCmd)
}
