package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"font-helper/core/config"
	"font-helper/core/fontsource"
	"font-helper/core/loader"
	"font-helper/core/logger"
	"font-helper/core/metrics"
	"font-helper/core/router"
	"font-helper/core/storage"
	"font-helper/core/supervisor"

	_ "font-helper/docs/swagger"
	"font-helper/feature/docs"
	"font-helper/feature/fonts"
	"font-helper/feature/library"
	"font-helper/feature/status"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
// @title Font Helper API
// @version 1.0
// @description Loopback font helper that lists and serves locally installed fonts to the Figma web client.
// @host 127.0.0.1:44950
// @BasePath /
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the font helper server",
	Long: `Starts the loopback HTTP server and keeps it running. Client disconnects
restart the serving loop; any other fault stops the process with a non-zero exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		// Reject ports that can never be bound before touching anything else
		if !cfg.Server.IsValidPort() {
			return fmt.Errorf("invalid server port %d", cfg.Server.Port)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// SIGINT and SIGTERM cancel ctx, which stops the supervisor cleanly
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// 3. Font index (database cache is optional)
		stack := openFonts(cfg, logg)
		defer stack.close()

		// 4. Remote library (optional)
		var lib *library.Service
		if cfg.Storage.Enabled {
			store, err := storage.NewClient(cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
			// Downloads invalidate the index so new fonts show up on the next listing
			lib = library.NewService(store, cfg.Storage, cfg.Fonts.LibraryDir, logg, stack.index.Invalidate)
		}

		// 5. Features
		m := metrics.New()
		mgr := loader.NewManager(logg)
		mgr.Register(fonts.NewFeature(stack.index, logg))
		mgr.Register(library.NewFeature(lib, lib != nil))
		mgr.Register(status.NewFeature(m))
		mgr.Register(docs.NewFeature(cfg.Server.Docs))

		// Routes are registered once, the supervisor seals the table on Run
		table := router.NewTable()
		if _, err := mgr.LoadAll(table); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		// 6. Background index warm-up and directory watching
		go func() {
			if fontList, err := stack.index.Fonts(ctx); err != nil {
				logg.Warn("Initial font scan failed", zap.Error(err))
			} else {
				logg.Info("Font index built", zap.Int("files", len(fontList)))
			}
		}()
		if cfg.Fonts.Watch {
			w := fontsource.NewWatcher(stack.index, cfg.Fonts.Directories(), cfg.Fonts.WatchDebounce, logg)
			go func() {
				if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logg.Warn("Font directory watcher stopped", zap.Error(err))
				}
			}()
		}

		// 7. Serve until shutdown or a fatal fault
		// Client disconnects restart the serving loop, anything else ends Run
		sup := supervisor.New(table, cfg, supervisor.Options{
			Logger:  logg,
			Metrics: m,
		})
		return sup.Run(ctx)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
