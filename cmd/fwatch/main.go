package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/d8barcelos/file-watcher/internal/app"
	"github.com/d8barcelos/file-watcher/internal/config"
	"github.com/d8barcelos/file-watcher/internal/journal"
	"github.com/d8barcelos/file-watcher/internal/watch"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to pure defaults when no
// config file exists so that watching works without running config init.
func loadConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config.NewConfig("default", defaults["base_dir"]), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// A hand-edited config file may omit the identity and derived paths.
	if cfg.WatchID == "" {
		cfg.WatchID = "default"
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = defaults["base_dir"]
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.BaseDir, "log")
	}
	if cfg.Journal.Enabled && cfg.Journal.Path == "" {
		cfg.Journal.Path = filepath.Join(cfg.BaseDir, "journal.db")
	}
	return cfg, nil
}

var rootCmd = &cobra.Command{
	Use:   "fwatch [flags] DIR",
	Short: "Watch a directory for file changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dir, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("watch directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("not a directory: %s", dir)
		}

		wcfg := watch.Config{
			Dir:            dir,
			Interval:       cfg.Watch.Interval(),
			Recursive:      cfg.Watch.Recursive,
			IgnorePatterns: cfg.Watch.Ignore,
			Quiet:          cfg.Watch.Quiet,
			Timestamps:     cfg.Watch.Timestamps,
			Workers:        cfg.Watch.Workers,
		}

		// Flags override the config file when explicitly set.
		if cmd.Flags().Changed("interval") {
			ms, _ := cmd.Flags().GetInt("interval")
			wcfg.Interval = time.Duration(ms) * time.Millisecond
		}
		if cmd.Flags().Changed("recursive") {
			wcfg.Recursive, _ = cmd.Flags().GetBool("recursive")
		}
		if cmd.Flags().Changed("quiet") {
			wcfg.Quiet, _ = cmd.Flags().GetBool("quiet")
		}
		if cmd.Flags().Changed("no-timestamps") {
			noTimestamps, _ := cmd.Flags().GetBool("no-timestamps")
			wcfg.Timestamps = !noTimestamps
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := app.NewApp(ctx, cfg, wcfg)
		if err != nil {
			return fmt.Errorf("initializing app: %w", err)
		}
		defer a.Close()

		return a.Run(ctx)
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get application defaults
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Generate a new watch ID
		watchID := uuid.New().String()

		// Create config with defaults
		cfg := config.NewConfig(watchID, defaults["base_dir"])

		// Initialize config file
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Watch ID: %s\n", watchID)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get application defaults
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Read config
		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		// Display config
		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Watch ID: %s\n", cfg.WatchID)
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:  %s\n", cfg.LogDir)
		if cfg.Journal.Enabled {
			fmt.Printf("Journal:  %s\n", cfg.Journal.Path)
		} else {
			fmt.Printf("Journal:  disabled\n")
		}
		fmt.Printf("Forward:  %s\n", cfg.Forward.Type)
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recently journaled events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Journal.Enabled {
			return fmt.Errorf("journaling is disabled in the config")
		}

		jrnl, err := journal.Open(cfg.Journal.Path, cfg.WatchID, "", watch.RealClock{})
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer jrnl.Close()

		entries, err := jrnl.Recent(limit)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No events recorded.")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("#%d  %-8s  %s  %s  (%s)\n",
				e.ID,
				e.Kind,
				e.ObservedAt.Format("2006-01-02 15:04:05"),
				e.FileName,
				e.Dir,
			)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().IntP("interval", "i", 1000, "Poll interval in milliseconds")
	rootCmd.Flags().BoolP("recursive", "r", false, "Recurse into subdirectories")
	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress modified events")
	rootCmd.Flags().BoolP("no-timestamps", "t", false, "Omit timestamps from console output")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of events to show")
}
