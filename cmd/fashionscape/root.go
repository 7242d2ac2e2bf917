package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/fashionscape/internal/config"
	"github.com/cory-johannsen/fashionscape/internal/observability"
)

var (
	configPath   string
	profilePaths []string
	seedFlag     uint64
)

var rootCmd = &cobra.Command{
	Use:   "fashionscape",
	Short: "Fashionscape - preview, lock, and shuffle character outfits",
	Long: `Fashionscape edits the appearance of a character without touching what it
actually wears. Items, base models, and colors are previewed and saved as
swaps, undone and redone, locked against the randomizer, and exported as
plain outfit files that can be imported again later.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml",
		"Path to the configuration file (empty = defaults and FASHION_* environment only)")
	rootCmd.PersistentFlags().StringSliceVar(&profilePaths, "profile", nil,
		"Player profile YAML; repeat to register more characters (default: fashionscape.profile)")
	rootCmd.PersistentFlags().Uint64Var(&seedFlag, "seed", 0,
		"Seed the randomizer for reproducible shuffles (0 = crypto/rand)")
}

// setup loads configuration, builds the logger, and prepares the shared
// environment. The returned cleanup must be called once the command is done.
func setup() (*environment, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	env, err := newEnvironment(cfg, logger, profilePaths, seedFlag)
	if err != nil {
		logger.Error("preparing environment", zap.Error(err))
		_ = logger.Sync()
		return nil, nil, err
	}
	cleanup := func() {
		env.Close()
		_ = logger.Sync()
	}
	return env, cleanup, nil
}
