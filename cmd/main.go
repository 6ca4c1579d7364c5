package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"moodplayer/internal/clock"
	"moodplayer/internal/config"
	"moodplayer/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	clock  clock.Clock
	rng    *rand.Rand
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var seed int64

	root := &cobra.Command{
		Use:           "moodplayer",
		Short:         "Plays a track matched to the weather, season, market and sky",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 uses the current time)")

	setup := func() (*app, error) {
		return newApp(seed)
	}

	root.AddCommand(
		newScheduleCmd(setup),
		newPlayCmd(setup),
		newPickCmd(setup),
		newCatalogCmd(setup),
	)
	return root
}

// newApp loads configuration and builds the logger
func newApp(seed int64) (*app, error) {
	bootstrap, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	cfg, err := config.Load(bootstrap)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.LogLevel,
		File:        cfg.LogFile,
		Development: cfg.LogDevelopment,
		MaxSizeMB:   cfg.LogMaxSizeMB,
		MaxBackups:  cfg.LogMaxBackups,
		MaxAgeDays:  cfg.LogMaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		clock:  clock.InLocation(clock.NewRealClock(), cfg.Location),
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}
