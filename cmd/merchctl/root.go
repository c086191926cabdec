package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dbhs-alumni/merchstore/internal/config"
	dbRedis "github.com/dbhs-alumni/merchstore/internal/db/redis"
	logpkg "github.com/dbhs-alumni/merchstore/internal/logger"
	"github.com/dbhs-alumni/merchstore/internal/version"
)

var (
	envName string
	verbose bool
)

// app holds what every subcommand needs once the root command connected.
type app struct {
	cfg    config.Config
	store  *dbRedis.Store
	logger *zap.Logger
}

var current *app

var rootCmd = &cobra.Command{
	Use:           "merchctl",
	Short:         "Administer the alumni merch storefront",
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		a, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if current != nil {
			current.store.Close()
			_ = current.logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envName, "env", "e", config.GetEnv(), "config environment (config/<env>.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func connect(ctx context.Context) (*app, error) {
	cfg, err := config.Load(envName)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err := logpkg.NewLogger(envName, level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Password:   cfg.Database.Password,
		ClientName: "merchctl",
	})
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}

	return &app{cfg: cfg, store: store, logger: logger}, nil
}
