package main

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/2beens/gymlog/internal/config"
	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/logging"
)

var (
	env        string
	configPath string
	logLevel   string

	cfg    *config.Config
	dbPool *pgxpool.Pool
)

var errOwnerRequired = errors.New("--owner must be a positive user id")

var rootCmd = &cobra.Command{
	Use:   "gymctl",
	Short: "gymlog maintenance tool",
	Long: `gymctl runs maintenance tasks against the gymlog database.

COMMANDS:

  migrate              apply pending schema migrations
  recompute            rederive and clean rest durations
  import-legacy        import an old SQLite training database
  migrate-supersets    split combined superset exercises into linked sets
  export-sets          write an owner's sets as a parquet file

EXAMPLES:

  $ gymctl migrate
  $ gymctl recompute --scheduled
  $ gymctl import-legacy --sqlite training.db --owner 1
  $ gymctl migrate-supersets --mapping supersets.toml --owner 1 --execute
  $ gymctl export-sets --owner 1 --out sets.parquet`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(env, configPath)
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		logging.Setup(logging.LoggerSetupParams{
			LogToStdout: true,
			LogLevel:    level,
			Environment: cfg.Environment,
		})

		dbPool, err = db.NewDBPool(cmd.Context(), poolParams())
		if err != nil {
			return fmt.Errorf("new db pool: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbPool != nil {
			dbPool.Close()
		}
	},
}

func poolParams() db.NewDBPoolParams {
	return db.NewDBPoolParams{
		DBHost:   cfg.PostgresHost,
		DBPort:   cfg.PostgresPort,
		DBName:   cfg.PostgresDBName,
		AppName:  "gymctl",
		MaxConns: 4, // one-shot jobs, sequential transactions
	}
}

func validateOwner(ownerID int) error {
	if ownerID <= 0 {
		return errOwnerRequired
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
}
