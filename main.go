package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/restaurant-menu/config"
	"github.com/yeremiapane/restaurant-menu/database"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		utils.ErrorLogger.Error(err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "restaurant-menu",
		Short:         "Restaurant menu store and query API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			utils.InitLogger(cfg.LogLevel)
		},
	}
	root.PersistentFlags().StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "database driver (sqlite or mysql)")
	root.PersistentFlags().StringVar(&cfg.DBDSN, "db-dsn", cfg.DBDSN, "database DSN")

	root.AddCommand(newServeCommand(cfg), newMigrateCommand(cfg), newSeedCommand(cfg))
	return root
}

// openDatabase connects and syncs the schema; every subcommand needs both.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
