package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/restaurant-menu/config"
	"github.com/yeremiapane/restaurant-menu/database"
	"github.com/yeremiapane/restaurant-menu/events"
	"github.com/yeremiapane/restaurant-menu/router"
	"github.com/yeremiapane/restaurant-menu/utils"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.GinMode == gin.ReleaseMode {
				gin.SetMode(gin.ReleaseMode)
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:    ":" + cfg.Port,
				Handler: router.SetupRouter(db, cfg, events.NewHub()),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go func() {
				utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					utils.ErrorLogger.WithError(err).Error("server stopped")
					stop()
				}
			}()

			<-ctx.Done()
			utils.InfoLogger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	return cmd
}

func newMigrateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := openDatabase(cfg)
			return err
		},
	}
}

func newSeedCommand(cfg *config.Config) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load restaurants, menus and dietary tags from a YAML fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := database.LoadSeed(file)
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			return database.ApplySeed(cmd.Context(), db, seed)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "database/testdata/seed.yaml", "seed fixture path")
	return cmd
}
