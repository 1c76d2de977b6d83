package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mentio/mentio/plugin/llm"
	"github.com/mentio/mentio/server"
	"github.com/mentio/mentio/server/profile"
	"github.com/mentio/mentio/store"
	"github.com/mentio/mentio/store/db"
)

var rootCmd = &cobra.Command{
	Use:   "mentio",
	Short: "An AI assistant service for teachers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p, err := profile.FromEnv()
		if err != nil {
			return errors.Wrap(err, "resolve profile")
		}

		driver, err := db.NewDriver(p)
		if err != nil {
			return errors.Wrap(err, "create database driver")
		}
		st := store.New(driver)
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return errors.Wrap(err, "migrate schema")
		}

		backend, err := llm.NewOpenAI(p.OpenAIAPIKey, p.OpenAIBaseURL, p.AIModel)
		if err != nil {
			return errors.Wrap(err, "create generation backend")
		}

		srv := server.New(p, st, backend)
		slog.Info("mentio server starting", "addr", p.ListenAddr(), "driver", p.Driver, "mode", p.Mode)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func main() {
	// A missing .env is fine; env vars win either way.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		slog.Error("mentio server exited", "err", err)
		os.Exit(1)
	}
}
