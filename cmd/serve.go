package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/profile-finder/internal/api"
	"github.com/sells-group/profile-finder/internal/finder"
)

var (
	servePort     int
	serveMaxBatch int
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP resolution API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		env, err := initFinder(ctx, cfg, "serve")
		if err != nil {
			return err
		}
		defer env.Close()

		srv := newAPIServer(env, fmt.Sprintf(":%d", cfg.Server.Port))
		return runServer(ctx, srv)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().IntVar(&serveMaxBatch, "max-batch", api.DefaultMaxBatch, "max queries per batch request")
	rootCmd.AddCommand(serveCmd)
}

func newAPIServer(env *finderEnv, addr string) *http.Server {
	opts := []api.Option{api.WithMaxBatch(serveMaxBatch)}
	if env.Store != nil {
		opts = append(opts, api.WithStore(env.Store))
	}
	scheduler := finder.NewScheduler(env.Resolver, env.Options.MaxWorkers)
	return api.NewServer(env.Resolver, scheduler, opts...).HTTPServer(addr)
}

// runServer serves until ctx is done, then drains in-flight requests.
func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("starting server", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "server shutdown")
	}
	return nil
}
