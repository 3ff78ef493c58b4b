package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-tunnels/internal/metrics"
	"github.com/vovakirdan/tui-tunnels/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeHTTP   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tunnels SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a mode picker menu.
Runs are stored per-server (all users share the same best runs).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tunnels/host_key

With --http, the same process also serves the websocket protocol, the
solver API and Prometheus metrics for every session, SSH ones included.

Examples:
  tunnels serve                           # Listen on :23234 with auto-generated key
  tunnels serve --ssh :2222               # Listen on port 2222
  tunnels serve --host-key ./my_host_key  # Use specific host key
  tunnels serve --http :8080              # Also serve HTTP and websocket clients

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeHTTP, "http", "", "Also serve HTTP on this address (disabled when empty)")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()
	store := openStore(true)
	defer store.Close()

	deps := tui.Deps{
		Store:      store,
		Logger:     logger,
		JournalDir: expandHome(flagJournalDir),
	}
	if flagServeHTTP != "" {
		deps.Metrics = metrics.New()
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = expandHome(flagHostKey)
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(cfg, deps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting tunnels SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	if flagServeHTTP != "" {
		fmt.Printf("Serving HTTP on %s\n", flagServeHTTP)
	}
	fmt.Println("Press Ctrl+C to stop")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx)
	})
	if flagServeHTTP != "" {
		g.Go(func() error {
			return serveHTTP(ctx, flagServeHTTP, newHTTPHandler(deps), logger)
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// serveHTTP runs an HTTP server until ctx is cancelled.
func serveHTTP(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "component", "http", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down", "component", "http")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return addr
}
