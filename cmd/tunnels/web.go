package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tunnels/internal/config"
	"github.com/vovakirdan/tui-tunnels/internal/metrics"
	"github.com/vovakirdan/tui-tunnels/internal/platform/tui"
	"github.com/vovakirdan/tui-tunnels/internal/transport/web"
	"github.com/vovakirdan/tui-tunnels/internal/transport/ws"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP server",
	Long: `Start an HTTP server for bots and tooling.

Routes:
  GET  /ws                 - Websocket play (HELLO, then ACT commands)
  POST /api/solve          - Shortest route between two cells
  GET  /api/scores/{mode}  - Best runs as JSON
  GET  /metrics            - Prometheus metrics
  GET  /healthz            - Liveness probe

Examples:
  tunnels web
  tunnels web --addr :9000 --difficulty hard
  websocat ws://localhost:8080/ws`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address")
}

func runWeb(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()
	store := openStore(false)
	if store != nil {
		defer store.Close()
	}

	deps := tui.Deps{
		Store:      store,
		Metrics:    metrics.New(),
		Logger:     logger,
		JournalDir: expandHome(flagJournalDir),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving HTTP on %s\n", flagWebAddr)
	fmt.Println("Press Ctrl+C to stop")
	if err := serveHTTP(ctx, flagWebAddr, newHTTPHandler(deps), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// newHTTPHandler wires the websocket server and the JSON API onto one router.
// Websocket games follow --config and --difficulty.
func newHTTPHandler(deps tui.Deps) http.Handler {
	wsOpts := ws.Options{
		Logger:     deps.Logger,
		Metrics:    deps.Metrics,
		Store:      deps.Store,
		JournalDir: deps.JournalDir,
	}
	cfg, err := loadTunnelsConfig()
	if err != nil {
		deps.Logger.Warn("using default tunnels config", "error", err)
	} else {
		wsOpts.Config = &cfg
	}

	return web.NewHandler(web.Options{
		Logger:    deps.Logger,
		Metrics:   deps.Metrics,
		Store:     deps.Store,
		Websocket: ws.NewServer(wsOpts),
	})
}

// loadTunnelsConfig loads the tunnels config named by the global flags.
func loadTunnelsConfig() (config.TunnelsConfig, error) {
	cfg, err := config.LoadTunnels(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		config.ApplyPreset(&cfg, config.ParsePreset(flagDifficulty))
	}
	return cfg, nil
}
