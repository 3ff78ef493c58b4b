// tunnels is a terminal puzzle: fly through a 3×3×3 cube of tunnels and find
// the target symbols by memory.
//
// Usage:
//
//	tunnels list              - List available modes
//	tunnels play [mode]       - Play a mode
//	tunnels menu              - Start menu to pick modes interactively
//	tunnels serve             - Start SSH server for remote play
//	tunnels web               - Start the HTTP/websocket server
//	tunnels scores [mode]     - Show best runs for a mode
//	tunnels solve             - Print the shortest route between two cells
//	tunnels replay <file>     - Verify a press journal
//	tunnels manual            - Show the rules and symbol map
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible puzzles
//	--db <path>           - Set database path (default: ~/.tunnels/runs.db)
//	--config <path>       - Custom tunnels.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tunnels/internal/core"
	"github.com/vovakirdan/tui-tunnels/internal/games/tunnels"
	"github.com/vovakirdan/tui-tunnels/internal/logging"
	"github.com/vovakirdan/tui-tunnels/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogJSON    string
	flagJournald   bool
	flagJournalDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tunnels",
	Short: "3D Tunnels - find your way through a cube of tunnels",
	Long: `3D Tunnels puts you inside a 3×3×3 cube of tunnels. Only a few cells
show their symbol; find the target symbols by turning and flying, and press
Target on each one.

Available commands:
  list     - Show all modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  web      - Start the HTTP server (websocket bots, solver API, metrics)
  scores   - View best runs
  solve    - Print the shortest route between two cells
  replay   - Verify a press journal
  manual   - Show the rules and symbol map

Examples:
  tunnels play
  tunnels play tunnels_practice --difficulty easy
  tunnels serve --ssh :2222 --http :8080
  tunnels solve --cell 0 --orientation +x/+y --target 26`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		tunnels.SetConfigPath(flagConfig)
		tunnels.SetDifficultyPreset(flagDifficulty)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Puzzle seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tunnels/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tunnels YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogJSON, "log-json", "", "Also write JSON logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagJournald, "log-journald", false, "Also send logs to the systemd journal")
	rootCmd.PersistentFlags().StringVar(&flagJournalDir, "journal", "", "Directory for compressed press journals (disabled when empty)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(manualCmd)
}

// newLogger builds the logger from the global flags. Interactive commands
// pass a file so log lines do not tear the terminal UI.
func newLogger(interactive bool) (*slog.Logger, func()) {
	opts := logging.Options{
		Level:    flagLogLevel,
		Prefix:   "tunnels",
		JSONPath: expandHome(flagLogJSON),
		Journald: flagJournald,
	}
	var logFile *os.File
	if interactive {
		path := expandHome("~/.tunnels/tunnels.log")
		//nolint:errcheck // Best-effort directory creation
		os.MkdirAll(filepath.Dir(path), 0o755)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err == nil {
			logFile = f
			opts.Output = f
		}
	}

	logger, closeLog, err := logging.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, func() {
		//nolint:errcheck // Best-effort flush on exit
		closeLog()
		if logFile != nil {
			logFile.Close()
		}
	}
}

// openStore opens the runs database. Without required, a failure only warns.
func openStore(required bool) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		if required {
			fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
