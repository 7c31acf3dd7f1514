// Package commands wires up the deskboard CLI.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/quietblock/deskboard/internal/board"
	"github.com/quietblock/deskboard/internal/config"
	"github.com/quietblock/deskboard/internal/roadmap"
	"github.com/quietblock/deskboard/internal/storage"
	"github.com/quietblock/deskboard/internal/tui"
)

var (
	configPath string
	dbPath     string
)

var rootCmd = &cobra.Command{
	Use:   "deskboard",
	Short: "Kanban board, roadmap and team dashboard for the terminal",
	Long: `deskboard is the studio's internal admin suite in a terminal: a kanban
board, a project roadmap with milestones, the team roster, and a small
analytics dashboard. Everything is stored locally in a SQLite database.`,
	RunE: runUI,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default ~/.config/deskboard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the database (default ~/.config/deskboard/deskboard.db)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the config file, honoring the --config flag.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}

// openStore opens the database, honoring --db and the config override.
func openStore(cfg *config.Config) (*storage.Store, error) {
	path := dbPath
	if path == "" {
		path = cfg.DBPath
	}
	if path == "" {
		var err error
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return storage.New(path)
}

// openServices builds the board and roadmap services on top of the store.
func openServices(store *storage.Store, log *slog.Logger) (*board.Service, *roadmap.Service, error) {
	boardSvc, err := board.NewService(store, log)
	if err != nil {
		return nil, nil, err
	}
	roadmapSvc, err := roadmap.NewService(store, log)
	if err != nil {
		return nil, nil, err
	}
	return boardSvc, roadmapSvc, nil
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	// The terminal belongs to the TUI, so logs go to a file next to the db.
	log, closeLog := fileLogger()
	defer closeLog()
	slog.SetDefault(log)

	boardSvc, roadmapSvc, err := openServices(store, log)
	if err != nil {
		return err
	}

	app := tui.NewApp(boardSvc, roadmapSvc, store, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// fileLogger returns a slog.Logger writing to ~/.config/deskboard/deskboard.log,
// falling back to stderr when the file cannot be opened.
func fileLogger() (*slog.Logger, func()) {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, nil)), func() {}
	}
	path := filepath.Join(cfgDir, "deskboard", "deskboard.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, nil)), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, nil)), func() {}
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() }
}

// stderrLogger is used by non-TUI subcommands.
func stderrLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
