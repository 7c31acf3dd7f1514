package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/quietblock/deskboard/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the board (and roadmap) to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer store.Close()

		boardSvc, roadmapSvc, err := openServices(store, stderrLogger())
		if err != nil {
			return err
		}

		path := exportOut
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			dateStr := time.Now().Format("2006-01-02")
			path = filepath.Join(home, fmt.Sprintf("deskboard-export-%s.%s", dateStr, exportFormat))
		}

		switch exportFormat {
		case "csv":
			err = export.ToCSV(boardSvc.Board(), path)
		case "json":
			err = export.ToJSON(boardSvc.Board(), roadmapSvc.Roadmap(), path)
		default:
			return fmt.Errorf("unknown format %q (want csv or json)", exportFormat)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Exported to %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format: csv or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default ~/deskboard-export-<date>.<format>)")
}
