package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	resetBoard   bool
	resetRoadmap bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard stored state and reseed with example data",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Neither flag means both.
		all := !resetBoard && !resetRoadmap

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

		if all || resetBoard {
			if err := boardSvc.Reset(); err != nil {
				return err
			}
			fmt.Println("Board reset to seed data")
		}
		if all || resetRoadmap {
			if err := roadmapSvc.Reset(); err != nil {
				return err
			}
			fmt.Println("Roadmap reset to seed data")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetBoard, "board", false, "reset only the board")
	resetCmd.Flags().BoolVar(&resetRoadmap, "roadmap", false, "reset only the roadmap")
}
