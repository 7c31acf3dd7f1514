package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// SetVersion sets the version information injected at build time.
func SetVersion(v, c string) {
	version = v
	commit = c
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("deskboard %s (%s)\n", version, commit)
	},
}
