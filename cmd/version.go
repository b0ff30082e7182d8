package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the marquee version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("marquee %s\n", Version)
	},
}
