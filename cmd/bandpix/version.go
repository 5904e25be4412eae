package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bandpix: %v\n", version)
		fmt.Printf("Commit: %v\n", commit)
		fmt.Printf("Build Date: %v\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
