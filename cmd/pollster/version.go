package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pollster"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pollster",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pollster version %s\n", pollster.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
