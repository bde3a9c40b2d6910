package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/keep2quillpad/pkg/types"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of keep2quillpad",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "keep2quillpad %s (backup format %d)\n", version, types.BackupVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
