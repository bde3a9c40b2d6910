// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the keep2quillpad CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the keep2quillpad CLI.
var rootCmd = &cobra.Command{
	Use:   "keep2quillpad",
	Short: "Convert Google Keep notes into a Quillpad backup",
	Long: `keep2quillpad converts the Google Keep notes of a Google Takeout export
into a backup that Quillpad can import.

Use convert to produce the backup, and catalog to inspect a backup before
importing it.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./keep2quillpad.yaml or ~/.config/keep2quillpad/keep2quillpad.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("keep2quillpad")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "keep2quillpad"))
		}
	}

	viper.SetEnvPrefix("KEEP2QUILLPAD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: could not read config %s: %v\n", cfgFile, err)
	}
}

// run executes the CLI and returns the process exit code.
func run() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
