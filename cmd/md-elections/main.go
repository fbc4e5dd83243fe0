// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the md-elections CLI, which converts
// Maryland general-election result files into OpenElections CSVs.
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

// rootCmd is the base command for the md-elections CLI.
var rootCmd = &cobra.Command{
	Use:   "md-elections",
	Short: "Convert Maryland general election results to OpenElections CSVs",
	Long: `md-elections converts historical Maryland general-election result files
into the OpenElections county CSV layout.

Source files are named "<year> General Election.csv" or ".txt" and come in
three layouts: pivoted county sheets, pipe-delimited database exports, and
modern precinct-level CSVs. Each is written to
"<YYYYMMDD>__md__general__county.csv". Converted files can be indexed in a
local SQLite database for querying and export.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./md-elections.yaml or ~/.config/md-elections/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("md-elections")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "md-elections"))
		}
	}

	viper.SetEnvPrefix("MD_ELECTIONS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// stringSetting resolves a setting from, in order: an explicitly set flag,
// the config file or MD_ELECTIONS_<KEY> environment variable, and the
// flag default.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	v, _ := cmd.Flags().GetString(flag)
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	return v
}

func boolSetting(cmd *cobra.Command, flag, key string) bool {
	v, _ := cmd.Flags().GetBool(flag)
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return v
}

func intSetting(cmd *cobra.Command, flag, key string) int {
	v, _ := cmd.Flags().GetInt(flag)
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
