package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"whalecopy/whalegate/pkg/cli"
	"whalecopy/whalegate/pkg/config"
)

var (
	// Global flags
	cfgFile  string
	envFiles []string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "whalegate",
	Short: "Whalegate - Polymarket gateway for copy trading",
	Long: `Whalegate is an authenticated gateway in front of the Polymarket data,
gamma and clob APIs.

Browser clients call a single entry point naming an endpoint (leaderboard,
search, markets, trending, event, orderbook, positions, profile, activity).
Whalegate checks the caller's origin and bearer token, validates the
parameters, calls the upstream API and returns its JSON.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFiles...); err != nil {
			return cli.NewConfigError("", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults and environment only when empty)")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files loaded before the configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
