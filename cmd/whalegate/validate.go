package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"whalecopy/whalegate/pkg/cli"
	"whalecopy/whalegate/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Long: `Load the configuration file, apply environment overrides and report every
validation error.

Examples:
  # Validate a config file
  whalegate validate --config whalegate.yaml

  # Validate defaults plus WHALEGATE_* environment variables
  whalegate validate`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		var verr config.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(out, "✗ %d configuration error(s):\n", len(verr.Errors))
			for _, fe := range verr.Errors {
				fmt.Fprintf(out, "  - %s\n", fe.Error())
			}
		}
		return cli.NewConfigError(cfgFile, err)
	}

	fmt.Fprintln(out, "✓ Configuration valid")
	fmt.Fprintf(out, "  listen:   %s%s\n", cfg.Proxy.ListenAddress, cfg.Proxy.Path)
	fmt.Fprintf(out, "  auth:     %s\n", cfg.Security.Auth.Mode)
	fmt.Fprintf(out, "  origins:  %s\n", strings.Join(cfg.Security.Origin.AllowedOrigins, ", "))
	fmt.Fprintf(out, "  data:     %s\n", cfg.Upstreams.DataURL)
	fmt.Fprintf(out, "  gamma:    %s\n", cfg.Upstreams.GammaURL)
	fmt.Fprintf(out, "  clob:     %s\n", cfg.Upstreams.ClobURL)
	return nil
}
