// Package main provides the symval binary: it validates JSON instances
// against the registered entity schemas and describes their classification.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "symval"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		noColor    bool
		app        *App
	)

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Symbolic constraint validation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				color.NoColor = true
			}
			var err error
			app, err = NewApp(configPath, logLevel, cmd.ErrOrStderr())
			return err
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error), overrides the config")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	var (
		trim    bool
		lower   bool
		metrics bool
	)
	validateCmd := &cobra.Command{
		Use:   "validate <entity> [file or glob...]",
		Short: "Validate JSON instances, read from stdin when no file is given",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := validateOptions{trim: trim, lower: lower}
			err := app.Validate(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args[0], args[1:], opts)
			if metrics {
				app.WriteMetrics(cmd.ErrOrStderr())
			}
			return err
		},
	}
	validateCmd.Flags().BoolVar(&trim, "trim", false, "Trim spaces of string values before validating")
	validateCmd.Flags().BoolVar(&lower, "lower", false, "Lower-case string values before validating")
	validateCmd.Flags().BoolVar(&metrics, "metrics", false, "Print validation counters to stderr")
	cmd.AddCommand(validateCmd)

	var asOpenAPI bool
	describeCmd := &cobra.Command{
		Use:   "describe [entity...]",
		Short: "Print the symbolic view and classification of entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Describe(cmd.Context(), cmd.OutOrStdout(), args, asOpenAPI)
		},
	}
	describeCmd.Flags().BoolVar(&asOpenAPI, "openapi", false, "Print an OpenAPI 3 document instead")
	cmd.AddCommand(describeCmd)

	cmd.AddCommand(&cobra.Command{
		Use:              "version",
		Short:            "Print version information",
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}
