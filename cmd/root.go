// Package cmd wires the CLI together.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/GAKiknadze/swagger-to-docs/config"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "swagger-to-docs",
	Short:         "Convert OpenAPI/Swagger specifications into Markdown documentation",
	Long:          "swagger-to-docs analyzes OpenAPI/Swagger specifications and generates Markdown documentation with a language model, split by tags and endpoints. It also validates specs, prints statistics, and exports endpoint data to CSV, JSON, and Postman collections.",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		return err
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config.yaml (default: ~/.config/swagger-to-docs/config.yaml)")
}
