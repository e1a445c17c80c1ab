package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GAKiknadze/swagger-to-docs/docgen"
	"github.com/GAKiknadze/swagger-to-docs/llm"
)

var generateCmd = &cobra.Command{
	Use:   "generate <file-or-directory>",
	Short: "Generate Markdown documentation for one or more specs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if out, _ := cmd.Flags().GetString("output"); out != "" {
			cfg.Docs.OutputDir = out
		}
		if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
			cfg.Docs.Language = lang
		}
		advanced, _ := cmd.Flags().GetBool("advanced")

		gen, err := buildGenerator(advanced)
		if err != nil {
			return err
		}

		info, err := os.Stat(args[0])
		if err != nil {
			return fmt.Errorf("input %s: %w", args[0], err)
		}
		if info.IsDir() {
			return gen.ProcessDirectory(cmd.Context(), args[0])
		}
		return gen.ProcessFile(cmd.Context(), args[0])
	},
}

func buildGenerator(advanced bool) (docgen.DocGenerator, error) {
	model, err := llm.New(cfg.LLM)
	if err != nil {
		return nil, err
	}

	opts := docgen.Options{
		OutputDir:       cfg.Docs.OutputDir,
		Language:        cfg.Docs.Language,
		IncludeSchemas:  cfg.Docs.IncludeSchemas,
		IncludeSecurity: cfg.Docs.IncludeSecurity,
	}
	if advanced {
		return docgen.NewAdvancedGenerator(model, opts)
	}
	return docgen.NewGenerator(model, opts)
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("output", "o", "", "output directory (default from config)")
	generateCmd.Flags().String("lang", "", "documentation language: ru or en (default from config)")
	generateCmd.Flags().Bool("advanced", false, "use the advanced generator (formatted prompts, resolved schemas, API overview)")
}
