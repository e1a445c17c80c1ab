package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GAKiknadze/swagger-to-docs/openapi"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check that a spec has the required OpenAPI structure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := openapi.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		problems := doc.Validate()
		if len(problems) == 0 {
			fmt.Fprintln(out, "Specification is valid.")
			fmt.Fprintf(out, "  Title:   %s\n", doc.Title())
			fmt.Fprintf(out, "  Version: %s\n", doc.Version())
			return nil
		}

		fmt.Fprintln(out, "Validation errors:")
		for i, p := range problems {
			fmt.Fprintf(out, "%d. %s\n", i+1, p)
		}
		return fmt.Errorf("%s: %d validation error(s)", args[0], len(problems))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
