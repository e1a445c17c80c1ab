package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GAKiknadze/swagger-to-docs/openapi"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Print statistics and structure of a spec",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		showEndpoints, _ := cmd.Flags().GetBool("endpoints")
		return runAnalyze(cmd.Context(), cmd.OutOrStdout(), args[0], showEndpoints)
	},
}

func runAnalyze(ctx context.Context, out io.Writer, path string, showEndpoints bool) error {
	doc, err := openapi.Load(ctx, path)
	if err != nil {
		return err
	}

	if problems := doc.Validate(); len(problems) > 0 {
		fmt.Fprintln(out, "Validation problems:")
		for _, p := range problems {
			fmt.Fprintf(out, "  - %s\n", p)
		}
		fmt.Fprintln(out)
	} else {
		fmt.Fprintln(out, "Specification is valid.")
		fmt.Fprintln(out)
	}

	idx := openapi.BuildIndex(path, doc)
	stats := idx.Stats()

	fmt.Fprintf(out, "Title:            %s\n", stats.Title)
	fmt.Fprintf(out, "Version:          %s\n", stats.Version)
	fmt.Fprintf(out, "Total endpoints:  %d\n", stats.TotalEndpoints)
	fmt.Fprintf(out, "Schemas:          %d\n", stats.Schemas)
	fmt.Fprintf(out, "Security schemes: %d\n", stats.SecuritySchemes)

	fmt.Fprintln(out, "\nMethods:")
	for _, m := range sortedKeys(stats.Methods) {
		fmt.Fprintf(out, "  %-7s %d\n", m, stats.Methods[m])
	}

	fmt.Fprintln(out, "\nTags:")
	for _, t := range sortedKeys(stats.Tags) {
		fmt.Fprintf(out, "  %-20s %d endpoints\n", t, stats.Tags[t])
	}

	if schemes := doc.SecuritySchemes(); len(schemes) > 0 {
		fmt.Fprintln(out, "\nSecurity schemes:")
		names := make([]string, 0, len(schemes))
		for name := range schemes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			scheme, _ := schemes[name].(map[string]any)
			t, _ := scheme["type"].(string)
			fmt.Fprintf(out, "  %s: %s\n", name, t)
		}
	}

	if showEndpoints {
		fmt.Fprintln(out, "\nEndpoints:")
		for _, ep := range idx.List() {
			tags := strings.Join(ep.Tags, ", ")
			if tags == "" {
				tags = "untagged"
			}
			fmt.Fprintf(out, "  %-7s %-40s [%s]\n", ep.Method, ep.Path, tags)
		}
	}

	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Bool("endpoints", false, "list every endpoint")
}
