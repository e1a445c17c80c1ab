package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GAKiknadze/swagger-to-docs/export"
	"github.com/GAKiknadze/swagger-to-docs/openapi"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export endpoint records, statistics, or a Postman collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outDir, _ := cmd.Flags().GetString("output")

		switch format {
		case "csv", "stats", "postman", "all":
		default:
			return fmt.Errorf("unknown export format %q (want csv, stats, postman, or all)", format)
		}

		doc, err := openapi.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		idx := openapi.BuildIndex(args[0], doc)
		exporter := export.New(doc, idx)

		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}

		stem := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		out := cmd.OutOrStdout()

		writeFile := func(suffix string, write func(w io.Writer) error) error {
			path := filepath.Join(outDir, stem+suffix)
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			defer f.Close()
			if err := write(f); err != nil {
				return err
			}
			fmt.Fprintf(out, "exported %s\n", path)
			return nil
		}

		if format == "csv" || format == "all" {
			if err := writeFile("_endpoints.csv", exporter.EndpointsCSV); err != nil {
				return err
			}
		}
		if format == "stats" || format == "all" {
			if err := writeFile("_stats.json", exporter.StatisticsJSON); err != nil {
				return err
			}
		}
		if format == "postman" || format == "all" {
			if err := writeFile("_postman.json", exporter.PostmanCollection); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("format", "all", "export format: csv, stats, postman, or all")
	exportCmd.Flags().StringP("output", "o", "exports", "output directory")
}
