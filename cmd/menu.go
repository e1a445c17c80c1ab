package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GAKiknadze/swagger-to-docs/config"
	"github.com/GAKiknadze/swagger-to-docs/export"
	"github.com/GAKiknadze/swagger-to-docs/openapi"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m := &menu{
			in:  bufio.NewReader(cmd.InOrStdin()),
			out: cmd.OutOrStdout(),
		}
		return m.run(cmd)
	},
}

type menu struct {
	in  *bufio.Reader
	out io.Writer
}

func (m *menu) run(cmd *cobra.Command) error {
	fmt.Fprintln(m.out, strings.Repeat("=", 70))
	fmt.Fprintln(m.out, "OpenAPI to Markdown Documentation Generator")
	fmt.Fprintln(m.out, strings.Repeat("=", 70))

	for {
		fmt.Fprintln(m.out, "\nMain menu:")
		fmt.Fprintln(m.out, "  1. Process OpenAPI file/directory")
		fmt.Fprintln(m.out, "  2. Analyze OpenAPI specification")
		fmt.Fprintln(m.out, "  3. Export to other formats")
		fmt.Fprintln(m.out, "  4. Validate OpenAPI file")
		fmt.Fprintln(m.out, "  5. Configure")
		fmt.Fprintln(m.out, "  6. Exit")

		choice := m.prompt("Select an option (1-6)", "")
		switch choice {
		case "1":
			m.processFiles(cmd)
		case "2":
			m.analyzeFile(cmd)
		case "3":
			m.exportData(cmd)
		case "4":
			m.validateFile(cmd)
		case "5":
			m.configure()
		case "6":
			fmt.Fprintln(m.out, "Bye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice, try again.")
		}
	}
}

func (m *menu) prompt(label, fallback string) string {
	if fallback != "" {
		fmt.Fprintf(m.out, "%s [%s]: ", label, fallback)
	} else {
		fmt.Fprintf(m.out, "%s: ", label)
	}
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func (m *menu) processFiles(cmd *cobra.Command) {
	input := m.prompt("Path to a spec file or directory", cfg.Docs.InputDir)

	info, err := os.Stat(input)
	if err != nil {
		fmt.Fprintf(m.out, "Path not found: %s\n", input)
		return
	}

	gen, err := buildGenerator(true)
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}

	if info.IsDir() {
		err = gen.ProcessDirectory(cmd.Context(), input)
	} else {
		err = gen.ProcessFile(cmd.Context(), input)
	}
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Documentation created.")
}

func (m *menu) analyzeFile(cmd *cobra.Command) {
	path := m.prompt("Path to an OpenAPI file", "")
	if path == "" {
		return
	}
	showEndpoints := strings.EqualFold(m.prompt("Show all endpoints? (y/n)", "n"), "y")
	if err := runAnalyze(cmd.Context(), m.out, path, showEndpoints); err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
	}
}

func (m *menu) exportData(cmd *cobra.Command) {
	path := m.prompt("Path to an OpenAPI file", "")
	if path == "" {
		return
	}

	fmt.Fprintln(m.out, "\nExport formats:")
	fmt.Fprintln(m.out, "  1. CSV (endpoint list)")
	fmt.Fprintln(m.out, "  2. JSON (statistics)")
	fmt.Fprintln(m.out, "  3. Postman collection")
	fmt.Fprintln(m.out, "  4. All formats")
	choice := m.prompt("Select a format (1-4)", "4")

	doc, err := openapi.Load(cmd.Context(), path)
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	idx := openapi.BuildIndex(path, doc)
	exporter := export.New(doc, idx)

	outDir := "exports"
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	write := func(suffix string, fn func(w io.Writer) error) {
		target := filepath.Join(outDir, stem+suffix)
		f, err := os.Create(target)
		if err != nil {
			fmt.Fprintf(m.out, "Error: %v\n", err)
			return
		}
		defer f.Close()
		if err := fn(f); err != nil {
			fmt.Fprintf(m.out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(m.out, "Exported %s\n", target)
	}

	if choice == "1" || choice == "4" {
		write("_endpoints.csv", exporter.EndpointsCSV)
	}
	if choice == "2" || choice == "4" {
		write("_stats.json", exporter.StatisticsJSON)
	}
	if choice == "3" || choice == "4" {
		write("_postman.json", exporter.PostmanCollection)
	}
}

func (m *menu) validateFile(cmd *cobra.Command) {
	path := m.prompt("Path to an OpenAPI file", "")
	if path == "" {
		return
	}
	if err := validateCmd.RunE(cmd, []string{path}); err != nil {
		fmt.Fprintf(m.out, "%v\n", err)
	}
}

func (m *menu) configure() {
	fmt.Fprintln(m.out, "\nAvailable providers:")
	providers := []string{"ollama", "openai", "anthropic", "gemini"}
	for i, p := range providers {
		fmt.Fprintf(m.out, "  %d. %s\n", i+1, p)
	}

	choice := m.prompt("Select a provider (1-4)", "1")
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(providers) {
		fmt.Fprintln(m.out, "Invalid choice.")
		return
	}
	provider := providers[n-1]

	models := config.KnownModels[provider]
	fmt.Fprintf(m.out, "\nKnown models for %s:\n", provider)
	for i, model := range models {
		fmt.Fprintf(m.out, "  %d. %s\n", i+1, model)
	}
	modelChoice := m.prompt("Select a model or type your own", "1")
	model := modelChoice
	if i, err := strconv.Atoi(modelChoice); err == nil && i >= 1 && i <= len(models) {
		model = models[i-1]
	}

	cfg.LLM.Provider = provider
	cfg.LLM.Model = model
	cfg.LLM.BaseURL = config.DefaultBaseURLs[provider]

	if provider != "ollama" {
		if key := m.prompt("API key (empty to use the environment variable)", ""); key != "" {
			cfg.LLM.APIKey = key
		} else if env, ok := config.APIKeyEnvVars[provider]; ok {
			cfg.LLM.APIKey = os.Getenv(env)
		}
	}

	cfg.Docs.Language = m.prompt("Documentation language (ru/en)", cfg.Docs.Language)
	cfg.Docs.OutputDir = m.prompt("Output directory", cfg.Docs.OutputDir)

	fmt.Fprintf(m.out, "\nConfigured: provider=%s model=%s language=%s output=%s\n",
		cfg.LLM.Provider, cfg.LLM.Model, cfg.Docs.Language, cfg.Docs.OutputDir)
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
