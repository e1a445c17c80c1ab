package docgen

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/GAKiknadze/swagger-to-docs/openapi"
)

// Options configures either generator.
type Options struct {
	OutputDir       string
	Language        string // "ru" or "en"
	IncludeSchemas  bool
	IncludeSecurity bool
}

var filenameStrip = regexp.MustCompile(`[^a-z0-9_]`)

// sanitizeFilename turns arbitrary titles, tags, and paths into a safe file
// name: lowercased, separators collapsed to underscores, everything else
// stripped, capped at 100 characters.
func sanitizeFilename(text string) string {
	text = strings.ToLower(text)
	text = strings.NewReplacer(" ", "_", "/", "_", "-", "_").Replace(text)
	text = filenameStrip.ReplaceAllString(text, "")
	if len(text) > 100 {
		text = text[:100]
	}
	return text
}

// specDir builds docs/<sanitized title>/{tags,endpoints} and returns the root.
func specDir(outputDir, title string) (string, error) {
	if title == "" {
		title = "api"
	}
	dir := filepath.Join(outputDir, sanitizeFilename(title))
	for _, sub := range []string{"tags", "endpoints"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}
	return dir, nil
}

// endpointFilename is <method>_<sanitized path>.
func endpointFilename(detail *openapi.EndpointDetail) string {
	return strings.ToLower(detail.Method) + "_" + sanitizeFilename(detail.Path)
}

// groupByTag buckets endpoints under each of their tags; endpoints without
// tags land in "untagged". The per-tag order follows idx.List (path, method).
func groupByTag(idx *openapi.Index) map[string][]*openapi.EndpointDetail {
	grouped := make(map[string][]*openapi.EndpointDetail)
	for _, detail := range idx.List() {
		tags := detail.Tags
		if len(tags) == 0 {
			tags = []string{"untagged"}
		}
		for _, tag := range tags {
			grouped[tag] = append(grouped[tag], detail)
		}
	}
	return grouped
}

func sortedTags(grouped map[string][]*openapi.EndpointDetail) []string {
	tags := make([]string, 0, len(grouped))
	for tag := range grouped {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// tagDescription looks up the tag's description in the document-level tags
// array, or "" when absent.
func tagDescription(doc *openapi.Document, tag string) string {
	tags, _ := doc.Raw["tags"].([]any)
	for _, t := range tags {
		m, _ := t.(map[string]any)
		if name, _ := m["name"].(string); name == tag {
			desc, _ := m["description"].(string)
			return desc
		}
	}
	return ""
}

func writeTagFile(dir, tag, body string) error {
	path := filepath.Join(dir, "tags", sanitizeFilename(tag)+".md")
	content := fmt.Sprintf("# %s\n\n%s", tag, body)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing tag doc %s: %w", path, err)
	}
	return nil
}

func writeEndpointFile(dir string, detail *openapi.EndpointDetail, tag, body string) error {
	path := filepath.Join(dir, "endpoints", endpointFilename(detail)+".md")
	content := fmt.Sprintf("# %s %s\n\n**Tag:** %s\n\n%s", detail.Method, detail.Path, tag, body)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing endpoint doc %s: %w", path, err)
	}
	return nil
}

// writeIndex writes the README.md table of contents. overview, when not
// empty, is placed between the header and the TOC.
func writeIndex(dir string, doc *openapi.Document, grouped map[string][]*openapi.EndpointDetail, overview string) error {
	var sb strings.Builder

	title := doc.Title()
	if title == "" {
		title = "API"
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	if v := doc.Version(); v != "" {
		sb.WriteString(fmt.Sprintf("**Version:** %s\n\n", v))
	}
	if info, ok := doc.Raw["info"].(map[string]any); ok {
		if desc, _ := info["description"].(string); desc != "" {
			sb.WriteString(desc + "\n\n")
		}
	}

	if overview != "" {
		sb.WriteString(overview + "\n\n")
	}

	sb.WriteString("## Table of Contents\n\n")
	tags := sortedTags(grouped)
	for _, tag := range tags {
		sb.WriteString(fmt.Sprintf("- [%s](tags/%s.md)\n", tag, sanitizeFilename(tag)))
	}

	sb.WriteString("\n## All Endpoints\n\n")
	for _, tag := range tags {
		sb.WriteString(fmt.Sprintf("\n### %s\n\n", tag))
		for _, detail := range grouped[tag] {
			sb.WriteString(fmt.Sprintf("- [`%s`](endpoints/%s.md) %s - %s\n",
				detail.Method, endpointFilename(detail), detail.Path, detail.Summary))
		}
	}

	path := filepath.Join(dir, "README.md")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing index %s: %w", path, err)
	}
	return nil
}

// specFiles lists the OpenAPI candidates in a directory.
func specFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matched, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matched...)
	}
	sort.Strings(files)
	return files, nil
}
