package openapi

import (
	"fmt"
	"sort"
	"strings"
)

// Index holds flattened endpoint data for a single specification.
type Index struct {
	Source    string
	Title     string
	Version   string
	Endpoints map[string]map[string]*EndpointDetail // path -> method -> detail

	schemaCount         int
	securitySchemeCount int
}

// Count returns the total number of endpoints.
func (idx *Index) Count() int {
	n := 0
	for _, methods := range idx.Endpoints {
		n += len(methods)
	}
	return n
}

// List returns every endpoint detail sorted by path, then method.
func (idx *Index) List() []*EndpointDetail {
	var all []*EndpointDetail
	for _, methods := range idx.Endpoints {
		for _, detail := range methods {
			all = append(all, detail)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Path != all[j].Path {
			return all[i].Path < all[j].Path
		}
		return all[i].Method < all[j].Method
	})
	return all
}

// Tags returns all tag names appearing on endpoints, sorted. Untagged
// endpoints contribute the "untagged" bucket.
func (idx *Index) Tags() []string {
	seen := make(map[string]bool)
	for _, methods := range idx.Endpoints {
		for _, detail := range methods {
			if len(detail.Tags) == 0 {
				seen["untagged"] = true
			}
			for _, t := range detail.Tags {
				seen[t] = true
			}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Filter returns endpoint summaries matching optional tag and method filters.
func (idx *Index) Filter(tag, method string) []EndpointSummary {
	var results []EndpointSummary
	method = strings.ToUpper(method)

	for path, methods := range idx.Endpoints {
		for m, detail := range methods {
			if method != "" && m != method {
				continue
			}
			if tag != "" {
				matched := false
				for _, t := range detail.Tags {
					if strings.EqualFold(t, tag) {
						matched = true
						break
					}
				}
				if !matched {
					continue
				}
			}
			results = append(results, summaryOf(idx.Source, m, path, detail))
		}
	}
	sortSummaries(results)
	return results
}

// GetDetail returns full details for a specific endpoint.
func (idx *Index) GetDetail(path, method string) (*EndpointDetail, error) {
	methods, ok := idx.Endpoints[path]
	if !ok {
		// Try prefix/suffix match so "/pets" finds "/v1/pets".
		for p, m := range idx.Endpoints {
			if strings.HasSuffix(p, path) || strings.HasPrefix(p, path) {
				methods = m
				path = p
				ok = true
				break
			}
		}
		if !ok {
			return nil, fmt.Errorf("endpoint %s not found", path)
		}
	}

	detail, ok := methods[strings.ToUpper(method)]
	if !ok {
		// Fall back to any available method.
		for _, d := range methods {
			return d, nil
		}
		return nil, fmt.Errorf("method %s not found for %s", method, path)
	}

	return detail, nil
}

// Search matches endpoints by path, summary, description, or tag substring.
func (idx *Index) Search(query string) []EndpointSummary {
	query = strings.ToLower(query)
	var results []EndpointSummary

	for path, methods := range idx.Endpoints {
		for m, detail := range methods {
			if matches(query, path, detail) {
				results = append(results, summaryOf(idx.Source, m, path, detail))
			}
		}
	}
	sortSummaries(results)
	return results
}

// Stats aggregates counts over the index.
func (idx *Index) Stats() Statistics {
	stats := Statistics{
		Title:           idx.Title,
		Version:         idx.Version,
		Methods:         make(map[string]int),
		Tags:            make(map[string]int),
		Schemas:         idx.schemaCount,
		SecuritySchemes: idx.securitySchemeCount,
	}

	for _, methods := range idx.Endpoints {
		for m, detail := range methods {
			stats.TotalEndpoints++
			stats.Methods[strings.ToLower(m)]++
			if len(detail.Tags) == 0 {
				stats.Tags["untagged"]++
			}
			for _, t := range detail.Tags {
				stats.Tags[t]++
			}
		}
	}

	return stats
}

func summaryOf(source, method, path string, detail *EndpointDetail) EndpointSummary {
	t := ""
	if len(detail.Tags) > 0 {
		t = detail.Tags[0]
	}
	return EndpointSummary{
		Source:  source,
		Method:  method,
		Path:    path,
		Summary: detail.Summary,
		Tag:     t,
	}
}

func sortSummaries(s []EndpointSummary) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Path != s[j].Path {
			return s[i].Path < s[j].Path
		}
		return s[i].Method < s[j].Method
	})
}

func matches(query, path string, detail *EndpointDetail) bool {
	if strings.Contains(strings.ToLower(path), query) {
		return true
	}
	if strings.Contains(strings.ToLower(detail.Summary), query) {
		return true
	}
	if strings.Contains(strings.ToLower(detail.Description), query) {
		return true
	}
	for _, tag := range detail.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
