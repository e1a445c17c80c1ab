package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

const postmanSchema = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

type postmanCollection struct {
	Info     postmanInfo       `json:"info"`
	Item     []postmanItem     `json:"item"`
	Variable []postmanVariable `json:"variable"`
}

type postmanInfo struct {
	PostmanID   string `json:"_postman_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	Schema      string `json:"schema"`
}

type postmanItem struct {
	Name    string         `json:"name"`
	Request postmanRequest `json:"request"`
}

type postmanRequest struct {
	Method string     `json:"method"`
	URL    postmanURL `json:"url"`
}

type postmanURL struct {
	Raw   string         `json:"raw"`
	Host  []string       `json:"host"`
	Path  []string       `json:"path"`
	Query []postmanQuery `json:"query,omitempty"`
}

type postmanQuery struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

type postmanVariable struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// postmanMethods is the subset of methods included in the collection.
var postmanMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true, "PATCH": true,
}

// PostmanCollection synthesizes a Postman v2.1 request collection: one item
// per operation, with a base_url variable taken from the first server.
func (e *Exporter) PostmanCollection(w io.Writer) error {
	info, _ := e.doc.Raw["info"].(map[string]any)
	description, _ := info["description"].(string)

	collection := postmanCollection{
		Info: postmanInfo{
			PostmanID:   uuid.NewString(),
			Name:        e.idx.Title,
			Description: description,
			Version:     e.idx.Version,
			Schema:      postmanSchema,
		},
		Item:     []postmanItem{},
		Variable: []postmanVariable{},
	}
	if collection.Info.Name == "" {
		collection.Info.Name = "API"
	}

	if baseURL := e.firstServerURL(); baseURL != "" {
		collection.Variable = append(collection.Variable, postmanVariable{
			Key:   "base_url",
			Value: baseURL,
		})
	}

	for _, ep := range e.idx.List() {
		if !postmanMethods[ep.Method] {
			continue
		}

		name := ep.Summary
		if name == "" {
			name = ep.Method + " " + ep.Path
		}

		item := postmanItem{
			Name: name,
			Request: postmanRequest{
				Method: ep.Method,
				URL: postmanURL{
					Raw:  "{{base_url}}" + ep.Path,
					Host: []string{"{{base_url}}"},
					Path: splitPath(ep.Path),
				},
			},
		}

		for _, p := range ep.Parameters {
			if p.In != "query" {
				continue
			}
			item.Request.URL.Query = append(item.Request.URL.Query, postmanQuery{
				Key:      p.Name,
				Value:    "",
				Disabled: !p.Required,
			})
		}

		collection.Item = append(collection.Item, item)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(collection); err != nil {
		return fmt.Errorf("encoding postman collection: %w", err)
	}
	return nil
}

func (e *Exporter) firstServerURL() string {
	servers, _ := e.doc.Raw["servers"].([]any)
	if len(servers) > 0 {
		if server, ok := servers[0].(map[string]any); ok {
			if url, ok := server["url"].(string); ok {
				return url
			}
		}
	}
	// Swagger 2.0 keeps host/basePath at the top level.
	if host, ok := e.doc.Raw["host"].(string); ok && host != "" {
		basePath, _ := e.doc.Raw["basePath"].(string)
		return "https://" + host + basePath
	}
	return ""
}

func splitPath(path string) []string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) == 1 && parts[0] == "" {
		return nil
	}
	return parts
}
