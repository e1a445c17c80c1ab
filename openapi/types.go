package openapi

// EndpointSummary is a compact listing entry.
type EndpointSummary struct {
	Source  string `json:"source,omitempty"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Summary string `json:"summary"`
	Tag     string `json:"tag"`
}

// EndpointDetail is the full detail for a specific endpoint.
type EndpointDetail struct {
	Source      string            `json:"source,omitempty"`
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	OperationID string            `json:"operation_id,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Deprecated  bool              `json:"deprecated,omitempty"`
	Parameters  []ParameterInfo   `json:"parameters,omitempty"`
	RequestBody *SchemaInfo       `json:"request_body,omitempty"`
	Responses   map[string]string `json:"responses,omitempty"`
	Security    []string          `json:"security,omitempty"`
}

// ParameterInfo describes a single parameter.
type ParameterInfo struct {
	Name        string `json:"name"`
	In          string `json:"in"` // query, path, header
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// SchemaInfo is a simplified schema representation for prompts and listings.
type SchemaInfo struct {
	ContentType string         `json:"content_type"`
	Properties  map[string]any `json:"properties,omitempty"`
	Required    []string       `json:"required,omitempty"`
	Example     any            `json:"example,omitempty"`
}

// Statistics aggregates counts over a specification.
type Statistics struct {
	Title           string         `json:"title"`
	Version         string         `json:"version"`
	TotalEndpoints  int            `json:"total_endpoints"`
	Methods         map[string]int `json:"methods"`
	Tags            map[string]int `json:"tags"`
	Schemas         int            `json:"schemas"`
	SecuritySchemes int            `json:"security_schemes"`
}
