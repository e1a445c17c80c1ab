package openapi

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// BuildIndex walks the v3 spec of a document and flattens every operation
// into an EndpointDetail.
func BuildIndex(source string, doc *Document) *Index {
	idx := &Index{
		Source:    source,
		Title:     doc.Title(),
		Version:   doc.Version(),
		Endpoints: make(map[string]map[string]*EndpointDetail),

		schemaCount:         len(doc.Schemas()),
		securitySchemeCount: len(doc.SecuritySchemes()),
	}

	spec := doc.Spec
	if spec == nil || spec.Paths == nil {
		return idx
	}

	for path, pathItem := range spec.Paths.Map() {
		for method, op := range pathItem.Operations() {
			if op == nil {
				continue
			}

			method = strings.ToUpper(method)

			detail := &EndpointDetail{
				Source:      source,
				Method:      method,
				Path:        path,
				OperationID: op.OperationID,
				Summary:     op.Summary,
				Description: op.Description,
				Tags:        op.Tags,
				Deprecated:  op.Deprecated,
				Responses:   make(map[string]string),
				Security:    securityNames(op, spec),
			}

			for _, pRef := range op.Parameters {
				if pRef.Value == nil {
					continue
				}
				p := pRef.Value
				pi := ParameterInfo{
					Name:        p.Name,
					In:          p.In,
					Required:    p.Required,
					Description: p.Description,
				}
				if p.Schema != nil && p.Schema.Value != nil {
					if types := p.Schema.Value.Type.Slice(); len(types) > 0 {
						pi.Type = types[0]
					}
				}
				detail.Parameters = append(detail.Parameters, pi)
			}

			if op.RequestBody != nil && op.RequestBody.Value != nil {
				for ct, mediaType := range op.RequestBody.Value.Content {
					si := &SchemaInfo{ContentType: ct}
					if mediaType.Schema != nil && mediaType.Schema.Value != nil {
						si.Properties = flattenSchema(mediaType.Schema.Value)
						si.Required = mediaType.Schema.Value.Required
						si.Example = mediaType.Schema.Value.Example
					}
					detail.RequestBody = si
					break // take the first content type
				}
			}

			if op.Responses != nil {
				for code, respRef := range op.Responses.Map() {
					if respRef.Value != nil && respRef.Value.Description != nil {
						detail.Responses[code] = *respRef.Value.Description
					}
				}
			}

			if idx.Endpoints[path] == nil {
				idx.Endpoints[path] = make(map[string]*EndpointDetail)
			}
			idx.Endpoints[path][method] = detail
		}
	}

	return idx
}

// securityNames collects the security scheme names an operation requires,
// falling back to the document-level requirements.
func securityNames(op *openapi3.Operation, spec *openapi3.T) []string {
	reqs := spec.Security
	if op.Security != nil {
		reqs = *op.Security
	}
	var names []string
	for _, req := range reqs {
		for name := range req {
			names = append(names, name)
		}
	}
	return names
}

// flattenSchema extracts property names and types from a schema.
func flattenSchema(schema *openapi3.Schema) map[string]any {
	if schema == nil || len(schema.Properties) == 0 {
		return nil
	}

	props := make(map[string]any)
	for name, propRef := range schema.Properties {
		if propRef.Value == nil {
			props[name] = "unknown"
			continue
		}
		p := propRef.Value
		t := "unknown"
		if types := p.Type.Slice(); len(types) > 0 {
			t = types[0]
		}
		if p.Description != "" {
			props[name] = map[string]string{"type": t, "description": p.Description}
		} else {
			props[name] = t
		}
	}
	return props
}
