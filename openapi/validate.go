package openapi

// Validate runs structural checks against the raw tree and returns a list of
// human-readable problems. An empty list means the document has the required
// top-level shape; it says nothing about deeper schema correctness.
func (d *Document) Validate() []string {
	var problems []string

	_, hasOpenAPI := d.Raw["openapi"]
	_, hasSwagger := d.Raw["swagger"]
	if !hasOpenAPI && !hasSwagger {
		problems = append(problems, "missing 'openapi' or 'swagger' field")
	}

	info, ok := d.Raw["info"]
	if !ok {
		problems = append(problems, "missing 'info' object")
	} else if infoMap, isMap := info.(map[string]any); !isMap {
		problems = append(problems, "'info' must be an object")
	} else {
		if _, ok := infoMap["title"]; !ok {
			problems = append(problems, "missing 'info.title'")
		}
		if _, ok := infoMap["version"]; !ok {
			problems = append(problems, "missing 'info.version'")
		}
	}

	if _, ok := d.Raw["paths"]; !ok {
		problems = append(problems, "missing 'paths' object")
	}

	return problems
}

// IsValid reports whether Validate finds no problems.
func (d *Document) IsValid() bool {
	return len(d.Validate()) == 0
}
