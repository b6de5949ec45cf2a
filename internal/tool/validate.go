package tool

import (
	"fmt"
	"sort"
)

// Validation is the outcome of checking tool input against its schema.
// All violations are collected so the agent can surface them at once.
type Validation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateInput checks that the input carries every required parameter
// and that present parameters conform to their declared primitive type.
func (c *Catalog) ValidateInput(toolID string, input map[string]any) Validation {
	schema, ok := c.tools[toolID]
	if !ok {
		return Validation{Errors: []string{fmt.Sprintf("unknown tool %q", toolID)}}
	}

	var errs []string
	for name, param := range schema.Parameters {
		value, present := input[name]
		if !present {
			if param.Required {
				errs = append(errs, fmt.Sprintf("missing required parameter %q", name))
			}
			continue
		}
		if !typeMatches(param.Type, value) {
			errs = append(errs, fmt.Sprintf("parameter %q must be of type %s, got %T", name, param.Type, value))
		}
	}

	// Deterministic order for callers that render the list.
	sort.Strings(errs)

	return Validation{Valid: len(errs) == 0, Errors: errs}
}

// WithDefaults returns a copy of the input with declared defaults filled
// in for absent parameters.
func (c *Catalog) WithDefaults(toolID string, input map[string]any) map[string]any {
	schema, ok := c.tools[toolID]
	if !ok {
		return input
	}

	out := make(map[string]any, len(input))
	for k, v := range input {
		out[k] = v
	}
	for name, param := range schema.Parameters {
		if _, present := out[name]; !present && param.Default != nil {
			out[name] = param.Default
		}
	}
	return out
}

// typeMatches checks a value against one of the primitive schema types.
func typeMatches(paramType string, value any) bool {
	switch paramType {
	case "string":
		_, ok := value.(string)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "number":
		switch value.(type) {
		case float64, float32, int, int32, int64:
			return true
		}
		return false
	case "object":
		_, ok := value.(map[string]any)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	default:
		// Unknown declared types are not enforced.
		return true
	}
}
