package tool

import (
	"fmt"
	"sort"
)

// OpenAIFunction is the function-calling descriptor shape consumed by
// LLM planners: {type:"function", function:{name, description, parameters}}.
// The shape is an externally-fixed contract.
type OpenAIFunction struct {
	Type     string             `json:"type"`
	Function OpenAIFunctionSpec `json:"function"`
}

// OpenAIFunctionSpec is the inner function descriptor.
type OpenAIFunctionSpec struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Parameters  OpenAIParameters `json:"parameters"`
}

// OpenAIParameters is a JSON-schema-like object description.
type OpenAIParameters struct {
	Type       string                    `json:"type"`
	Properties map[string]OpenAIProperty `json:"properties"`
	Required   []string                  `json:"required"`
}

// OpenAIProperty describes one parameter.
type OpenAIProperty struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}

// ToOpenAIFunction projects one tool schema into the function-calling
// descriptor shape. Pure transform, no side effects.
func (c *Catalog) ToOpenAIFunction(toolID string) (OpenAIFunction, error) {
	schema, ok := c.tools[toolID]
	if !ok {
		return OpenAIFunction{}, fmt.Errorf("unknown tool %q", toolID)
	}

	properties := make(map[string]OpenAIProperty, len(schema.Parameters))
	required := make([]string, 0, len(schema.Parameters))
	for name, param := range schema.Parameters {
		properties[name] = OpenAIProperty{
			Type:        param.Type,
			Description: param.Description,
			Default:     param.Default,
		}
		if param.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	return OpenAIFunction{
		Type: "function",
		Function: OpenAIFunctionSpec{
			Name:        schema.ID,
			Description: schema.Description,
			Parameters: OpenAIParameters{
				Type:       "object",
				Properties: properties,
				Required:   required,
			},
		},
	}, nil
}

// AllOpenAIFunctions projects the whole catalog, in declaration order.
func (c *Catalog) AllOpenAIFunctions() []OpenAIFunction {
	out := make([]OpenAIFunction, 0, len(c.order))
	for _, id := range c.order {
		fn, err := c.ToOpenAIFunction(id)
		if err != nil {
			continue
		}
		out = append(out, fn)
	}
	return out
}
