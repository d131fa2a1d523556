package tool

// Type represents JSON Schema types.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Schema represents a JSON Schema for tool parameters.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// Declaration declares a tool's function signature for the LLM.
type Declaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// PathParameters is the argument schema shared by the path-taking tools.
func PathParameters(description string) *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"path": {Type: TypeString, Description: description},
		},
		Required: []string{"path"},
	}
}

// NoParameters is the argument schema of a tool that takes nothing.
func NoParameters() *Schema {
	return &Schema{Type: TypeObject, Properties: map[string]*Schema{}}
}
