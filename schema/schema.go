// Package schema describes JSON object shapes and derives them from tagged
// Go structs. The schemas are used to constrain structured LLM output.
package schema

// SchemaType is a JSON schema primitive type name.
type SchemaType string

const (
	Object  SchemaType = "object"
	Array   SchemaType = "array"
	String  SchemaType = "string"
	Integer SchemaType = "integer"
	Number  SchemaType = "number"
	Boolean SchemaType = "boolean"
)

// Schema describes the structure of a JSON object.
type Schema struct {
	Type                 SchemaType           `json:"type"`
	Properties           map[string]*Property `json:"properties,omitempty"`
	Required             []string             `json:"required,omitempty"`
	AdditionalProperties *bool                `json:"additionalProperties,omitempty"`
	// PropertyOrder lists property names in declaration order.
	PropertyOrder []string `json:"-"`
}

// Property of a schema.
type Property struct {
	Type                 SchemaType           `json:"type,omitempty"`
	Description          string               `json:"description,omitempty"`
	Enum                 []string             `json:"enum,omitempty"`
	Items                *Property            `json:"items,omitempty"`
	Required             []string             `json:"required,omitempty"`
	Properties           map[string]*Property `json:"properties,omitempty"`
	AdditionalProperties *bool                `json:"additionalProperties,omitempty"`
	Nullable             *bool                `json:"nullable,omitempty"`
	PropertyOrder        []string             `json:"-"`
}
