package jsonschema

// Draft07 is the meta-schema URI stamped on exported root schemas.
const Draft07 = "http://json-schema.org/draft-07/schema#"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	// Meta
	Schema      string `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	ID          string `json:"$id,omitempty" yaml:"$id,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Core. Type is a string or a list of strings; an empty Type accepts any
	// JSON value.
	Type    any    `json:"type,omitempty" yaml:"type,omitempty"`
	Format  string `json:"format,omitempty" yaml:"format,omitempty"`
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Enum    []any  `json:"enum,omitempty" yaml:"enum,omitempty"`
	Const   any    `json:"const,omitempty" yaml:"const,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
}
