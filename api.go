package logcontract

import (
	"context"

	js "github.com/reoring/logcontract/jsonschema"
)

// Schema decodes an untyped tree into T and validates already-typed values.
type Schema[T any] interface {
	// Parse transforms a decoded tree (map[string]any, []any, string,
	// json.Number, bool, nil) into T. It reports shape problems as Issues.
	Parse(ctx context.Context, v any) (T, error)

	// ValidateValue checks the domain of a value already typed as T.
	ValidateValue(ctx context.Context, v T) error

	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// RecordSchema is a Schema that can also turn T back into its wire tree.
// Encode(Parse(v)) must succeed whenever Parse(v) does.
type RecordSchema[T any] interface {
	Schema[T]
	Encode(ctx context.Context, v T) (any, error)
}

// Codec performs bidirectional transformation and validation between the wire
// representation A and the domain representation B.
type Codec[A, B any] interface {
	In() Schema[A]                              // Wire schema (input side).
	Out() Schema[B]                             // Domain schema (output side).
	Decode(ctx context.Context, a A) (B, error) // A (In) -> B (convert) -> Out.ValidateValue.
	Encode(ctx context.Context, b B) (A, error) // Out.ValidateValue -> A -> In.Parse for revalidation.
}
