package logline

import (
	"context"

	logcontract "github.com/reoring/logcontract"
	js "github.com/reoring/logcontract/jsonschema"
)

// field binds one wire key to a LogLine member through a codec. The record
// schema only walks the table; all per-type behavior lives in the codec.
type field struct {
	name   string
	decode func(ctx context.Context, v any, ll *LogLine) error
	encode func(ctx context.Context, ll *LogLine) (any, error)
	schema func() (*js.Schema, error)
}

func bind[A, B any](name string, c logcontract.Codec[A, B], ref func(*LogLine) *B) field {
	return field{
		name: name,
		decode: func(ctx context.Context, v any, ll *LogLine) error {
			a, err := c.In().Parse(ctx, v)
			if err != nil {
				return err
			}
			b, err := c.Decode(ctx, a)
			if err != nil {
				return err
			}
			*ref(ll) = b
			return nil
		},
		encode: func(ctx context.Context, ll *LogLine) (any, error) {
			return c.Encode(ctx, *ref(ll))
		},
		schema: c.In().JSONSchema,
	}
}

// issuesAt turns a field codec error into Issues rooted at /name.
func issuesAt(name string, err error) logcontract.Issues {
	base := "/" + name
	if iss, ok := logcontract.AsIssues(err); ok {
		return logcontract.RebaseIssues(base, iss)
	}
	return logcontract.Issues{{Path: base, Code: logcontract.CodeParseError, Message: err.Error(), Cause: err}}
}
