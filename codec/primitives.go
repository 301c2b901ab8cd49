package codec

import (
	"context"
	"encoding/json"
	"math"
	"math/big"
	"strconv"

	logcontract "github.com/reoring/logcontract"
	"github.com/reoring/logcontract/i18n"
	js "github.com/reoring/logcontract/jsonschema"
	"github.com/reoring/logcontract/tree"
)

// String is the wire schema for JSON strings. Null is not a string.
func String() logcontract.Schema[string] { return stringSchema{} }

// Tree is the wire schema for any well-formed tree value, including null.
func Tree() logcontract.Schema[any] { return treeSchema{} }

// Int64 returns a Codec between integer number literals and int64. Literals
// with a fraction or exponent are invalid_type; integers outside the int64
// range are overflow.
func Int64() logcontract.Codec[json.Number, int64] { return int64Codec{} }

func invalidType(expected string, got any) logcontract.Issues {
	return logcontract.Issues{{
		Path:    "/",
		Code:    logcontract.CodeInvalidType,
		Message: i18n.T(logcontract.CodeInvalidType, map[string]string{"expected": expected, "got": tree.KindOf(got).String()}),
		Params:  map[string]any{"expected": expected, "got": tree.KindOf(got).String()},
	}}
}

type stringSchema struct{ pattern string }

func (stringSchema) Parse(ctx context.Context, v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", invalidType("string", v)
}

func (stringSchema) ValidateValue(ctx context.Context, v string) error { return nil }

func (s stringSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Pattern: s.pattern}, nil
}

type treeSchema struct{}

func (treeSchema) Parse(ctx context.Context, v any) (any, error) {
	if tree.KindOf(v) == tree.Invalid {
		return nil, invalidType("json value", v)
	}
	return v, nil
}

func (treeSchema) ValidateValue(ctx context.Context, v any) error {
	if tree.KindOf(v) == tree.Invalid {
		return invalidType("json value", v)
	}
	return nil
}

func (treeSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{}, nil }

type integerSchema struct{}

func (integerSchema) Parse(ctx context.Context, v any) (json.Number, error) {
	n, ok := v.(json.Number)
	if !ok || !tree.IsInteger(n) {
		return "", invalidType("integer", v)
	}
	return n, nil
}

func (integerSchema) ValidateValue(ctx context.Context, v json.Number) error {
	if !tree.IsInteger(v) {
		return invalidType("integer", v)
	}
	return nil
}

func (integerSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "integer"}, nil }

type int64Schema struct{}

func (int64Schema) Parse(ctx context.Context, v any) (int64, error) {
	if i, ok := v.(int64); ok {
		return i, nil
	}
	return 0, invalidType("int64", v)
}

func (int64Schema) ValidateValue(ctx context.Context, v int64) error { return nil }

func (int64Schema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "integer"}, nil }

type int64Codec struct{}

func (int64Codec) In() logcontract.Schema[json.Number] { return integerSchema{} }

func (int64Codec) Out() logcontract.Schema[int64] { return int64Schema{} }

func (int64Codec) Decode(ctx context.Context, a json.Number) (int64, error) {
	if err := (integerSchema{}).ValidateValue(ctx, a); err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(string(a), 10, 64)
	if err != nil {
		code := logcontract.CodeInvalidType
		if b, ok := new(big.Int).SetString(string(a), 10); ok && !b.IsInt64() {
			code = logcontract.CodeOverflow
		}
		return 0, logcontract.Issues{{
			Path:    "/",
			Code:    code,
			Message: i18n.T(code, map[string]string{"min": strconv.FormatInt(math.MinInt64, 10), "max": strconv.FormatInt(math.MaxInt64, 10)}),
			Cause:   err,
			Params:  map[string]any{"got": string(a)},
		}}
	}
	return i, nil
}

func (int64Codec) Encode(ctx context.Context, b int64) (json.Number, error) {
	return json.Number(strconv.FormatInt(b, 10)), nil
}
