// Package tree is the dynamically-shaped value model shared by the parser,
// the differ and the typed record schema.
//
// A tree is one of: nil, bool, string, json.Number, []any or map[string]any.
// Values are treated as immutable once built.
package tree

import (
	"encoding/json"
	"math/big"
	"strconv"
	"strings"
)

// Kind classifies a tree value.
type Kind int

const (
	Invalid Kind = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf reports the kind of v. Go values outside the tree vocabulary are
// Invalid.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case json.Number:
		return Number
	case string:
		return String
	case []any:
		return Array
	case map[string]any:
		return Object
	default:
		return Invalid
	}
}

// Equal reports whether a and b are structurally identical. Object key order
// is irrelevant, array order is significant, and scalars must match in both
// variant and value.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case json.Number:
		y, ok := b.(json.Number)
		return ok && NumbersEqual(x, y)
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsInteger reports whether a number literal has no fraction or exponent.
func IsInteger(n json.Number) bool {
	return !strings.ContainsAny(string(n), ".eE")
}

// NumbersEqual compares two number literals by value. Integer literals are
// compared exactly; anything with a fraction or exponent is compared as
// float64. An integer literal never equals a float literal.
func NumbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	ai, bi := IsInteger(a), IsInteger(b)
	if ai != bi {
		return false
	}
	if ai {
		x, okx := new(big.Int).SetString(string(a), 10)
		y, oky := new(big.Int).SetString(string(b), 10)
		return okx && oky && x.Cmp(y) == 0
	}
	x, errx := strconv.ParseFloat(string(a), 64)
	y, erry := strconv.ParseFloat(string(b), 64)
	return errx == nil && erry == nil && x == y
}

// Clone returns a deep copy of v.
func Clone(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = Clone(x[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, xv := range x {
			out[k] = Clone(xv)
		}
		return out
	default:
		return v
	}
}
