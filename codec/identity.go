package codec

import (
	"context"

	logcontract "github.com/reoring/logcontract"
)

// Identity binds a record field whose wire value and Go value are the same
// type, such as the plain string fields of a log line. Both directions
// re-check the value against s, so a struct edited in Go cannot encode
// something the wire schema would refuse to decode.
func Identity[T any](s logcontract.Schema[T]) logcontract.Codec[T, T] {
	return identityCodec[T]{s: s}
}

type identityCodec[T any] struct{ s logcontract.Schema[T] }

func (c identityCodec[T]) In() logcontract.Schema[T] { return c.s }

func (c identityCodec[T]) Out() logcontract.Schema[T] { return c.s }

func (c identityCodec[T]) Decode(ctx context.Context, a T) (T, error) { return c.pass(ctx, a) }

func (c identityCodec[T]) Encode(ctx context.Context, b T) (T, error) { return c.pass(ctx, b) }

func (c identityCodec[T]) pass(ctx context.Context, v T) (T, error) {
	if err := c.s.ValidateValue(ctx, v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
