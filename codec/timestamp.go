package codec

import (
	"context"
	"fmt"
	"time"

	logcontract "github.com/reoring/logcontract"
	"github.com/reoring/logcontract/i18n"
	js "github.com/reoring/logcontract/jsonschema"
)

// MicrosLayout is the only accepted timestamp form: six fractional digits and
// a literal Z, e.g. 2021-11-30T12:31:04.312814Z.
const MicrosLayout = "2006-01-02T15:04:05.000000Z"

// MicrosPattern is MicrosLayout as a JSON Schema pattern.
const MicrosPattern = `^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}\.[0-9]{6}Z$`

// TimestampMicros returns a Codec between MicrosLayout strings and UTC
// time.Time values. Encoding truncates to whole microseconds.
func TimestampMicros() logcontract.Codec[string, time.Time] {
	return &microsCodec{
		in:  stringSchema{pattern: MicrosPattern},
		out: timeSchema{},
	}
}

type microsCodec struct {
	in  logcontract.Schema[string]
	out logcontract.Schema[time.Time]
}

func (c *microsCodec) In() logcontract.Schema[string] { return c.in }

func (c *microsCodec) Out() logcontract.Schema[time.Time] { return c.out }

func (c *microsCodec) Decode(ctx context.Context, a string) (time.Time, error) {
	t, err := parseMicros(a)
	if err != nil {
		return time.Time{}, logcontract.Issues{{
			Path:    "/",
			Code:    logcontract.CodeInvalidFormat,
			Message: i18n.T(logcontract.CodeInvalidFormat, map[string]string{"format": MicrosLayout}),
			Cause:   err,
			Params:  map[string]any{"got": a, "format": MicrosLayout},
		}}
	}
	if err := c.out.ValidateValue(ctx, t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func (c *microsCodec) Encode(ctx context.Context, b time.Time) (string, error) {
	if err := c.out.ValidateValue(ctx, b); err != nil {
		return "", err
	}
	s := b.UTC().Format(MicrosLayout)
	if _, err := c.Decode(ctx, s); err != nil {
		return "", err
	}
	return s, nil
}

// parseMicros checks the fixed shape before handing off to time.Parse, which
// on its own would also accept things like a leading '+' in the year.
func parseMicros(s string) (time.Time, error) {
	if len(s) != len(MicrosLayout) {
		return time.Time{}, fmt.Errorf("want %d characters, got %d", len(MicrosLayout), len(s))
	}
	for i := 0; i < len(s); i++ {
		c, l := s[i], MicrosLayout[i]
		if l >= '0' && l <= '9' {
			if c < '0' || c > '9' {
				return time.Time{}, fmt.Errorf("want digit at offset %d, got %q", i, c)
			}
			continue
		}
		if c != l {
			return time.Time{}, fmt.Errorf("want %q at offset %d, got %q", l, i, c)
		}
	}
	return time.ParseInLocation(MicrosLayout, s, time.UTC)
}

type timeSchema struct{}

func (timeSchema) Parse(ctx context.Context, v any) (time.Time, error) {
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	return time.Time{}, invalidType("time", v)
}

func (timeSchema) ValidateValue(ctx context.Context, v time.Time) error { return nil }

func (timeSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "string", Format: "date-time"}, nil }
