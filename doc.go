// Package logcontract checks that a typed log record model can represent
// every structured log line without losing data.
//
// The root package holds the parts every record schema shares:
//
//   - Schema, RecordSchema and Codec, the typed decode/encode contract
//   - Issues, the error model (JSON Pointer path, code, message)
//   - ParseValue and ParseFrom over a pluggable JSONDriver, with duplicate
//     key, depth and size enforcement
//   - RoundTrip, which decodes a line both untyped and typed, re-encodes the
//     typed value, and diffs the two trees
//
// The LogLine record lives in logline, the batch pipeline in check, and the
// command line tool in cmd/logcontract.
//
// Typical usage:
//
//	err := logcontract.RoundTrip(ctx, logline.Schema(), line, logcontract.DefaultTypedOpt())
//	var rt *logcontract.RoundTripError
//	if errors.As(err, &rt) {
//		// rt.Mismatch.Path, rt.Mismatch.Fragment
//	}
package logcontract
