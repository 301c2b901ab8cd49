// Package logline defines the version 2 structured log record and its
// schema: typed decoding, re-encoding to the wire tree, the field value
// contract, and the JSON Schema projection of all three.
package logline

import (
	"time"
)

// Contract constants for version 2 of the log schema.
const (
	Version    = 2
	RecordType = "log_line"
)

// Levels is the closed set of accepted level values.
var Levels = []string{"debug", "info", "warn", "error"}

// LogLine is one decoded structured log record.
type LogLine struct {
	LogVersion   int64
	Type         string
	Code         string
	Ts           time.Time
	Pid          int64
	Msg          string
	Level        string
	InvocationID string
	ThreadName   string
	// Data is an arbitrary tree and is not checked beyond being well-formed.
	Data any
}
