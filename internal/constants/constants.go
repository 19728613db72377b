// Package constants centralizes the tunables and defaults shared across
// CSVRoll. Keeping them in one place makes it obvious which knobs exist
// and avoids magic numbers scattered through the code.
package constants

import "time"

const (
	// DefaultDelimiter separates fields within a row.
	DefaultDelimiter byte = ','
	// DefaultQuote encloses fields that contain the delimiter or quote itself.
	DefaultQuote byte = '"'

	// DefaultWindowSize is the tumbling window width used when none is given.
	DefaultWindowSize = 10 * time.Second

	// ScanBufferSize is the initial buffer size for line scanning.
	ScanBufferSize = 64 * 1024
	// MaxLineLength is the largest single line the reader source accepts.
	// Lines beyond this indicate binary or corrupt input.
	MaxLineLength = 1024 * 1024

	// InitialFieldCapacity sizes the per-row field slice. Most delimited
	// rows have fewer than 16 columns.
	InitialFieldCapacity = 16
	// InitialFieldBufferSize sizes the reusable field accumulation buffer.
	InitialFieldBufferSize = 512
)

// Environment variable names understood by config.Setup.
const (
	// EnvDebug switches the logger into development mode when set to "yes".
	EnvDebug = "CSVROLL_DEBUG"
	// EnvWindowSize overrides the default window size (Go duration syntax).
	EnvWindowSize = "CSVROLL_WINDOW_SIZE"
)
