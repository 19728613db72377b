package config

import (
	"time"

	"github.com/csvroll/csvroll/internal/constants"
)

// Args holds the raw command-line arguments before validation. The CLI binds
// these to its flag set; Setup turns them into a CommonConfig.
type Args struct {
	InputFile  string
	Delimiter  string
	Quote      string
	WindowSize time.Duration
	TSColumn   int
	ValColumn  int
	Quiet      bool
}

// DefaultArgs returns the argument defaults the CLI starts from.
func DefaultArgs() Args {
	return Args{
		Delimiter:  ",",
		Quote:      `"`,
		WindowSize: constants.DefaultWindowSize,
		TSColumn:   0,
		ValColumn:  1,
	}
}
