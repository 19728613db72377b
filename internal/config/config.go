// Package config handles the CSVRoll runtime configuration. Settings come
// from command-line arguments with environment variable overrides, are
// validated once at startup, and are then available via the Common global.
//
// Configuration precedence (highest to lowest):
//  1. Command-line arguments
//  2. Environment variables
//  3. Default values
package config

import (
	"time"

	"github.com/csvroll/csvroll/internal/constants"
	"github.com/csvroll/csvroll/internal/errors"
)

// Common holds the validated CSVRoll configuration. This global variable
// provides access to the settings after Setup has run.
var Common *CommonConfig

// CommonConfig is the validated runtime configuration.
type CommonConfig struct {
	// InputFile is the delimited input to stream. Empty means stdin.
	InputFile string
	// Delimiter separates fields within a row.
	Delimiter byte
	// Quote encloses fields containing the delimiter or quote.
	Quote byte
	// WindowSize is the tumbling window width.
	WindowSize time.Duration
	// TSColumn is the row position of the timestamp.
	TSColumn int
	// ValColumn is the row position of the aggregated value.
	ValColumn int
	// Quiet suppresses diagnostic logging.
	Quiet bool
}

// Setup initializes the CSVRoll configuration from the parsed command-line
// arguments plus any trailing positional arguments (the input file may be
// given positionally, dcat-style). It panics on configuration errors so the
// tool cannot start misconfigured.
func Setup(args *Args, additionalArgs []string) {
	initializer := initializer{args: args, additionalArgs: additionalArgs}
	common, err := initializer.transform()
	if err != nil {
		panic(err)
	}
	Common = common
}

type initializer struct {
	args           *Args
	additionalArgs []string
}

func (i initializer) transform() (*CommonConfig, error) {
	args := i.args

	inputFile := args.InputFile
	if inputFile == "" && len(i.additionalArgs) > 0 {
		inputFile = i.additionalArgs[0]
	}

	windowSize := args.WindowSize
	if env, ok := EnvDuration(constants.EnvWindowSize); ok {
		windowSize = env
	}

	common := &CommonConfig{
		InputFile:  inputFile,
		WindowSize: windowSize,
		TSColumn:   args.TSColumn,
		ValColumn:  args.ValColumn,
		Quiet:      args.Quiet,
	}

	var err error
	if common.Delimiter, err = singleByte("delimiter", args.Delimiter); err != nil {
		return nil, err
	}
	if common.Quote, err = singleByte("quote", args.Quote); err != nil {
		return nil, err
	}
	if common.Delimiter == common.Quote {
		return nil, errors.Wrap(errors.ErrInvalidConfig,
			"delimiter and quote must differ")
	}
	if common.WindowSize <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig,
			"window size must be positive, got %v", common.WindowSize)
	}
	if common.TSColumn < 0 || common.ValColumn < 0 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig,
			"column indices must be non-negative, got ts %d val %d",
			common.TSColumn, common.ValColumn)
	}

	return common, nil
}

func singleByte(name, value string) (byte, error) {
	if len(value) != 1 {
		return 0, errors.Wrapf(errors.ErrInvalidConfig,
			"%s must be a single character, got %q", name, value)
	}
	return value[0], nil
}
