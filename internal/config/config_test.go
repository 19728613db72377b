package config

import (
	"testing"
	"time"

	"github.com/csvroll/csvroll/internal/constants"
	"github.com/csvroll/csvroll/internal/errors"
)

func TestTransformDefaults(t *testing.T) {
	args := DefaultArgs()
	common, err := initializer{args: &args}.transform()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if common.Delimiter != ',' || common.Quote != '"' {
		t.Errorf("unexpected lexer config: %q %q", common.Delimiter, common.Quote)
	}
	if common.WindowSize != constants.DefaultWindowSize {
		t.Errorf("unexpected window size: %v", common.WindowSize)
	}
	if common.TSColumn != 0 || common.ValColumn != 1 {
		t.Errorf("unexpected columns: ts %d val %d", common.TSColumn, common.ValColumn)
	}
}

func TestTransformPositionalInputFile(t *testing.T) {
	args := DefaultArgs()
	common, err := initializer{
		args:           &args,
		additionalArgs: []string{"metrics.csv"},
	}.transform()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if common.InputFile != "metrics.csv" {
		t.Errorf("expected positional input file, got %q", common.InputFile)
	}
}

func TestTransformFlagBeatsPositional(t *testing.T) {
	args := DefaultArgs()
	args.InputFile = "fromflag.csv"
	common, err := initializer{
		args:           &args,
		additionalArgs: []string{"positional.csv"},
	}.transform()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if common.InputFile != "fromflag.csv" {
		t.Errorf("expected flag input file, got %q", common.InputFile)
	}
}

func TestTransformValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Args)
	}{
		{"multi-byte delimiter", func(a *Args) { a.Delimiter = ",," }},
		{"empty quote", func(a *Args) { a.Quote = "" }},
		{"delimiter equals quote", func(a *Args) { a.Quote = "," }},
		{"zero window", func(a *Args) { a.WindowSize = 0 }},
		{"negative window", func(a *Args) { a.WindowSize = -time.Second }},
		{"negative ts column", func(a *Args) { a.TSColumn = -1 }},
		{"negative val column", func(a *Args) { a.ValColumn = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := DefaultArgs()
			tt.mutate(&args)
			_, err := initializer{args: &args}.transform()
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestEnvWindowOverride(t *testing.T) {
	t.Setenv(constants.EnvWindowSize, "30s")

	args := DefaultArgs()
	common, err := initializer{args: &args}.transform()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if common.WindowSize != 30*time.Second {
		t.Errorf("expected env override 30s, got %v", common.WindowSize)
	}
}

func TestEnv(t *testing.T) {
	t.Setenv("CSVROLL_TEST_FLAG", "yes")
	if !Env("CSVROLL_TEST_FLAG") {
		t.Error("expected yes to enable the flag")
	}
	t.Setenv("CSVROLL_TEST_FLAG", "no")
	if Env("CSVROLL_TEST_FLAG") {
		t.Error("expected non-yes value to disable the flag")
	}
}

func TestEnvDurationInvalid(t *testing.T) {
	t.Setenv(constants.EnvWindowSize, "not-a-duration")
	if _, ok := EnvDuration(constants.EnvWindowSize); ok {
		t.Error("expected invalid duration to be rejected")
	}
}
