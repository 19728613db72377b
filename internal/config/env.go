package config

import (
	"os"
	"time"
)

// Env returns true when a given environment variable is set to "yes".
func Env(env string) bool {
	return "yes" == os.Getenv(env)
}

// EnvDuration reads a duration from the environment. The second return is
// false when the variable is unset or not a valid Go duration.
func EnvDuration(env string) (time.Duration, bool) {
	value := os.Getenv(env)
	if value == "" {
		return 0, false
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, false
	}
	return d, true
}
