package config

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrTooManyArgs is returned when more than a model path and a duration
// are given on the command line.
var ErrTooManyArgs = errors.New("too many arguments")

// DurationError reports a duration that is not an integer number of seconds.
type DurationError struct {
	Value string
	Err   error
}

func (e *DurationError) Error() string {
	return fmt.Sprintf("invalid duration %q: %v", e.Value, e.Err)
}

func (e *DurationError) Unwrap() error { return e.Err }

// ApplyArgs applies the positional arguments "[model-path] [seconds]".
//
// An unparseable duration resets the countdown to DefaultDuration and is
// reported as a *DurationError; callers treat it as a warning.
func ApplyArgs(cfg *Config, args []string) error {
	if len(args) > 2 {
		return fmt.Errorf("%w: %q", ErrTooManyArgs, args[2:])
	}
	if len(args) > 0 && args[0] != "" {
		cfg.Viewer.Model = args[0]
	}
	if len(args) > 1 {
		secs, err := strconv.Atoi(args[1])
		if err != nil {
			cfg.Viewer.Duration = DefaultDuration
			return &DurationError{Value: args[1], Err: err}
		}
		cfg.Viewer.Duration = secs
	}
	return nil
}

// CountdownEnabled reports whether the viewer shuts itself down.
func (c *Config) CountdownEnabled() bool {
	return c.Viewer.Duration > 0
}
