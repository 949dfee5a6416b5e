package config

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Camera distance limits enforced by the orbit camera.
const (
	MinDistance = 0.1
	MaxDistance = 100
)

// Validate reports every setting that cannot work; it also clamps the
// camera distance into range.
func (c *Config) Validate() error {
	var err error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.Samples < 0 {
		err = multierr.Append(err, fmt.Errorf("window samples %d must not be negative", c.Window.Samples))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		err = multierr.Append(err, fmt.Errorf("camera fov %v must be in (0, 180)", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		err = multierr.Append(err, fmt.Errorf("camera clip planes near=%v far=%v are invalid", c.Camera.Near, c.Camera.Far))
	}
	if c.Grid.Size <= 0 || c.Grid.CellSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("grid size %v and cell size %v must be positive", c.Grid.Size, c.Grid.CellSize))
	}
	if c.Lighting.Constant < 0 || c.Lighting.Linear < 0 || c.Lighting.Quadratic < 0 {
		err = multierr.Append(err, fmt.Errorf("light attenuation must not be negative"))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("unknown log level %q", c.Logging.Level))
	}

	c.Camera.Distance = min(max(c.Camera.Distance, MinDistance), MaxDistance)
	return err
}
