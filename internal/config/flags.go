package config

import (
	"flag"
	"strconv"
)

// optionalBool is a bool flag that remembers whether it was given, so
// -vsync=false can override a config file that enables it.
type optionalBool struct {
	set   bool
	value bool
}

func (b *optionalBool) String() string {
	if b == nil || !b.set {
		return ""
	}
	return strconv.FormatBool(b.value)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.set, b.value = true, v
	return nil
}

func (b *optionalBool) IsBoolFlag() bool { return true }

var (
	flagConfig   = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagModel    = flag.String("model", "", "Model file to open")
	flagDuration = flag.String("duration", "", "Seconds until shutdown, 0 runs until closed")
	flagWidth    = flag.Int("width", 0, "Window width")
	flagHeight   = flag.Int("height", 0, "Window height")
	flagLogLevel = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flagLogFile  = flag.String("log-file", "", "Log file path")
	flagPick     = flag.Bool("pick", false, "Choose the model with a file dialog")

	flagFullscreen     optionalBool
	flagVSync          optionalBool
	flagWatch          optionalBool
	flagStrictTextures optionalBool
)

func init() {
	flag.Var(&flagFullscreen, "fullscreen", "Run in fullscreen mode")
	flag.Var(&flagVSync, "vsync", "Enable vertical sync")
	flag.Var(&flagWatch, "watch", "Reload the model when the file changes")
	flag.Var(&flagStrictTextures, "strict-textures", "Abort a load on the first texture failure")
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// PickRequested reports whether -pick was given.
func PickRequested() bool {
	return *flagPick
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagModel != "" {
		cfg.Viewer.Model = *flagModel
	}
	if *flagDuration != "" {
		secs, err := strconv.Atoi(*flagDuration)
		if err != nil {
			return &DurationError{Value: *flagDuration, Err: err}
		}
		cfg.Viewer.Duration = secs
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagLogLevel != "" {
		cfg.Logging.Level = *flagLogLevel
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if flagFullscreen.set {
		cfg.Window.Fullscreen = flagFullscreen.value
	}
	if flagVSync.set {
		cfg.Window.VSync = flagVSync.value
	}
	if flagWatch.set {
		cfg.Viewer.Watch = flagWatch.value
	}
	if flagStrictTextures.set {
		cfg.Textures.Strict = flagStrictTextures.value
	}
	return nil
}
