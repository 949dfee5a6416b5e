// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window" toml:"window"`
	Viewer   ViewerConfig   `yaml:"viewer" toml:"viewer"`
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
	Grid     GridConfig     `yaml:"grid" toml:"grid"`
	Lighting LightingConfig `yaml:"lighting" toml:"lighting"`
	Textures TexturesConfig `yaml:"textures" toml:"textures"`
	Debug    DebugConfig    `yaml:"debug" toml:"debug"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
	Samples    int    `yaml:"samples" toml:"samples"` // MSAA samples, 0 disables
}

// ViewerConfig holds what to show and for how long.
type ViewerConfig struct {
	Model         string `yaml:"model" toml:"model"`
	Duration      int    `yaml:"duration" toml:"duration"` // seconds until shutdown, <= 0 runs until closed
	Watch         bool   `yaml:"watch" toml:"watch"`
	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
	Highlight     string `yaml:"highlight" toml:"highlight"` // mesh name substring that blinks
}

// CameraConfig holds orbit camera defaults and sensitivities.
type CameraConfig struct {
	Yaw            float32    `yaml:"yaw" toml:"yaw"`
	Pitch          float32    `yaml:"pitch" toml:"pitch"`
	Distance       float32    `yaml:"distance" toml:"distance"`
	Target         [3]float32 `yaml:"target" toml:"target"`
	OrbitSpeed     float32    `yaml:"orbit_speed" toml:"orbit_speed"`
	PanSpeed       float32    `yaml:"pan_speed" toml:"pan_speed"`
	ZoomSpeed      float32    `yaml:"zoom_speed" toml:"zoom_speed"`
	ConstrainPitch bool       `yaml:"constrain_pitch" toml:"constrain_pitch"`
	AutoFit        bool       `yaml:"auto_fit" toml:"auto_fit"` // frame the model's bounds after loading
	FOV            float32    `yaml:"fov" toml:"fov"`
	Near           float32    `yaml:"near" toml:"near"`
	Far            float32    `yaml:"far" toml:"far"`
}

// GridConfig holds infinite grid parameters.
type GridConfig struct {
	Enabled          bool       `yaml:"enabled" toml:"enabled"`
	Size             float32    `yaml:"size" toml:"size"`
	CellSize         float32    `yaml:"cell_size" toml:"cell_size"`
	ThinColor        [4]float32 `yaml:"thin_color" toml:"thin_color"`
	ThickColor       [4]float32 `yaml:"thick_color" toml:"thick_color"`
	MinPixelsBetween float32    `yaml:"min_pixels_between_cells" toml:"min_pixels_between_cells"`
}

// LightingConfig holds the orbiting point light.
type LightingConfig struct {
	Radius         float32    `yaml:"radius" toml:"radius"`
	Height         float32    `yaml:"height" toml:"height"`
	Step           float32    `yaml:"step" toml:"step"` // radians per tick
	Color          [3]float32 `yaml:"color" toml:"color"`
	Constant       float32    `yaml:"constant" toml:"constant"`
	Linear         float32    `yaml:"linear" toml:"linear"`
	Quadratic      float32    `yaml:"quadratic" toml:"quadratic"`
	Ambient        float32    `yaml:"ambient" toml:"ambient"`
	Shininess      float32    `yaml:"shininess" toml:"shininess"`
	HighlightColor [3]float32 `yaml:"highlight_color" toml:"highlight_color"`
}

// TexturesConfig holds texture loading policy.
type TexturesConfig struct {
	Strict    bool `yaml:"strict" toml:"strict"` // first failure aborts the load
	FlipFiles bool `yaml:"flip_files" toml:"flip_files"`
}

// DebugConfig holds overlay toggles.
type DebugConfig struct {
	Wireframe    bool    `yaml:"wireframe" toml:"wireframe"`
	Normals      bool    `yaml:"normals" toml:"normals"`
	BBox         bool    `yaml:"bbox" toml:"bbox"`
	NormalLength float32 `yaml:"normal_length" toml:"normal_length"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// DefaultDuration is the shutdown countdown used when none is given.
const DefaultDuration = 10

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "gizmo",
			Width:   1280,
			Height:  720,
			VSync:   true,
			Samples: 4,
		},
		Viewer: ViewerConfig{
			Duration:      DefaultDuration,
			ScreenshotDir: "screenshots",
			Highlight:     "Lamp",
		},
		Camera: CameraConfig{
			Yaw:            -90,
			Pitch:          60,
			Distance:       0.65,
			Target:         [3]float32{0, 0.125, 0},
			OrbitSpeed:     0.2,
			PanSpeed:       0.002,
			ZoomSpeed:      0.2,
			ConstrainPitch: true,
			FOV:            45,
			Near:           0.1,
			Far:            100,
		},
		Grid: GridConfig{
			Enabled:          true,
			Size:             10,
			CellSize:         0.1,
			ThinColor:        [4]float32{0.5, 0.5, 0.5, 1},
			ThickColor:       [4]float32{0, 0, 0, 1},
			MinPixelsBetween: 2,
		},
		Lighting: LightingConfig{
			Radius:         5,
			Height:         1,
			Step:           0.075,
			Color:          [3]float32{1, 1, 0.9},
			Constant:       1,
			Linear:         0.09,
			Quadratic:      0.032,
			Ambient:        1,
			Shininess:      32,
			HighlightColor: [3]float32{1, 0.1, 0.1},
		},
		Debug: DebugConfig{
			NormalLength: 0.05,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
