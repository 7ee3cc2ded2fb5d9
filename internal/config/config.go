// Package config handles viewer configuration loading and management.
package config

// Config holds all skelview settings.
type Config struct {
	Viewer   ViewerConfig   `yaml:"viewer"`
	Playback PlaybackConfig `yaml:"playback"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ViewerConfig holds window and display settings.
type ViewerConfig struct {
	Headless bool   `yaml:"headless"`
	Title    string `yaml:"title"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	VSync    bool   `yaml:"vsync"`
}

// PlaybackConfig holds animation playback settings.
type PlaybackConfig struct {
	// Clip is the clip index selected at startup. Out-of-range
	// values disable animation, matching the runtime's behavior.
	Clip int `yaml:"clip"`
	// Speed scales delta time before it reaches the animator.
	Speed float32 `yaml:"speed"`
	// Step is the fixed timestep in seconds used in headless mode.
	Step float32 `yaml:"step"`
	// Duration is how long a headless run plays, in seconds.
	Duration float32 `yaml:"duration"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Headless: false,
			Title:    "skelview",
			Width:    1280,
			Height:   720,
			VSync:    true,
		},
		Playback: PlaybackConfig{
			Clip:     0,
			Speed:    1.0,
			Step:     1.0 / 60.0,
			Duration: 5.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
