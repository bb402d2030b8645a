// Package config loads the application settings for the surprise player.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no --config flag is
// given.
const EnvPath = "SURPRISE_CONFIG"

// Audio backends.
const (
	BackendEbiten = "ebiten"
	BackendBeep   = "beep"
	BackendNone   = "none"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Window struct {
		Title     string `yaml:"title"`
		Width     int    `yaml:"width"`
		Height    int    `yaml:"height"`
		Resizable bool   `yaml:"resizable"`
		TPS       int    `yaml:"tps"`
		ShowFPS   bool   `yaml:"showFPS"`
	} `yaml:"window"`
	// Assets is the directory images and audio references resolve against.
	Assets string `yaml:"assets"`
	// Content is a YAML scene table; empty selects the built-in one.
	Content string `yaml:"content"`
	Audio   struct {
		Backend    string  `yaml:"backend"`
		SampleRate int     `yaml:"sampleRate"`
		Volume     float64 `yaml:"volume"`
		// Playlist overrides the scene table's playlist when set.
		Playlist []string `yaml:"playlist"`
		// Existing is started before the scene is shown and handed to the
		// music bar, which adopts it.
		Existing bool `yaml:"existing"`
	} `yaml:"audio"`
	Quiz struct {
		Correct   string `yaml:"correct"`
		Incorrect string `yaml:"incorrect"`
	} `yaml:"quiz"`
	Camera struct {
		Eye    [3]float64 `yaml:"eye"`
		LookAt [3]float64 `yaml:"lookAt"`
		FOV    float64    `yaml:"fov"`
	} `yaml:"camera"`
	Debug bool `yaml:"debug"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	var c Config
	c.Window.Title = "Surprise"
	c.Window.Width = 1280
	c.Window.Height = 720
	c.Window.TPS = 60
	c.Assets = "assets"
	c.Audio.Backend = BackendEbiten
	c.Audio.SampleRate = 44100
	c.Audio.Volume = 0.8
	c.Camera.Eye = [3]float64{0, 2.5, 6}
	c.Camera.LookAt = [3]float64{0, 0.3, 0}
	c.Camera.FOV = 50
	return c
}

// Path returns flag if set, otherwise the value of EnvPath.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(EnvPath)
}

// Load reads YAML config from path on top of Default. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("%w: tps %d", ErrInvalid, c.Window.TPS))
	}
	switch c.Audio.Backend {
	case BackendEbiten, BackendBeep, BackendNone:
	default:
		errs = append(errs, fmt.Errorf("%w: audio backend %q", ErrInvalid, c.Audio.Backend))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: sample rate %d", ErrInvalid, c.Audio.SampleRate))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("%w: volume %g", ErrInvalid, c.Audio.Volume))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("%w: fov %g", ErrInvalid, c.Camera.FOV))
	}
	return errors.Join(errs...)
}
