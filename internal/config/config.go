// Package config loads the mudra configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/hand"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// DataDirName is the per-user directory below $HOME holding the database,
// plugins and the default config file.
const DataDirName = ".mudra"

// Config is the full application configuration.
type Config struct {
	Camera   capture.Config  `yaml:"camera"`
	Detector detector.Config `yaml:"detector"`
	Hand     hand.Params     `yaml:"hand"`
	Loop     LoopConfig      `yaml:"loop"`
	Display  DisplayConfig   `yaml:"display"`
	Server   ServerConfig    `yaml:"server"`
	Store    StoreConfig     `yaml:"store"`
	Plugins  PluginsConfig   `yaml:"plugins"`
	Log      LogConfig       `yaml:"log"`
	Tray     TrayConfig      `yaml:"tray"`
}

// LoopConfig controls the frame loop cadence.
type LoopConfig struct {
	// ActiveWait is the pause between frames while the picture is moving.
	ActiveWait time.Duration `yaml:"active_wait"`
	// IdleWait is the pause between frames once nothing moved for IdleTimeout.
	IdleWait time.Duration `yaml:"idle_wait"`
	// MotionThreshold is the percent of changed pixels that counts as motion.
	MotionThreshold float64 `yaml:"motion_threshold"`
	// IdleTimeout is how long without motion before switching to IdleWait.
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// DisplayConfig controls the preview window.
type DisplayConfig struct {
	Window   bool   `yaml:"window"`
	Title    string `yaml:"title"`
	Skeleton bool   `yaml:"skeleton"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"`
}

// StoreConfig controls the signal journal database.
type StoreConfig struct {
	Path    string `yaml:"path"`
	Journal bool   `yaml:"journal"`
}

// PluginsConfig controls action plugins.
type PluginsConfig struct {
	Dir     string        `yaml:"dir"`
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// TrayConfig controls the system tray icon.
type TrayConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Camera:   capture.DefaultConfig(),
		Detector: detector.DefaultConfig(),
		Hand:     hand.DefaultParams(),
		Loop: LoopConfig{
			ActiveWait:      30 * time.Millisecond,
			IdleWait:        150 * time.Millisecond,
			MotionThreshold: capture.DefaultMotionThreshold,
			IdleTimeout:     2 * time.Second,
		},
		Display: DisplayConfig{
			Window: true,
			Title:  "mudra",
		},
		Server: ServerConfig{
			Enabled: true,
			Addr:    "127.0.0.1:8080",
		},
		Store: StoreConfig{
			Path:    filepath.Join("~", DataDirName, "mudra.db"),
			Journal: true,
		},
		Plugins: PluginsConfig{
			Dir:     filepath.Join("~", DataDirName, "plugins"),
			Timeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Tray: TrayConfig{
			Enabled: false,
		},
	}
}

// DefaultPath returns ~/.mudra/config.yaml, or a relative fallback when the
// home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mudra.yaml"
	}
	return filepath.Join(home, DataDirName, "config.yaml")
}

// Load reads a YAML file over the defaults. A missing file yields the
// defaults. Paths are expanded and the result validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects values the frame loop cannot run with.
func (c *Config) Validate() error {
	if err := c.Hand.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Hand.PitchSensitivity <= 0 {
		return fmt.Errorf("%w: hand.pitch_sensitivity must be positive", ErrInvalid)
	}
	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		return fmt.Errorf("%w: camera size %dx%d", ErrInvalid, c.Camera.Width, c.Camera.Height)
	}
	if c.Camera.FPS <= 0 {
		return fmt.Errorf("%w: camera.fps must be positive", ErrInvalid)
	}
	if c.Detector.MinConfidence < 0 || c.Detector.MinConfidence > 1 ||
		c.Detector.MinTrackingConf < 0 || c.Detector.MinTrackingConf > 1 {
		return fmt.Errorf("%w: detector confidences must be within [0,1]", ErrInvalid)
	}
	if c.Loop.ActiveWait <= 0 || c.Loop.IdleWait <= 0 {
		return fmt.Errorf("%w: loop waits must be positive", ErrInvalid)
	}
	if c.Loop.IdleWait < c.Loop.ActiveWait {
		return fmt.Errorf("%w: loop.idle_wait shorter than loop.active_wait", ErrInvalid)
	}
	if c.Loop.MotionThreshold <= 0 {
		return fmt.Errorf("%w: loop.motion_threshold must be positive", ErrInvalid)
	}
	if c.Plugins.Timeout <= 0 {
		return fmt.Errorf("%w: plugins.timeout must be positive", ErrInvalid)
	}
	if c.Server.Enabled && c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalid)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{
		&c.Store.Path,
		&c.Plugins.Dir,
		&c.Server.StaticDir,
		&c.Detector.Script,
		&c.Detector.Python,
	} {
		expanded, err := ExpandHome(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
