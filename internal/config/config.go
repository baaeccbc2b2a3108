package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Stick    StickConfig    `toml:"stick"`
	Playback PlaybackConfig `toml:"playback"`
	Jellyfin JellyfinConfig `toml:"jellyfin"`
	Bindings BindingConfig  `toml:"bindings"`
}

// StickConfig controls how the joystick is acquired.
type StickConfig struct {
	// Device pins discovery to an explicit event node path.
	Device string `toml:"device"`
	// Grab takes the exclusive kernel grab so the console keymap stops
	// treating the stick as arrow keys.
	Grab bool `toml:"grab"`
}

type PlaybackConfig struct {
	HWAccel   string  `toml:"hwdec"`
	Volume    int     `toml:"volume"`
	SeekSmall float64 `toml:"seek_small"`
	SeekLarge float64 `toml:"seek_large"`
}

type JellyfinConfig struct {
	URL      string `toml:"url"`
	Username string `toml:"username"`
	Token    string `toml:"token"`
	UserID   string `toml:"user_id"`
	// Session preselects the client session to control when more than one
	// is active.
	Session string `toml:"session"`
}

// BindingConfig overrides the built-in stick bindings. Keys are direction
// names (up, down, left, right, enter), values are command names.
type BindingConfig struct {
	Press map[string]string `toml:"press"`
	Hold  map[string]string `toml:"hold"`
}

func DefaultConfig() *Config {
	return &Config{
		Playback: PlaybackConfig{
			HWAccel:   "auto-safe",
			Volume:    100,
			SeekSmall: 10,
			SeekLarge: 60,
		},
	}
}

func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "couchstick"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
