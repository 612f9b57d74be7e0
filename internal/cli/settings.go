package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// envPrefix namespaces environment overrides, e.g. TIMELANES_REDIS_URL.
const envPrefix = "TIMELANES_"

// settingsFileNames are looked up in the working directory, then in the
// user config directory.
var settingsFileNames = []string{"timelanes.yaml", "timelanes.yml"}

// Settings are the CLI defaults that are not part of a layout request.
type Settings struct {
	// RedisURL selects a Redis cache; empty uses the file cache.
	RedisURL string `koanf:"redis_url"`

	NoCache bool `koanf:"no_cache"`

	// CacheDir overrides the XDG cache directory of the file cache.
	CacheDir string `koanf:"cache_dir"`

	// File is the settings file that was loaded, if any.
	File string `koanf:"-"`
}

// loadSettings merges, lowest to highest precedence: defaults, the settings
// file, TIMELANES_* environment variables and explicitly set flags.
// explicit names a settings file that must exist.
func loadSettings(explicit string, flags *pflag.FlagSet) (Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"redis_url": "",
		"no_cache":  false,
		"cache_dir": "",
	}, "."), nil); err != nil {
		return Settings{}, fmt.Errorf("load defaults: %w", err)
	}

	path, err := findSettingsFile(explicit)
	if err != nil {
		return Settings{}, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
		}
	}

	// TIMELANES_REDIS_URL -> redis_url
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Settings{}, fmt.Errorf("load env: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return Settings{}, fmt.Errorf("load flags: %w", err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	s.File = path
	return s, nil
}

// findSettingsFile returns explicit if set, else the first settings file
// found, else "".
func findSettingsFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("settings file: %w", err)
		}
		return explicit, nil
	}

	dirs := []string{"."}
	if dir, err := configDir(); err == nil {
		dirs = append(dirs, dir)
	}
	for _, dir := range dirs {
		for _, name := range settingsFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", nil
}

// configDir returns the settings directory using XDG standard
// (~/.config/timelanes/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
