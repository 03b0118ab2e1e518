package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConfigName is the base name of the command's own configuration file.
const ConfigName = "smartseek"

// EnvPrefix prefixes environment overrides, e.g. SMARTSEEK_LOG_LEVEL.
const EnvPrefix = "smartseek"

// Config is the command configuration. The synced settings themselves live
// in the store named by Store.
type Config struct {
	Store  string       `mapstructure:"store" yaml:"store"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Player PlayerConfig `mapstructure:"player" yaml:"player"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	// File receives log output when set. The play command always logs to a
	// file so the screen stays clean.
	File string `mapstructure:"file" yaml:"file"`
}

// PlayerConfig configures the terminal page.
type PlayerConfig struct {
	// Videos lists the page's videos as "name" or "name=duration".
	Videos []string `mapstructure:"videos" yaml:"videos"`
	// Duration is the length of videos that do not name one.
	Duration time.Duration `mapstructure:"duration" yaml:"duration"`
	// OSD is how long the seek indicator stays up.
	OSD time.Duration `mapstructure:"osd" yaml:"osd"`
}

// ConfigDir returns the directory holding the config file and the default
// settings store.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, ConfigName), nil
}

// DefaultConfigPath returns the path of the user config file.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigName+".yaml"), nil
}

// ConfigDefaults returns the default configuration values keyed by viper key.
func ConfigDefaults() map[string]any {
	store := "file:settings.json"
	logFile := ConfigName + ".log"
	if dir, err := ConfigDir(); err == nil {
		store = "file:" + filepath.Join(dir, "settings.json")
		logFile = filepath.Join(dir, ConfigName+".log")
	}

	return map[string]any{
		"store":           store,
		"log.level":       "info",
		"log.file":        logFile,
		"player.videos":   []string{"feature=42m", "trailer=2m30s"},
		"player.duration": 10 * time.Minute,
		"player.osd":      800 * time.Millisecond,
	}
}

// LoadConfig resolves the configuration from defaults, the config file,
// SMARTSEEK_* environment variables and cmd's flags, in increasing order of
// precedence. An explicit path must exist; the default locations are
// optional.
func LoadConfig(cmd *cobra.Command, path string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range ConfigDefaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return c, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		flags := cmd.Flags()
		for flag, key := range map[string]string{
			"store":     "store",
			"log-level": "log.level",
			"log-file":  "log.file",
		} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, err
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

// WriteConfigFile writes c as YAML to path, creating parent directories.
func WriteConfigFile(path string, c Config) error {
	data, err := yaml.Marshal(configFile{
		Store: c.Store,
		Log:   c.Log,
		Player: playerFile{
			Videos:   c.Player.Videos,
			Duration: c.Player.Duration.String(),
			OSD:      c.Player.OSD.String(),
		},
	})
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, data, 0o644)
}

// configFile is the on-disk form of Config; durations are written in
// time.Duration string form so they read back through viper.
type configFile struct {
	Store  string     `yaml:"store"`
	Log    LogConfig  `yaml:"log"`
	Player playerFile `yaml:"player"`
}

type playerFile struct {
	Videos   []string `yaml:"videos"`
	Duration string   `yaml:"duration"`
	OSD      string   `yaml:"osd"`
}
