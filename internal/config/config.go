package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-winkey/internal/types"
)

// Source names accepted by the source setting.
const (
	SourceAuto    = "auto"
	SourceLive    = "live"
	SourceRegFile = "reg-file"
	SourceBlob    = "blob-file"
)

// Config holds settings for key recovery.
type Config struct {
	Source    string         `mapstructure:"source"`
	Output    string         `mapstructure:"output"`
	LogLevel  string         `mapstructure:"log_level"`
	LogFormat string         `mapstructure:"log_format"`
	Registry  RegistryConfig `mapstructure:"registry"`
	Detect    DetectConfig   `mapstructure:"detect"`
}

// RegistryConfig describes where the encoded key is stored.
type RegistryConfig struct {
	KeyPath        string `mapstructure:"key_path"`
	DefaultValue   string `mapstructure:"default_value"`
	AlternateValue string `mapstructure:"alternate_value"`
	WOW64Fallback  bool   `mapstructure:"wow64_fallback"`
}

// DetectConfig controls OS detection.
type DetectConfig struct {
	UseWMI  bool   `mapstructure:"use_wmi"`
	Release string `mapstructure:"release"`
	Edition string `mapstructure:"edition"`
}

// Load reads configuration. When path is empty, winkey-config.yaml is searched for in
// the usual places and a missing file is not an error. Environment variables with the
// WINKEY_ prefix override file values, e.g. WINKEY_REGISTRY_KEY_PATH.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("WINKEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("winkey-config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.winkey")
		v.AddConfigPath("/etc/winkey")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Source:    SourceAuto,
		Output:    "table",
		LogLevel:  "warn",
		LogFormat: "text",
		Registry: RegistryConfig{
			KeyPath:        types.CurrentVersionKeyPath,
			DefaultValue:   types.DigitalProductIDValue,
			AlternateValue: types.DigitalProductIDAlternateValue,
			WOW64Fallback:  true,
		},
		Detect: DetectConfig{UseWMI: true},
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceAuto, SourceLive, SourceRegFile, SourceBlob:
	default:
		return fmt.Errorf("invalid source %q", c.Source)
	}
	switch c.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q", c.Output)
	}
	if c.Registry.KeyPath == "" {
		return errors.New("registry.key_path must not be empty")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("source", d.Source)
	v.SetDefault("output", d.Output)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("registry.key_path", d.Registry.KeyPath)
	v.SetDefault("registry.default_value", d.Registry.DefaultValue)
	v.SetDefault("registry.alternate_value", d.Registry.AlternateValue)
	v.SetDefault("registry.wow64_fallback", d.Registry.WOW64Fallback)
	v.SetDefault("detect.use_wmi", d.Detect.UseWMI)
	v.SetDefault("detect.release", d.Detect.Release)
	v.SetDefault("detect.edition", d.Detect.Edition)
}
