package main

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "MODELGEN"
	configName     = "modelgen"
	defaultTimeout = 10 * time.Second
)

// Config is the resolved CLI configuration.
type Config struct {
	Source   string      `mapstructure:"source"`
	DSN      string      `mapstructure:"dsn"`
	Format   string      `mapstructure:"format"`
	Renderer string      `mapstructure:"renderer"`
	Output   string      `mapstructure:"output"`
	Theme    ThemeConfig `mapstructure:"theme"`
	Log      LogConfig   `mapstructure:"log"`
	HTTP     HTTPConfig  `mapstructure:"http"`
}

// ThemeConfig selects a theme from a manifest file.
type ThemeConfig struct {
	File    string `mapstructure:"file"`
	Name    string `mapstructure:"name"`
	Variant string `mapstructure:"variant"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	JSON    bool `mapstructure:"json"`
	Verbose bool `mapstructure:"verbose"`
}

// HTTPConfig controls remote schema loading.
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// flagKeys maps persistent flag names onto configuration keys.
var flagKeys = map[string]string{
	"source":        "source",
	"dsn":           "dsn",
	"format":        "format",
	"renderer":      "renderer",
	"output":        "output",
	"theme-file":    "theme.file",
	"theme":         "theme.name",
	"theme-variant": "theme.variant",
	"log-json":      "log.json",
	"verbose":       "log.verbose",
	"http-timeout":  "http.timeout",
}

// SetDefaults registers the built-in values. Every key needs a default so
// environment variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source", "")
	v.SetDefault("dsn", "")
	v.SetDefault("format", "")
	v.SetDefault("renderer", "plain")
	v.SetDefault("output", "")
	v.SetDefault("theme.file", "")
	v.SetDefault("theme.name", "")
	v.SetDefault("theme.variant", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbose", false)
	v.SetDefault("http.timeout", defaultTimeout)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// bindFlags attaches the persistent flags to their configuration keys so a
// flag set on the command line wins over file and environment values.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "bind flag %s", name)
		}
	}
	return nil
}

// LoadConfig layers defaults, the config file, MODELGEN_* environment
// variables and bound flags. A missing modelgen.yaml is not an error; a
// missing explicit path is.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	return &cfg, nil
}
