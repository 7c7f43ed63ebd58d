// Package config loads process settings from an optional YAML file, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ASSETDESK_HTTP_ADDR.
const EnvPrefix = "ASSETDESK"

type HTTPConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

type DatabaseConfig struct {
	Path string
}

type AdminConfig struct {
	Email string
}

type AuthConfig struct {
	TokenTTL time.Duration
}

type LogConfig struct {
	Level string
	File  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Config is the process configuration.
type Config struct {
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Seed        bool
	Admin       AdminConfig
	Auth        AuthConfig
	Log         LogConfig
	CORS        CORSConfig
}

// Production reports whether the process runs in production.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"addr":        "http.addr",
	"db":          "database.path",
	"seed":        "seed",
	"admin-email": "admin.email",
	"log-file":    "log.file",
	"log-level":   "log.level",
}

// Load reads assetdesk.yaml from ".", "./config" or the file named by the
// "config" flag, then applies environment variables and the flags that were
// set. Flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName("assetdesk")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	setDefaults(v)

	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
		}
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.readheadertimeout", "10s")
	v.SetDefault("http.readtimeout", "30s")
	v.SetDefault("http.writetimeout", "60s")
	v.SetDefault("http.idletimeout", "120s")

	v.SetDefault("database.path", ":memory:")
	v.SetDefault("seed", true)
	v.SetDefault("admin.email", "admin@assetdesk.local")
	v.SetDefault("auth.tokenttl", "168h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("cors.allowedorigins", "http://*,https://*")
}
