package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for environment variable overrides,
// e.g. STOREFRONT_AUTH_JWT_SECRET overrides auth.jwt_secret.
const envPrefix = "STOREFRONT"

// Load reads configuration from an optional config.yaml in the working
// directory and from environment variables. Environment variables take
// precedence over file values. Returns a validated Config or an error.
func Load() (*Config, error) {
	cfg, _, err := load()
	return cfg, err
}

// LoadAndWatch behaves like Load but additionally watches the config file
// for changes, invoking onChange with the freshly loaded config whenever it
// is rewritten. Reload failures are reported to onError and the previous
// configuration stays in effect.
func LoadAndWatch(onChange func(*Config), onError func(error)) (*Config, error) {
	cfg, v, err := load()
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(in fsnotify.Event) {
		fresh, err := unmarshalAndValidate(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("config reload rejected: %w", err))
			}
			return
		}
		if onChange != nil {
			onChange(fresh)
		}
	})
	v.WatchConfig()

	return cfg, nil
}

func load() (*Config, *viper.Viper, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, nil, err
	}

	return cfg, v, nil
}

func setDefaults(v *viper.Viper) {
	// Keys without a real default still need registering so Unmarshal sees
	// their environment overrides.
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 7*24*60)
	v.SetDefault("auth.require_admin_writes", false)
	v.SetDefault("upload.dir", "public/uploads")
	v.SetDefault("upload.public_path", "/public/uploads")
}

func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
