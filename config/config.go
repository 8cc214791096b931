// Package config loads service configuration from environment variables.
// Variables use the FIELDLOG_ prefix with one underscore per section, e.g.
// FIELDLOG_DATABASE_URL -> database.url, FIELDLOG_AUTH_SECRET -> auth.secret.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "FIELDLOG_"

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Auth     AuthConfig     `koanf:"auth" validate:"required"`
	Storage  StorageConfig  `koanf:"storage"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Port         string `koanf:"port" validate:"required"`
	ReadTimeout  int    `koanf:"readtimeout" validate:"required,min=1"`
	WriteTimeout int    `koanf:"writetimeout" validate:"required,min=1"`
}

type DatabaseConfig struct {
	URL      string `koanf:"url" validate:"required"`
	MaxConns int32  `koanf:"maxconns" validate:"required,min=1"`
	MinConns int32  `koanf:"minconns" validate:"min=0"`
}

type AuthConfig struct {
	// Secret is the HMAC key used to verify bearer tokens issued by the
	// identity provider. The service never issues tokens itself.
	Secret string `koanf:"secret" validate:"required,min=16"`
}

type StorageConfig struct {
	// UploadDir is the root directory photos are written under; it is also
	// served read-only at /uploads.
	UploadDir string `koanf:"uploaddir" validate:"required"`
	// MaxUploadBytes caps the whole multipart request body.
	MaxUploadBytes int64 `koanf:"maxuploadbytes" validate:"required,min=1"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=console json"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.port":            "8080",
		"server.readtimeout":     15,
		"server.writetimeout":    30,
		"database.maxconns":      int32(25),
		"database.minconns":      int32(5),
		"storage.uploaddir":      "uploads",
		"storage.maxuploadbytes": int64(50 << 20),
		"log.level":              "info",
		"log.format":             "console",
	}
}

// Load reads FIELDLOG_* environment variables over the built-in defaults and
// validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	for key, val := range defaults() {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("config defaults: %w", err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
