package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/mnehpets/streamrpc/framing"
)

// calc-server config.toml key mapping.
type fileConfig struct {
	Addr         string `toml:"addr"`
	MaxLineBytes int    `toml:"max_line_bytes"`
	LogLevel     string `toml:"log_level"`
}

type serverConfig struct {
	Addr         string
	MaxLineBytes int
	LogLevel     zerolog.Level
}

func defaultConfig() serverConfig {
	return serverConfig{
		Addr:         "127.0.0.1:7878",
		MaxLineBytes: framing.DefaultMaxLineBytes,
		LogLevel:     zerolog.InfoLevel,
	}
}

// loadConfig overlays the TOML file (when given) and CALC_SERVER_* env vars
// over the defaults. Env wins over file.
func loadConfig(path string) (serverConfig, error) {
	cfg := defaultConfig()

	if path != "" {
		var raw fileConfig
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return serverConfig{}, fmt.Errorf("load config: %w", err)
		}
		if meta.IsDefined("addr") {
			cfg.Addr = strings.TrimSpace(raw.Addr)
		}
		if meta.IsDefined("max_line_bytes") {
			cfg.MaxLineBytes = raw.MaxLineBytes
		}
		if meta.IsDefined("log_level") {
			lvl, err := zerolog.ParseLevel(strings.TrimSpace(raw.LogLevel))
			if err != nil {
				return serverConfig{}, fmt.Errorf("log_level: %w", err)
			}
			cfg.LogLevel = lvl
		}
	}

	if v := os.Getenv("CALC_SERVER_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("CALC_SERVER_MAX_LINE_BYTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return serverConfig{}, fmt.Errorf("CALC_SERVER_MAX_LINE_BYTES: %w", err)
		}
		cfg.MaxLineBytes = n
	}
	if v := os.Getenv("CALC_SERVER_LOG_LEVEL"); v != "" {
		lvl, err := zerolog.ParseLevel(v)
		if err != nil {
			return serverConfig{}, fmt.Errorf("CALC_SERVER_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = lvl
	}

	return cfg, nil
}
