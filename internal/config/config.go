package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server ServerConfig `toml:"server"`
	Image  ImageConfig  `toml:"image"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type ImageConfig struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	FontSize  int    `toml:"font_size"`
	AssetsDir string `toml:"assets_dir"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     51205,
			LogLevel: "info",
		},
		Image: ImageConfig{
			Width:     1240,
			Height:    620,
			FontSize:  40,
			AssetsDir: "./assets",
		},
	}
}

// Load reads the TOML config at path. A missing file is not an error:
// the default config is written there and returned, so a fresh checkout
// starts with a working config.toml next to the binary.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		c := Default()
		if err := writeDefault(path, c); err != nil {
			return Config{}, fmt.Errorf("write default config %s: %w", path, err)
		}
		return c, nil
	}

	c := Default()
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func writeDefault(path string, c Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if _, err := parseLogLevel(c.Server.LogLevel); err != nil {
		return err
	}
	if c.Image.Width < 1 || c.Image.Height < 1 {
		return fmt.Errorf("invalid canvas dimensions %dx%d", c.Image.Width, c.Image.Height)
	}
	if c.Image.FontSize < 1 {
		return fmt.Errorf("invalid font size %d", c.Image.FontSize)
	}
	if c.Image.AssetsDir == "" {
		return fmt.Errorf("assets_dir must not be empty")
	}
	return nil
}

// Addr is the listen address in host:port form.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Level returns the slog level for the configured log_level. Validate
// must have passed.
func (c Config) Level() slog.Level {
	level, _ := parseLogLevel(c.Server.LogLevel)
	return level
}

// Debug reports whether the draw-result debug dump should be logged.
func (c Config) Debug() bool {
	return strings.ToLower(c.Server.LogLevel) == "debug"
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log_level %q", s)
	}
}
