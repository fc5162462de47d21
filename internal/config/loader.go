package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/leengari/queryviz/internal/engine"
)

// EnvPrefix maps env vars like QUERYVIZ_SERVER_PORT onto server.port
const EnvPrefix = "QUERYVIZ"

type LogConfig struct {
	Level     string
	SeqURL    string
	AddSource bool
}

type PlayerConfig struct {
	Interval time.Duration
}

type TransitionConfig struct {
	Duration time.Duration
	Stagger  time.Duration
}

type ServerConfig struct {
	Port        int
	MetricsAddr string
}

// Config is the full runtime configuration
type Config struct {
	Log        LogConfig
	Player     PlayerConfig
	Transition TransitionConfig
	Server     ServerConfig
}

func DefaultConfig() Config {
	ec := engine.DefaultConfig()
	return Config{
		Log:        LogConfig{Level: "info"},
		Player:     PlayerConfig{Interval: ec.PlayInterval},
		Transition: TransitionConfig{Duration: ec.TransitionDuration, Stagger: ec.Stagger},
		Server:     ServerConfig{Port: 4444},
	}
}

// Load reads config.yaml from configPath if present, then applies env
// overrides on top of the defaults
func Load(configPath string) (Config, error) {
	// Start with default
	cfg := DefaultConfig()

	if configPath == "" {
		configPath = "."
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // allow environment overrides

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found? Just log it, use defaults + env
		slog.Debug("No config.yaml found, using defaults and env vars", slog.String("path", configPath))
	} else {
		slog.Debug("Loaded config.yaml", slog.String("file", v.ConfigFileUsed()))
	}

	// Override defaults if values exist
	if v.IsSet("log.level") {
		cfg.Log.Level = v.GetString("log.level")
	}
	if v.IsSet("log.seq_url") {
		cfg.Log.SeqURL = v.GetString("log.seq_url")
	}
	if v.IsSet("log.add_source") {
		cfg.Log.AddSource = v.GetBool("log.add_source")
	}
	if v.IsSet("player.interval") {
		cfg.Player.Interval = v.GetDuration("player.interval")
	}
	if v.IsSet("transition.duration") {
		cfg.Transition.Duration = v.GetDuration("transition.duration")
	}
	if v.IsSet("transition.stagger") {
		cfg.Transition.Stagger = v.GetDuration("transition.stagger")
	}
	if v.IsSet("server.port") {
		cfg.Server.Port = v.GetInt("server.port")
	}
	if v.IsSet("server.metrics_addr") {
		cfg.Server.MetricsAddr = v.GetString("server.metrics_addr")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings no controller or server can run with
func (c Config) Validate() error {
	if c.Player.Interval <= 0 {
		return fmt.Errorf("player.interval must be positive, got %s", c.Player.Interval)
	}
	if c.Transition.Duration <= 0 {
		return fmt.Errorf("transition.duration must be positive, got %s", c.Transition.Duration)
	}
	if c.Transition.Stagger < 0 {
		return fmt.Errorf("transition.stagger must not be negative, got %s", c.Transition.Stagger)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Engine returns the controller timings
func (c Config) Engine() engine.Config {
	ec := engine.DefaultConfig()
	ec.PlayInterval = c.Player.Interval
	ec.TransitionDuration = c.Transition.Duration
	ec.Stagger = c.Transition.Stagger
	return ec
}
