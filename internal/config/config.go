package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "QTODO"

type Config struct {
	DBPath           string        `mapstructure:"db_path"`
	InMemory         bool          `mapstructure:"in_memory"`
	Latency          time.Duration `mapstructure:"latency"`
	ExcuseSeed       uint64        `mapstructure:"excuse_seed"`
	AstrologySeed    uint64        `mapstructure:"astrology_seed"`
	MotivationSeed   uint64        `mapstructure:"motivation_seed"`
	AstrologyRefresh time.Duration `mapstructure:"astrology_refresh"`
}

func Default() Config {
	return Config{
		DBPath:           DefaultDBPath(),
		InMemory:         false,
		Latency:          150 * time.Millisecond,
		ExcuseSeed:       0,
		AstrologySeed:    0,
		MotivationSeed:   0,
		AstrologyRefresh: time.Minute,
	}
}

func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qtodo/qtodo.db"
	}
	return filepath.Join(home, ".qtodo", "qtodo.db")
}

// DefaultFilePath is where Load looks when no explicit path is given.
func DefaultFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".qtodo", "config.yaml")
	}
	return filepath.Join(home, ".qtodo", "config.yaml")
}

// Load starts from Default, merges the YAML file at path if it exists and
// lets QTODO_* environment variables override both. An empty path uses
// DefaultFilePath; a missing default file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultFilePath()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("in_memory", cfg.InMemory)
	v.SetDefault("latency", cfg.Latency)
	v.SetDefault("excuse_seed", cfg.ExcuseSeed)
	v.SetDefault("astrology_seed", cfg.AstrologySeed)
	v.SetDefault("motivation_seed", cfg.MotivationSeed)
	v.SetDefault("astrology_refresh", cfg.AstrologyRefresh)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("stat config %s: %w", path, err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !c.InMemory && strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db_path is required unless in_memory is set")
	}
	if c.Latency < 0 {
		return errors.New("config: latency must not be negative")
	}
	if c.AstrologyRefresh <= 0 {
		return errors.New("config: astrology_refresh must be positive")
	}
	return nil
}
