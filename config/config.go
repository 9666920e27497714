// Package config loads the sidecar's settings from a YAML file with NECRO_
// prefixed environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/nstehr/necro/necro-core/rules"
)

type Config struct {
	Network string        `mapstructure:"network"`
	Socket  string        `mapstructure:"socket"`
	Seed    int64         `mapstructure:"seed"` // 0 = seed from the clock
	Log     LogConfig     `mapstructure:"log"`
	Policy  rules.Policy  `mapstructure:"policy"`
	Outcome OutcomeConfig `mapstructure:"outcome"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"` // empty = stdout only
	MaxSize    int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAge     int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// SlogLevel parses Level, falling back to info.
func (c LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

type OutcomeConfig struct {
	File    string `mapstructure:"file"` // empty disables the record
	MaxSize int    `mapstructure:"maxSize"`
}

func setDefaults(v *viper.Viper) {
	p := rules.DefaultPolicy()
	v.SetDefault("network", "unix")
	v.SetDefault("socket", "/tmp/necro.sock")
	v.SetDefault("seed", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxSize", 10)
	v.SetDefault("log.maxBackups", 3)
	v.SetDefault("log.maxAge", 28)
	v.SetDefault("log.compress", false)

	v.SetDefault("policy.miners", p.Miners)
	v.SetDefault("policy.fishers", p.Fishers)
	v.SetDefault("policy.builders", p.Builders)
	v.SetDefault("policy.attackers", p.Attackers)
	v.SetDefault("policy.explore", p.Explore)

	v.SetDefault("outcome.file", "")
	v.SetDefault("outcome.maxSize", 5)
}

// Load reads path (when it exists) over the defaults and applies environment
// overrides such as NECRO_SOCKET or NECRO_LOG_LEVEL. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("NECRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if fileExist(path) {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else {
			slog.Info("config file not found, using defaults", "path", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Network != "unix" && c.Network != "tcp" {
		return Config{}, fmt.Errorf("unsupported network %q", c.Network)
	}
	c.Policy.Validate()
	return c, nil
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
