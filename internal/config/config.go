package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	MemoryDriver   = "memory"
	SqliteDriver   = "sqlite"
	PostgresDriver = "postgres"

	SequentialStrategy = "sequential"
	ParallelStrategy   = "parallel"
)

type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Engine  EngineConfig  `mapstructure:"engine"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CatalogConfig selects where sections are read from. File is used by the memory driver, DSN by the SQL ones
type CatalogConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	File   string `mapstructure:"file"`
}

type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// EngineConfig tunes the combinator. Workers <= 0 means one per CPU and MaxCandidates 0 means unlimited
type EngineConfig struct {
	Strategy      string `mapstructure:"strategy"`
	Workers       int    `mapstructure:"workers"`
	MaxCandidates int    `mapstructure:"max_candidates"`
}

// Load reads the configuration with precedence: environment > file > defaults
func Load(path string) (*Config, error) {
	v := viper.New()

	//** Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("catalog.driver", MemoryDriver)
	v.SetDefault("catalog.dsn", "")
	v.SetDefault("catalog.file", "catalog.json")

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", "10m")

	v.SetDefault("engine.strategy", SequentialStrategy)
	v.SetDefault("engine.workers", 0)
	v.SetDefault("engine.max_candidates", 0)

	//** File
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("coursetable")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	//** Environment
	v.SetEnvPrefix("COURSETABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("cannot read configuration: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !lo.Contains([]string{MemoryDriver, SqliteDriver, PostgresDriver}, c.Catalog.Driver) {
		return fmt.Errorf("invalid configuration: unknown catalog.driver %q", c.Catalog.Driver)
	}
	if c.Catalog.Driver == MemoryDriver && c.Catalog.File == "" {
		return fmt.Errorf("invalid configuration: catalog.file is required by the %v driver", MemoryDriver)
	}
	if c.Catalog.Driver != MemoryDriver && c.Catalog.DSN == "" {
		return fmt.Errorf("invalid configuration: catalog.dsn is required by the %v driver", c.Catalog.Driver)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("invalid configuration: cache.ttl must be positive")
	}
	if !lo.Contains([]string{SequentialStrategy, ParallelStrategy}, c.Engine.Strategy) {
		return fmt.Errorf("invalid configuration: unknown engine.strategy %q", c.Engine.Strategy)
	}
	if c.Engine.MaxCandidates < 0 {
		return fmt.Errorf("invalid configuration: engine.max_candidates cannot be negative")
	}
	return nil
}
