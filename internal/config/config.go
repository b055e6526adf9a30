package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	configFileName = "doctrack"
	envPrefix      = "DOCTRACK"
)

type Config struct {
	Store  StoreConfig  `mapstructure:"store"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Server ServerConfig `mapstructure:"server"`
	Jobs   JobsConfig   `mapstructure:"jobs"`
	Log    LogConfig    `mapstructure:"log"`
}

// StoreConfig selects the backend holding the documents.
type StoreConfig struct {
	Driver      string `mapstructure:"driver"` // csv, memory, sqlite, postgres
	Path        string `mapstructure:"path"`   // flat file or sqlite database file
	DSN         string `mapstructure:"dsn"`    // postgres connection string
	Compression string `mapstructure:"compression"`
}

type CacheConfig struct {
	TTL   time.Duration `mapstructure:"ttl"`
	Size  int           `mapstructure:"size"`
	Redis RedisConfig   `mapstructure:"redis"`
}

// RedisConfig enables the shared dirty flag when Addr is set.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

type ServerConfig struct {
	HTTPPort string `mapstructure:"http_port"`
}

// JobsConfig holds cron specs, an empty spec disables the job.
type JobsConfig struct {
	Backfill string `mapstructure:"backfill"`
	Stats    string `mapstructure:"stats"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", "csv")
	v.SetDefault("store.path", "sample_documents.csv")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.compression", "none")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.size", 128)
	v.SetDefault("cache.redis.addr", "")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.key", "doctrack:documents:version")
	v.SetDefault("server.http_port", "4001")
	v.SetDefault("jobs.backfill", "@every 1m")
	v.SetDefault("jobs.stats", "@every 10m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig reads doctrack.yml from the working directory, ./config or
// ~/.config/doctrack, then applies DOCTRACK_* environment overrides
// (DOCTRACK_STORE_DRIVER, DOCTRACK_CACHE_REDIS_ADDR, ...). A missing config
// file is not an error.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", configFileName))
	}

	return load(v)
}

// LoadConfigFile reads the given file instead of searching for one.
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logrus.Debug("no config file found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

// SetupLogger applies the log level and format to the standard logrus logger.
func SetupLogger(cfg LogConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	switch cfg.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return nil
}

// Settings returns the effective configuration as flat viper keys.
func (c *Config) Settings() map[string]any {
	return map[string]any{
		"store.driver":         c.Store.Driver,
		"store.path":           c.Store.Path,
		"store.dsn":            c.Store.DSN,
		"store.compression":    c.Store.Compression,
		"cache.ttl":            c.Cache.TTL.String(),
		"cache.size":           c.Cache.Size,
		"cache.redis.addr":     c.Cache.Redis.Addr,
		"cache.redis.password": c.Cache.Redis.Password,
		"cache.redis.db":       c.Cache.Redis.DB,
		"cache.redis.key":      c.Cache.Redis.Key,
		"server.http_port":     c.Server.HTTPPort,
		"jobs.backfill":        c.Jobs.Backfill,
		"jobs.stats":           c.Jobs.Stats,
		"log.level":            c.Log.Level,
		"log.format":           c.Log.Format,
	}
}

// WriteConfigFile saves cfg to path. The format follows the file extension.
func WriteConfigFile(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	v := viper.New()
	for key, value := range cfg.Settings() {
		v.Set(key, value)
	}

	return v.WriteConfigAs(path)
}
