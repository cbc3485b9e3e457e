package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the variable holding an optional YAML config path
const EnvConfigFile = "EBOOKSTORE_CONFIG"

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Menu     MenuConfig     `yaml:"menu"`
}

type DatabaseConfig struct {
	Path         string `yaml:"path"`
	Driver       string `yaml:"driver"`       // "sqlite3" (mattn) or "sqlite" (modernc)
	BusyTimeout  int    `yaml:"busy_timeout"` // milliseconds
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
	File   string `yaml:"file"`
}

type MenuConfig struct {
	// Charset of the menu input, e.g. "windows-1251". Empty means UTF-8.
	Charset string `yaml:"charset"`
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:         "books.db",
			Driver:       "sqlite3",
			BusyTimeout:  5000,
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load creates a new Config from defaults, the YAML file at path, a .env
// file and environment variables, in that order. An empty path skips the
// YAML file.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// .env is optional, values already in the environment win
	_ = godotenv.Load()

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.BusyTimeout = getEnvInt("DB_BUSY_TIMEOUT", cfg.Database.BusyTimeout)
	cfg.Database.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)
	cfg.Menu.Charset = getEnv("INPUT_CHARSET", cfg.Menu.Charset)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
