package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvFileVar names the optional KEY=VALUE file read before the environment is processed.
const (
	EnvFileVar     = "ENV_FILE"
	DefaultEnvFile = ".env"
)

// Built-in fallbacks used when neither the request nor the environment supply a value.
const (
	DefaultEndpoint   = "mainnet.eth.streamingfast.io:443"
	DefaultPackage    = "ethereum-explorer@latest"
	DefaultModule     = "map_filter_transactions"
	DefaultStartBlock = "0"
	DefaultStopBlock  = "+500"
	DefaultBinary     = "substreams"
	DefaultPublicDir  = "public"
)

// Config contains all configuration parameters for the application.
type Config struct {
	Port      string `envconfig:"PORT" default:"3002"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	PublicDir string `envconfig:"PUBLIC_DIR" default:"public"`

	Binary        string        `envconfig:"SUBSTREAMS_BIN" default:"substreams"`
	Endpoint      string        `envconfig:"SUBSTREAMS_ENDPOINT" default:"mainnet.eth.streamingfast.io:443"`
	Package       string        `envconfig:"SUBSTREAMS_PACKAGE" default:"ethereum-explorer@latest"`
	Module        string        `envconfig:"SUBSTREAMS_MODULE" default:"map_filter_transactions"`
	StartBlock    string        `envconfig:"SUBSTREAMS_START_BLOCK" default:"0"`
	StopBlock     string        `envconfig:"SUBSTREAMS_STOP_BLOCK" default:"+500"`
	RunTimeout    time.Duration `envconfig:"SUBSTREAMS_RUN_TIMEOUT" default:"0s"`
	MaxConcurrent int           `envconfig:"SUBSTREAMS_MAX_CONCURRENT" default:"0"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads the optional .env file and then configuration from environment variables.
func Init() error {
	c, err := LoadWithEnvFile()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads the environment into a fresh Config without touching the global instance.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	c.normalize()
	if c.MaxConcurrent < 0 {
		return nil, fmt.Errorf("SUBSTREAMS_MAX_CONCURRENT must not be negative")
	}
	if c.RunTimeout < 0 {
		return nil, fmt.Errorf("SUBSTREAMS_RUN_TIMEOUT must not be negative")
	}
	return c, nil
}

// LoadWithEnvFile reads the file named by ENV_FILE (default .env) into the environment and then calls Load.
func LoadWithEnvFile() (*Config, error) {
	path := os.Getenv(EnvFileVar)
	if strings.TrimSpace(path) == "" {
		path = DefaultEnvFile
	}
	if err := LoadDotEnv(path); err != nil {
		return nil, err
	}
	return Load()
}

// LoadDotEnv copies KEY=VALUE pairs from path into the process environment.
// Variables that are already set keep their value. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// normalize treats variables that are set but blank as unset.
func (c *Config) normalize() {
	c.Port = orDefault(c.Port, "3002")
	c.LogLevel = orDefault(c.LogLevel, "info")
	c.PublicDir = orDefault(c.PublicDir, DefaultPublicDir)
	c.Binary = orDefault(c.Binary, DefaultBinary)
	c.Endpoint = orDefault(c.Endpoint, DefaultEndpoint)
	c.Package = orDefault(c.Package, DefaultPackage)
	c.Module = orDefault(c.Module, DefaultModule)
	c.StartBlock = orDefault(c.StartBlock, DefaultStartBlock)
	c.StopBlock = orDefault(c.StopBlock, DefaultStopBlock)
}

// Defaults returns the substreams parameters resolved from the environment.
func (c *Config) Defaults() Defaults {
	return Defaults{
		Endpoint:   c.Endpoint,
		Package:    c.Package,
		Module:     c.Module,
		StartBlock: c.StartBlock,
		StopBlock:  c.StopBlock,
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
