// Package config loads sqlstream configuration from YAML files and
// environment variables via Viper, with optional .env support.
//
//	type AppConfig struct {
//	    Logging  logger.Config   `yaml:"logging" mapstructure:"logging"`
//	    Database database.Config `yaml:"database" mapstructure:"database"`
//	}
//	var cfg AppConfig
//	err := config.Load("my-app", &cfg)
//
// Environment variables override file values using dot-to-underscore mapping
// (e.g., DATABASE_DSN overrides database.dsn).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Validatable is implemented by config structs that apply defaults and
// validate themselves after loading.
type Validatable interface {
	ApplyDefaults()
	Validate() error
}

// FileSystem abstracts file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Options holds dependencies and optional file overrides.
type Options struct {
	FileSystem FileSystem
	ConfigFile string // explicit config file path (optional)
	EnvFile    string // explicit .env file path (optional)
}

// Option is a functional option for Load.
type Option func(*Options)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) Option {
	return func(o *Options) { o.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) Option {
	return func(o *Options) { o.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

// Load loads configuration for the named application into cfg. It searches
// for config.yml and .env files in standard locations, binds environment
// variables, unmarshals the result, then applies defaults and validates if
// cfg implements Validatable.
func Load(name string, cfg interface{}, opts ...Option) error {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.FileSystem == nil {
		o.FileSystem = &RealFileSystem{}
	}

	configFile := o.ConfigFile
	if configFile == "" {
		configFile = findConfigFile(name, o.FileSystem)
	}
	envFile := o.EnvFile
	if envFile == "" {
		envFile = findEnvFile(name, o.FileSystem)
	}

	v := viper.New()

	if configFile != "" && o.FileSystem.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	if envFile != "" && o.FileSystem.Exists(envFile) {
		if err := o.FileSystem.LoadEnv(envFile); err != nil {
			return fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshaling config for %s: %w", name, err)
	}

	if vc, ok := cfg.(Validatable); ok {
		vc.ApplyDefaults()
		if err := vc.Validate(); err != nil {
			return fmt.Errorf("validating config for %s: %w", name, err)
		}
	}
	return nil
}

// findConfigFile searches for config.yml in standard locations.
func findConfigFile(name string, fs FileSystem) string {
	searchPaths := []string{
		fmt.Sprintf("./config/%s.yml", name),
		"./config/config.yml",
		"./config.yml",
		"../config.yml",
	}
	for _, path := range searchPaths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// findEnvFile searches for .env files in standard locations.
func findEnvFile(name string, fs FileSystem) string {
	searchPaths := []string{
		fmt.Sprintf(".env.%s", name),
		".env",
		"../.env",
	}
	for _, path := range searchPaths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// bindEnvVars binds environment variables to Viper by converting
// UPPER_CASE_WITH_UNDERSCORES into nested key variants, so DATABASE_DSN
// satisfies the database.dsn config key.
func bindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		for _, variant := range envKeyVariants(pair[0]) {
			v.Set(variant, pair[1])
		}
	}
}

// envKeyVariants creates nested key variants for an environment variable.
// DATABASE_MAX_OPEN_CONNS -> [database_max_open_conns, database.max.open.conns,
// database.max_open_conns, database.max.open_conns, ...]
func envKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")
	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}
	return dedupe(variants)
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}
