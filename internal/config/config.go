package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"dbtr/internal/domain"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Settings source
	SettingsPath string

	// Database settings
	ConnectionString string
	Dialect          string
	Schema           string

	// Logging settings
	LogLevel string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ConfigPath string
	NameFilter string
	FailFast   bool
	NoSave     bool
	LogLevel   string
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		SettingsPath:   DefaultSettingsFile,
		Dialect:        DefaultDialect,
		Schema:         DefaultSchema,
		LogLevel:       DefaultLogLevel,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
	}
}

// Load creates a config with defaults and reads the settings file at path
func Load(path string) (*Config, error) {
	cfg := New()
	if err := cfg.LoadSettings(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadSettings reads the settings file at path (DefaultSettingsFile when empty).
// A .env file next to the settings file is loaded into the environment first,
// and environment variables such as ConnectionStrings__Database override file values.
func (c *Config) LoadSettings(path string) error {
	if path == "" {
		path = DefaultSettingsFile
	}
	c.SettingsPath = path

	// .env is optional, existing environment variables win
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &domain.ConfigurationError{Path: envPath, Reason: "malformed .env file", Cause: err}
	}

	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}

	for _, key := range []string{KeyConnectionString, KeyDialect, KeySchema, KeyLogLevel} {
		if err := v.BindEnv(viperKey(key), envName(key), strings.ToUpper(envName(key))); err != nil {
			return &domain.ConfigurationError{Path: path, Key: key, Cause: err}
		}
	}
	v.SetDefault(viperKey(KeyDialect), c.Dialect)
	v.SetDefault(viperKey(KeySchema), c.Schema)
	v.SetDefault(viperKey(KeyLogLevel), c.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		reason := "settings file is malformed"
		if errors.Is(err, fs.ErrNotExist) {
			reason = "settings file is missing"
		}
		return &domain.ConfigurationError{Path: path, Reason: reason, Cause: err}
	}

	c.ConnectionString = strings.TrimSpace(v.GetString(viperKey(KeyConnectionString)))
	if c.ConnectionString == "" {
		return &domain.ConfigurationError{Path: path, Key: KeyConnectionString, Reason: "setting is missing"}
	}

	c.Dialect = strings.ToLower(v.GetString(viperKey(KeyDialect)))
	if !slices.Contains(SupportedDialects, c.Dialect) {
		return &domain.ConfigurationError{
			Path:   path,
			Key:    KeyDialect,
			Reason: fmt.Sprintf("unsupported dialect %q (expected one of %s)", c.Dialect, strings.Join(SupportedDialects, ", ")),
		}
	}

	c.Schema = v.GetString(viperKey(KeySchema))
	if c.Schema == "" {
		c.Schema = DefaultSchema
	}
	c.LogLevel = v.GetString(viperKey(KeyLogLevel))

	return nil
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run, list and faills always use the same file.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetLogLevel returns the hclog level, preferring the --log-level flag over settings
func (c *Config) GetLogLevel() hclog.Level {
	level := c.LogLevel
	if c.Flags.LogLevel != "" {
		level = c.Flags.LogLevel
	}

	// Settings files name levels the way Microsoft.Extensions.Logging does
	switch strings.ToLower(level) {
	case "information":
		return hclog.Info
	case "warning":
		return hclog.Warn
	case "critical":
		return hclog.Error
	case "none":
		return hclog.Off
	}

	if l := hclog.LevelFromString(level); l != hclog.NoLevel {
		return l
	}
	return hclog.Info
}

// viperKey converts a "A:B" settings key to viper's dotted form
func viperKey(key string) string {
	return strings.ReplaceAll(key, ":", ".")
}

// envName converts a "A:B" settings key to the A__B environment variable form
func envName(key string) string {
	return strings.ReplaceAll(key, ":", "__")
}
