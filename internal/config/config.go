// Package config loads netdiagram settings.
//
// Values are resolved in this order, later sources winning:
//  1. Built-in defaults
//  2. The config file (see SearchPaths)
//  3. NETDIAGRAM_ environment variables, with underscores for nesting,
//     e.g. NETDIAGRAM_SERVER_PORT=9090 or NETDIAGRAM_STORAGE_DRIVER=bolt
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "NETDIAGRAM"

// Config is the root configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Canvas  CanvasConfig  `mapstructure:"canvas" yaml:"canvas"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" validate:"gte=0"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" yaml:"request_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"gt=0"`
}

// Addr returns host:port for net.Listen
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig selects the log level and output encoding
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=json console"`
}

// StorageConfig selects the snapshot backend. Driver none keeps snapshots
// disabled.
type StorageConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver" validate:"oneof=sqlite bolt none"`
	Path   string `mapstructure:"path" yaml:"path" validate:"required_unless=Driver none"`
}

// CanvasConfig holds diagram layout settings
type CanvasConfig struct {
	SnapToGrid        bool    `mapstructure:"snap_to_grid" yaml:"snap_to_grid"`
	DeviceWidth       float64 `mapstructure:"device_width" yaml:"device_width" validate:"gt=0"`
	DeviceHeight      float64 `mapstructure:"device_height" yaml:"device_height" validate:"gt=0"`
	ImportGridColumns int     `mapstructure:"import_grid_columns" yaml:"import_grid_columns" validate:"min=1"`
	ImportStartX      float64 `mapstructure:"import_start_x" yaml:"import_start_x"`
	ImportStartY      float64 `mapstructure:"import_start_y" yaml:"import_start_y"`
}

// Load reads configuration from cfgFile, or from the first file found by
// FindConfigPath when cfgFile is empty, then applies environment overrides.
// It returns the file actually used, which is empty when running on defaults.
func Load(cfgFile string) (*Config, string, error) {
	v := viper.New()
	setDefaults(v)

	path := cfgFile
	if path == "" {
		path = FindConfigPath()
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if cfgFile == "" || !isFileNotFoundError(err) {
				return nil, path, fmt.Errorf("read config: %w", err)
			}
			// An explicit but missing file runs on defaults
			path = ""
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, path, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return cfg, path, nil
}

// Default returns the configuration used when no file or overrides exist
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	cfg := &Config{}
	// Defaults always decode
	_ = v.Unmarshal(cfg)
	return cfg
}

// WriteDefault writes the default configuration as YAML to path. It refuses
// to overwrite an existing file.
func WriteDefault(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	if err := v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks every field constraint
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "./netdiagram.db")

	v.SetDefault("canvas.snap_to_grid", true)
	v.SetDefault("canvas.device_width", 120)
	v.SetDefault("canvas.device_height", 80)
	v.SetDefault("canvas.import_grid_columns", 5)
	v.SetDefault("canvas.import_start_x", 4000)
	v.SetDefault("canvas.import_start_y", 4000)
}

// isFileNotFoundError checks if an error is a file not found error
func isFileNotFoundError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr, os.ErrNotExist)
	}
	return false
}
