package cfg

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"clean-energy-predictor/internal/common"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
)

type Settings struct {
	ListenAddr   string
	ScalerPath   string
	ModelPath    string
	DataPath     string // empty disables prediction history
	HistoryLimit int
	LogLevel     string
	LogFormat    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	EnableFeed   bool
}

type ConfigFile struct {
	Server struct {
		ListenAddr   string `yaml:"listenAddr"`
		ReadTimeout  string `yaml:"readTimeout"`
		WriteTimeout string `yaml:"writeTimeout"`
		EnableFeed   *bool  `yaml:"enableFeed"`
	} `yaml:"server"`

	Artifacts struct {
		ScalerPath string `yaml:"scalerPath"`
		ModelPath  string `yaml:"modelPath"`
	} `yaml:"artifacts"`

	Storage struct {
		DataPath     string `yaml:"dataPath"`
		HistoryLimit int    `yaml:"historyLimit"`
	} `yaml:"storage"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		ListenAddr:   common.DefaultListenAddr,
		ScalerPath:   common.DefaultScalerPath,
		ModelPath:    common.DefaultModelPath,
		HistoryLimit: common.DefaultHistoryLimit,
		LogLevel:     common.DefaultLogLevel,
		LogFormat:    common.DefaultLogFormat,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		EnableFeed:   common.DefaultEnableFeed,
	}
}

func Load() (Settings, error) {
	// Try to load from YAML file first
	if configPath := os.Getenv(common.EnvConfigFile); configPath != "" {
		return loadFromYAML(configPath)
	}

	// Fallback to environment variables
	return loadFromEnv()
}

func loadFromYAML(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	d := Defaults()

	// Parse durations
	readTimeout, err := time.ParseDuration(config.Server.ReadTimeout)
	if err != nil {
		readTimeout = d.ReadTimeout
	}
	writeTimeout, err := time.ParseDuration(config.Server.WriteTimeout)
	if err != nil {
		writeTimeout = d.WriteTimeout
	}

	enableFeed := d.EnableFeed
	if config.Server.EnableFeed != nil {
		enableFeed = *config.Server.EnableFeed
	}

	// Override with environment variables if they exist
	settings := Settings{
		ListenAddr:   getEnvOrDefault(common.EnvListenAddr, orDefault(config.Server.ListenAddr, d.ListenAddr)),
		ScalerPath:   getEnvOrDefault(common.EnvScalerPath, orDefault(config.Artifacts.ScalerPath, d.ScalerPath)),
		ModelPath:    getEnvOrDefault(common.EnvModelPath, orDefault(config.Artifacts.ModelPath, d.ModelPath)),
		DataPath:     getEnvOrDefault(common.EnvDataPath, config.Storage.DataPath),
		HistoryLimit: getIntFromEnvOrConfig(common.EnvHistoryLimit, config.Storage.HistoryLimit, d.HistoryLimit),
		LogLevel:     getEnvOrDefault(common.EnvLogLevel, orDefault(config.Logging.Level, d.LogLevel)),
		LogFormat:    getEnvOrDefault(common.EnvLogFormat, orDefault(config.Logging.Format, d.LogFormat)),
		ReadTimeout:  getDurationOrDefault(common.EnvReadTimeout, readTimeout),
		WriteTimeout: getDurationOrDefault(common.EnvWriteTimeout, writeTimeout),
		EnableFeed:   getBoolOrDefault(common.EnvEnableFeed, enableFeed),
	}

	// Validate configuration
	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func loadFromEnv() (Settings, error) {
	d := Defaults()

	settings := Settings{
		ListenAddr:   getEnvOrDefault(common.EnvListenAddr, d.ListenAddr),
		ScalerPath:   getEnvOrDefault(common.EnvScalerPath, d.ScalerPath),
		ModelPath:    getEnvOrDefault(common.EnvModelPath, d.ModelPath),
		DataPath:     os.Getenv(common.EnvDataPath), // optional
		HistoryLimit: getIntOrDefault(common.EnvHistoryLimit, d.HistoryLimit),
		LogLevel:     getEnvOrDefault(common.EnvLogLevel, d.LogLevel),
		LogFormat:    getEnvOrDefault(common.EnvLogFormat, d.LogFormat),
		ReadTimeout:  getDurationOrDefault(common.EnvReadTimeout, d.ReadTimeout),
		WriteTimeout: getDurationOrDefault(common.EnvWriteTimeout, d.WriteTimeout),
		EnableFeed:   getBoolOrDefault(common.EnvEnableFeed, d.EnableFeed),
	}

	// Validate configuration
	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

// HistoryEnabled reports whether predictions should be recorded.
func (s *Settings) HistoryEnabled() bool {
	return s.DataPath != ""
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntFromEnvOrConfig(key string, configValue, defaultValue int) int {
	if env := os.Getenv(key); env != "" {
		if val, err := strconv.Atoi(env); err == nil {
			return val
		}
	}
	if configValue != 0 {
		return configValue
	}
	return defaultValue
}

// validateSettings performs comprehensive validation of configuration values
func validateSettings(settings *Settings) error {
	// Validate addresses and paths
	if settings.ListenAddr == "" {
		return fmt.Errorf(common.ErrMsgListenAddrRequired)
	}
	if settings.ScalerPath == "" {
		return fmt.Errorf(common.ErrMsgScalerPathRequired)
	}
	if settings.ModelPath == "" {
		return fmt.Errorf(common.ErrMsgModelPathRequired)
	}

	// Validate time durations
	if settings.ReadTimeout < time.Second || settings.ReadTimeout > time.Minute {
		return fmt.Errorf("read timeout must be between 1s and 1m, got %v", settings.ReadTimeout)
	}
	if settings.WriteTimeout < time.Second || settings.WriteTimeout > time.Minute {
		return fmt.Errorf("write timeout must be between 1s and 1m, got %v", settings.WriteTimeout)
	}

	// Validate integer values
	if settings.HistoryLimit < common.MinHistoryLimit || settings.HistoryLimit > common.MaxHistoryLimit {
		return fmt.Errorf("history limit must be between %d and %d, got %d",
			common.MinHistoryLimit, common.MaxHistoryLimit, settings.HistoryLimit)
	}

	// Validate logging
	if _, err := zerolog.ParseLevel(settings.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", settings.LogLevel, err)
	}
	if settings.LogFormat != common.LogFormatConsole && settings.LogFormat != common.LogFormatJSON {
		return fmt.Errorf("log format must be %q or %q, got %q",
			common.LogFormatConsole, common.LogFormatJSON, settings.LogFormat)
	}

	return nil
}
