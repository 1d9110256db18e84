// Package config loads runtime settings from an optional YAML file and
// AUTOMATION_* environment variables.
package config

import (
	"errors"
	"path/filepath"
	"strings"

	"automation/internal/observability"
	apperrors "automation/internal/shared/errors"
	"automation/internal/shared/utils/id"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix       = "AUTOMATION"
	defaultFileName = "automation"
)

// Config is the effective runtime configuration.
type Config struct {
	BasePath   string        `yaml:"base_path" mapstructure:"base_path"`
	IDStrategy string        `yaml:"id_strategy" mapstructure:"id_strategy"` // ksuid, uuidv7
	Sandbox    SandboxConfig `yaml:"sandbox" mapstructure:"sandbox"`

	observability.Config `yaml:",inline" mapstructure:",squash"`
}

// SandboxConfig controls how strictly file paths are confined.
type SandboxConfig struct {
	Strict bool `yaml:"strict" mapstructure:"strict"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		BasePath:   ".",
		IDStrategy: "ksuid",
		Config:     observability.DefaultConfig(),
	}
}

type loadOptions struct {
	configFile string
	searchDirs []string
	overrides  map[string]any
}

// Option customises Load.
type Option func(*loadOptions)

// WithConfigFile reads settings from path. The file must exist.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) { o.configFile = strings.TrimSpace(path) }
}

// WithSearchDirs sets the directories searched for automation.yaml when no
// explicit file is given.
func WithSearchDirs(dirs ...string) Option {
	return func(o *loadOptions) { o.searchDirs = dirs }
}

// WithOverride sets a dotted key such as "logging.level" above every other source.
func WithOverride(key string, value any) Option {
	return func(o *loadOptions) {
		if o.overrides == nil {
			o.overrides = map[string]any{}
		}
		o.overrides[key] = value
	}
}

// Load resolves configuration with precedence overrides > env > file > defaults.
func Load(opts ...Option) (Config, error) {
	options := loadOptions{searchDirs: []string{"."}}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readFile(v, options); err != nil {
		return Config{}, err
	}
	for key, value := range options.overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, apperrors.InvalidConfig("decode config: %v", err)
	}
	if err := normalize(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(v *viper.Viper, options loadOptions) error {
	if options.configFile != "" {
		v.SetConfigFile(options.configFile)
		if err := v.ReadInConfig(); err != nil {
			return apperrors.InvalidConfig("read config %s: %v", options.configFile, err)
		}
		return nil
	}

	v.SetConfigName(defaultFileName)
	v.SetConfigType("yaml")
	for _, dir := range options.searchDirs {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return apperrors.InvalidConfig("read config: %v", err)
	}
	return nil
}

// Every key needs a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("base_path", cfg.BasePath)
	v.SetDefault("id_strategy", cfg.IDStrategy)
	v.SetDefault("sandbox.strict", cfg.Sandbox.Strict)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("tracing.enabled", cfg.Tracing.Enabled)
	v.SetDefault("tracing.exporter", cfg.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", cfg.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.zipkin_endpoint", cfg.Tracing.ZipkinEndpoint)
	v.SetDefault("tracing.sample_rate", cfg.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", cfg.Tracing.ServiceName)
	v.SetDefault("tracing.service_version", cfg.Tracing.ServiceVersion)
}

func normalize(cfg *Config) error {
	cfg.BasePath = strings.TrimSpace(cfg.BasePath)
	if cfg.BasePath == "" {
		return apperrors.InvalidConfig("base_path must not be empty")
	}
	abs, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return apperrors.InvalidConfig("resolve base_path: %v", err)
	}
	cfg.BasePath = abs

	cfg.IDStrategy = strings.ToLower(strings.TrimSpace(cfg.IDStrategy))
	if _, err := id.ParseStrategy(cfg.IDStrategy); err != nil {
		return apperrors.InvalidConfig("%v", err)
	}

	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return apperrors.InvalidConfig("unsupported logging.level %q", cfg.Logging.Level)
	}

	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return apperrors.InvalidConfig("unsupported logging.format %q", cfg.Logging.Format)
	}

	cfg.Tracing.Exporter = strings.ToLower(strings.TrimSpace(cfg.Tracing.Exporter))
	if cfg.Tracing.SampleRate < 0 || cfg.Tracing.SampleRate > 1 {
		return apperrors.InvalidConfig("tracing.sample_rate must be within [0, 1], got %v", cfg.Tracing.SampleRate)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, apperrors.Serialization(err)
	}
	return out, nil
}
