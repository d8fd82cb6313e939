// Package config manages olivar settings from ~/.olivar/config.yaml and
// OLIVAR_* environment variables.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/klytics/olivar/internal/ai"
	"github.com/klytics/olivar/internal/store"
)

// Config holds the application configuration. The API key is never part
// of it.
type Config struct {
	File   string `mapstructure:"file" yaml:"file"`
	Model  string `mapstructure:"model" yaml:"model"`
	Output struct {
		Color bool `mapstructure:"color" yaml:"color"`
	} `mapstructure:"output" yaml:"output"`
	AI struct {
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		WarnChars      int    `mapstructure:"warn_chars" yaml:"warn_chars"`
		BaseURL        string `mapstructure:"base_url" yaml:"base_url,omitempty"`
	} `mapstructure:"ai" yaml:"ai"`
}

// Timeout returns the HTTP timeout for the model call; zero means none.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

var knownKeys = map[string]bool{
	"file":               true,
	"model":              true,
	"output.color":       true,
	"ai.timeout_seconds": true,
	"ai.warn_chars":      true,
	"ai.base_url":        true,
}

func setDefaults() {
	viper.SetDefault("file", store.DefaultFile)
	viper.SetDefault("model", ai.DefaultModel)
	viper.SetDefault("output.color", true)
	viper.SetDefault("ai.timeout_seconds", 0)
	viper.SetDefault("ai.warn_chars", 100000)
	viper.SetDefault("ai.base_url", "")
}

// Load reads the config file, if any, and applies env overrides.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir())

	setDefaults()

	viper.SetEnvPrefix("OLIVAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	return Current()
}

// Current decodes the settings viper holds now.
func Current() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the Config stored by NewContext, or nil.
func FromContext(ctx context.Context) *Config {
	if ctx == nil {
		return nil
	}
	cfg, _ := ctx.Value(ctxKey{}).(*Config)
	return cfg
}

// Set stores a config value and saves the file.
func Set(key, value string) error {
	if !knownKeys[key] {
		return fmt.Errorf("unknown config key %q — valid keys: %s", key, strings.Join(Keys(), ", "))
	}
	viper.Set(key, value)
	return SaveConfig()
}

// Get returns a config value as a string.
func Get(key string) string {
	return viper.GetString(key)
}

// Keys lists the settable keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SaveConfig writes the current settings to ConfigPath.
func SaveConfig() error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}

	path := ConfigPath()
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	return nil
}

// WriteDefault creates ConfigPath holding the defaults. An existing file is
// left alone unless force is set.
func WriteDefault(force bool) (string, error) {
	path := ConfigPath()
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%s already exists — use --force to overwrite", path)
	}

	var cfg Config
	cfg.File = store.DefaultFile
	cfg.Model = ai.DefaultModel
	cfg.Output.Color = true
	cfg.AI.WarnChars = 100000

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return path, fmt.Errorf("could not encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return path, fmt.Errorf("could not create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return path, fmt.Errorf("could not write config: %w", err)
	}
	return path, nil
}

// ConfigPath returns the path of the config file.
func ConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// ShowConfig returns a readable dump of the effective settings.
func ShowConfig() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Config: %s\n\n", ConfigPath()))
	sb.WriteString("Data\n")
	sb.WriteString(fmt.Sprintf("  file:            %s\n", viper.GetString("file")))
	sb.WriteString("\nAI\n")
	sb.WriteString(fmt.Sprintf("  model:           %s\n", viper.GetString("model")))
	if t := viper.GetInt("ai.timeout_seconds"); t > 0 {
		sb.WriteString(fmt.Sprintf("  timeout:         %ds\n", t))
	} else {
		sb.WriteString("  timeout:         none\n")
	}
	sb.WriteString(fmt.Sprintf("  warn_chars:      %d\n", viper.GetInt("ai.warn_chars")))
	if u := viper.GetString("ai.base_url"); u != "" {
		sb.WriteString(fmt.Sprintf("  base_url:        %s\n", u))
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		sb.WriteString("  key:             from OPENAI_API_KEY\n")
	} else {
		sb.WriteString("  key:             prompted per session\n")
	}
	sb.WriteString("\nOutput\n")
	sb.WriteString(fmt.Sprintf("  color:           %t\n", viper.GetBool("output.color")))

	return sb.String()
}

// Issue is one finding of Validate.
type Issue struct {
	Key      string `json:"key"`
	Severity string `json:"severity"` // "error", "warning", "info"
	Message  string `json:"message"`
}

// Validate checks the effective settings.
func Validate() []Issue {
	var issues []Issue

	file := viper.GetString("file")
	if file == "" {
		issues = append(issues, Issue{Key: "file", Severity: "error", Message: "no workbook path configured"})
	} else if _, err := os.Stat(file); err != nil {
		issues = append(issues, Issue{Key: "file", Severity: "info", Message: fmt.Sprintf("%s does not exist yet — it is created on the first save", file)})
	}

	if viper.GetString("model") == "" {
		issues = append(issues, Issue{Key: "model", Severity: "error", Message: "no model configured"})
	}
	if viper.GetInt("ai.timeout_seconds") < 0 {
		issues = append(issues, Issue{Key: "ai.timeout_seconds", Severity: "error", Message: "timeout cannot be negative"})
	}
	if os.Getenv("OPENAI_API_KEY") == "" {
		issues = append(issues, Issue{Key: "OPENAI_API_KEY", Severity: "warning", Message: "OPENAI_API_KEY is not set — the key will be asked for before each query"})
	}

	return issues
}

func configDir() string {
	if dir := os.Getenv("OLIVAR_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".olivar"
	}
	return filepath.Join(home, ".olivar")
}
