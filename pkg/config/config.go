package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	StorePath       string `mapstructure:"store_path" yaml:"store_path,omitempty"`
	StateDir        string `mapstructure:"state_dir" yaml:"state_dir,omitempty"`
	Agent           string `mapstructure:"agent" yaml:"agent,omitempty"`
	Author          string `mapstructure:"author" yaml:"author,omitempty"`
	MaxIterations   int    `mapstructure:"max_iterations" yaml:"max_iterations,omitempty"`
	WriterPersona   string `mapstructure:"writer_persona" yaml:"writer_persona,omitempty"`
	ReviewerPersona string `mapstructure:"reviewer_persona" yaml:"reviewer_persona,omitempty"`
}

var (
	configFile = ".bwx-config.yaml"
	v          *viper.Viper
)

func init() {
	v = viper.New()
	v.SetConfigFile(configFile)

	// Defaults
	v.SetDefault("store_path", "blog_posts")
	v.SetDefault("state_dir", ".bwx")
	v.SetDefault("agent", "claude-sonnet-4-5")
	v.SetDefault("author", "BlogBot")
	v.SetDefault("max_iterations", 5)

	// Environment variables
	v.SetEnvPrefix("BWX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to read config file (ignore if not exists)
	_ = v.ReadInConfig()
}

func Path() string {
	return configFile
}

func Load() (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func Get(key string) (string, error) {
	switch key {
	case "store_path", "state_dir", "agent", "author", "writer_persona", "reviewer_persona":
		return v.GetString(key), nil
	case "max_iterations":
		return fmt.Sprintf("%d", v.GetInt(key)), nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

func Set(key, value string) error {
	cfg, err := Load()
	if err != nil {
		cfg = &Config{}
	}

	switch key {
	case "store_path":
		cfg.StorePath = value
	case "state_dir":
		cfg.StateDir = value
	case "agent":
		cfg.Agent = value
	case "author":
		cfg.Author = value
	case "max_iterations":
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil || n < 0 {
			return fmt.Errorf("max_iterations must be a non-negative integer, got %q", value)
		}
		cfg.MaxIterations = n
	case "writer_persona":
		cfg.WriterPersona = value
	case "reviewer_persona":
		cfg.ReviewerPersona = value
	default:
		return fmt.Errorf("unknown config key: %s (valid: store_path, state_dir, agent, author, max_iterations, writer_persona, reviewer_persona)", key)
	}

	v.Set(key, value) // keep viper in sync
	return writeConfig(cfg)
}

func writeConfig(cfg *Config) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return os.WriteFile(configFile, buf.Bytes(), 0644)
}

func All() (map[string]string, error) {
	return map[string]string{
		"store_path":       v.GetString("store_path"),
		"state_dir":        v.GetString("state_dir"),
		"agent":            v.GetString("agent"),
		"author":           v.GetString("author"),
		"max_iterations":   fmt.Sprintf("%d", v.GetInt("max_iterations")),
		"writer_persona":   v.GetString("writer_persona"),
		"reviewer_persona": v.GetString("reviewer_persona"),
	}, nil
}

// Save saves the full config
func Save(c *Config) error {
	return writeConfig(c)
}

// ResetForTest resets viper for testing (only use in tests)
func ResetForTest(testPath string) {
	configFile = testPath + "/.bwx-config.yaml"
	v = viper.New()
	v.SetConfigFile(configFile)
	v.SetDefault("store_path", "blog_posts")
	v.SetDefault("state_dir", ".bwx")
	v.SetDefault("agent", "claude-sonnet-4-5")
	v.SetDefault("author", "BlogBot")
	v.SetDefault("max_iterations", 5)
	_ = v.ReadInConfig()
}
