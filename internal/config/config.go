package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`

	// Bridge call settings
	Timeout     time.Duration `yaml:"timeout"`
	Temperature float64       `yaml:"temperature"`

	Retry     RetryConfig     `yaml:"retry"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CacheSize int             `yaml:"cache_size"`
}

type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider:    "gemini",
		Model:       "gemini-2.5-flash",
		Timeout:     60 * time.Second,
		Temperature: 0.7,
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   300 * time.Millisecond,
		},
		CacheSize: 64,
	}
}

// ConfigDir is ~/.config/curator unless CURATOR_HOME points elsewhere.
func ConfigDir() (string, error) {
	if dir := os.Getenv("CURATOR_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "curator"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the default config file. It returns nil, nil when no file
// has been written yet.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file, filling unset fields from DefaultConfig.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes c to the default config path.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes c to path, creating the directory if needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ApplyEnv overlays environment variables (and a .env file, if present)
// onto c. The credential is only taken from the environment when the
// config file does not already carry one for the same provider.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("CURATOR_PROVIDER"); v != "" {
		c.SetProvider(v)
	}
	if v := os.Getenv("CURATOR_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("CURATOR_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if c.APIKey == "" {
		c.APIKey = EnvAPIKey(c.Provider)
	}
}

// SetProvider switches to id with its default model. A credential held for
// the previous provider is dropped and looked up again for id.
func (c *Config) SetProvider(id string) {
	if id == c.Provider {
		return
	}
	c.Provider = id
	c.Model = ""
	if p := GetProvider(id); p != nil {
		c.Model = p.DefaultModel
	}
	c.APIKey = EnvAPIKey(id)
}

// EnvAPIKey reports the credential the environment holds for provider,
// falling back to API_KEY.
func EnvAPIKey(provider string) string {
	if k := EnvKeySource(provider); k != "" {
		return os.Getenv(k)
	}
	return ""
}

// EnvKeySource names the variable EnvAPIKey would read, or "" when none
// is set.
func EnvKeySource(provider string) string {
	var keys []string
	if p := GetProvider(provider); p != nil {
		keys = append(keys, p.EnvKeys...)
	}
	keys = append(keys, "API_KEY")
	for _, k := range keys {
		if os.Getenv(k) != "" {
			return k
		}
	}
	return ""
}

// Validate checks that the selected provider is known and has what it
// needs to authenticate.
func (c *Config) Validate() error {
	p := GetProvider(c.Provider)
	if p == nil {
		if c.Provider == "custom" {
			if c.BaseURL == "" {
				return fmt.Errorf("custom provider requires base_url")
			}
			return nil
		}
		return fmt.Errorf("unknown provider: %s", c.Provider)
	}
	if p.NeedsAPIKey && c.APIKey == "" {
		return fmt.Errorf("%s requires an API key (set %s or api_key in config)", p.Name, p.EnvKeys[0])
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be within [0,1], got %.2f", c.Temperature)
	}
	return nil
}
