package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProfilesConfig represents provider profiles loaded from a YAML file.
// A profile bundles a backend selection with its model and rate budget so
// deployments can switch providers without editing individual variables.
type ProfilesConfig struct {
	Profiles map[string]ProviderProfile `yaml:"profiles"`
}

// ProviderProfile is one named provider configuration.
type ProviderProfile struct {
	Backend           string  `yaml:"backend"`
	Model             string  `yaml:"model"`
	BaseURL           string  `yaml:"base_url"`
	Temperature       float32 `yaml:"temperature"`
	RequestsPerMinute int     `yaml:"requests_per_minute"`
}

// LoadProfilesConfig loads provider profiles from a YAML file.
// The path parameter is expected to come from a trusted source
// (command-line argument or hardcoded default).
func LoadProfilesConfig(path string) (*ProfilesConfig, error) {
	// #nosec G304 -- path is provided by trusted source (CLI arg or config), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config ProfilesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateProfilesConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// validateProfilesConfig validates the loaded configuration.
func validateProfilesConfig(config *ProfilesConfig) error {
	if len(config.Profiles) == 0 {
		return fmt.Errorf("at least one profile is required")
	}

	for name, p := range config.Profiles {
		switch p.Backend {
		case "openai", "gemini", "claude", "compatible", "noop":
		default:
			return fmt.Errorf("profile %q: unknown backend %q", name, p.Backend)
		}
		if p.Backend != "noop" && p.Model == "" {
			return fmt.Errorf("profile %q: model is required", name)
		}
		if p.Backend == "compatible" && p.BaseURL == "" {
			return fmt.Errorf("profile %q: base_url is required for compatible backends", name)
		}
		if p.Temperature < 0 || p.Temperature > 2 {
			return fmt.Errorf("profile %q: temperature must be between 0 and 2", name)
		}
		if p.RequestsPerMinute < 0 {
			return fmt.Errorf("profile %q: requests_per_minute cannot be negative", name)
		}
	}

	return nil
}

// Apply overlays a named profile onto the summarizer configuration.
// Profile fields left at their zero value keep the existing setting.
func (c *ProfilesConfig) Apply(name string, cfg *SummarizerConfig) error {
	p, ok := c.Profiles[name]
	if !ok {
		return fmt.Errorf("profile %q not found", name)
	}

	cfg.Provider = p.Backend
	if p.Model != "" {
		cfg.Model = p.Model
	}
	if p.BaseURL != "" {
		cfg.BaseURL = p.BaseURL
	}
	if p.Temperature != 0 {
		cfg.Temperature = p.Temperature
	}
	if p.RequestsPerMinute != 0 {
		cfg.RequestsPerMinute = p.RequestsPerMinute
	}
	cfg.APIKey = os.Getenv(apiKeyEnvVars[p.Backend])

	// Switching backends changes which key variable is consulted, so the
	// overlaid configuration has to be re-validated.
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("profile %q: %w", name, err)
	}

	return nil
}
