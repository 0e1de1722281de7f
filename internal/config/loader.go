package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads and parses configuration from a file.
// ${ENV_VAR} references in the file are expanded from the environment
// before parsing, so secrets and tokens never need to live on disk.
func Load(configPath string) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %q: %w", configPath, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %s\n"+
			"Hint: Check the path or run with --config flag", absPath)
	}

	expanded := expandEnvVars(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", absPath, err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR} references with environment values.
// Unset variables expand to the empty string, matching docker-compose
// semantics.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}

func applyDefaults(cfg *Config) {
	def := Defaults()

	if cfg.Service.Name == "" {
		cfg.Service.Name = def.Service.Name
	}
	if cfg.Service.Listen == "" {
		cfg.Service.Listen = def.Service.Listen
	}
	if cfg.Service.LogLevel == "" {
		cfg.Service.LogLevel = def.Service.LogLevel
	}
	if cfg.Service.MaxBodySize <= 0 {
		cfg.Service.MaxBodySize = def.Service.MaxBodySize
	}

	if cfg.GitHub != nil {
		if cfg.GitHub.Path == "" {
			cfg.GitHub.Path = DefaultGitHubPath
		}
		if cfg.GitHub.SignatureHeader == "" {
			cfg.GitHub.SignatureHeader = DefaultSignatureHeader
		}
	}

	if cfg.Giphy != nil {
		if cfg.Giphy.Path == "" {
			cfg.Giphy.Path = DefaultGiphyPath
		}
		if cfg.Giphy.Rating == "" {
			cfg.Giphy.Rating = DefaultGiphyRating
		}
		if cfg.Giphy.APIKey == "" {
			cfg.Giphy.APIKey = DefaultGiphyAPIKey
		}
	}
}

func validate(cfg *Config) error {
	if cfg.Service.Listen == "" {
		return fmt.Errorf("service.listen is required")
	}

	if cfg.GitHub == nil && cfg.Giphy == nil {
		return fmt.Errorf("no integrations configured; define github and/or giphy")
	}

	if cfg.GitHub != nil {
		if !strings.HasPrefix(cfg.GitHub.Path, "/") {
			return fmt.Errorf("github.path %q must start with /", cfg.GitHub.Path)
		}
		if cfg.GitHub.WebhookURL == "" {
			return fmt.Errorf("github.webhook_url is required; the integration doesn't know where to send data otherwise")
		}
		if cfg.GitHub.Secret == "" {
			// Weak mode is allowed but loud: anyone who can reach the
			// endpoint can post to the Mattermost webhook.
			fmt.Fprintln(os.Stderr, "warning: github.secret is empty, signature verification disabled")
		}
	}

	if cfg.Giphy != nil {
		if !strings.HasPrefix(cfg.Giphy.Path, "/") {
			return fmt.Errorf("giphy.path %q must start with /", cfg.Giphy.Path)
		}
	}

	if cfg.GitHub != nil && cfg.Giphy != nil && cfg.GitHub.Path == cfg.Giphy.Path {
		return fmt.Errorf("github.path and giphy.path collide on %q", cfg.GitHub.Path)
	}

	return nil
}
