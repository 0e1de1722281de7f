package config

// Config represents the complete babelfish configuration.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	GitHub  *GitHubConfig `yaml:"github,omitempty"`
	Giphy   *GiphyConfig  `yaml:"giphy,omitempty"`
}

// ServiceConfig defines core service settings.
type ServiceConfig struct {
	Name        string `yaml:"name"`
	Listen      string `yaml:"listen"`
	LogLevel    string `yaml:"log_level"`
	MaxBodySize int64  `yaml:"max_body_size,omitempty"`
}

// GitHubConfig defines the GitHub webhook integration.
type GitHubConfig struct {
	// Path is the URL path the webhook endpoint is mounted on.
	Path string `yaml:"path"`

	// Secret is the shared HMAC secret. Empty disables signature
	// verification (weak mode, every request is accepted).
	Secret string `yaml:"secret,omitempty"`

	// WebhookURL is the Mattermost incoming webhook to forward to.
	WebhookURL string `yaml:"webhook_url"`

	// SignatureHeader is the header carrying the HMAC signature.
	SignatureHeader string `yaml:"signature_header,omitempty"`
}

// GiphyConfig defines the Giphy slash command integration.
type GiphyConfig struct {
	// Path is the URL path the slash command endpoint is mounted on.
	Path string `yaml:"path"`

	// Token is the expected Mattermost slash command token. Empty
	// disables token verification.
	Token string `yaml:"token,omitempty"`

	APIKey string `yaml:"api_key"`
	Rating string `yaml:"rating,omitempty"`
}

// Default values applied by Load when the config omits them.
const (
	DefaultListen          = "127.0.0.1:8080"
	DefaultLogLevel        = "INFO"
	DefaultMaxBodySize     = 1048576 // 1 MB
	DefaultGitHubPath      = "/github"
	DefaultGiphyPath       = "/giphy"
	DefaultSignatureHeader = "X-Hub-Signature"
	DefaultGiphyRating     = "pg"

	// Giphy's published beta key, same default the service always shipped with.
	DefaultGiphyAPIKey = "dc6zaTOxFJmzC"
)

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:        "babelfish",
			Listen:      DefaultListen,
			LogLevel:    DefaultLogLevel,
			MaxBodySize: DefaultMaxBodySize,
		},
	}
}
