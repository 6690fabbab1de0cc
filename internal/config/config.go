package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for configuration loading and validation. Callers use
// errors.Is to distinguish a missing file (tolerable when the command line
// supplies everything) from a broken one.
var (
	ErrNotFound    = errors.New("configuration file not found")
	ErrMalformed   = errors.New("malformed configuration")
	ErrInvalid     = errors.New("invalid configuration")
	ErrBaseURLHost = errors.New("site url must include a host")
)

// Config represents the generator configuration
type Config struct {
	Source         string     `yaml:"source"`
	Destination    string     `yaml:"destination"`
	TemplateDir    string     `yaml:"template_dir"`
	EntriesPerPage int        `yaml:"entries_per_page"`
	TruncateLength int        `yaml:"truncate_length"`
	Concurrency    int        `yaml:"concurrency,omitempty"`
	Site           SiteConfig `yaml:"site"`
}

// SiteConfig represents site-wide metadata rendered into every page and the feed
type SiteConfig struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`
	ShareImage  string `yaml:"share_image,omitempty"`
}

// Default returns a configuration populated with the default values.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.TemplateDir == "" {
		c.TemplateDir = "templates"
	}
	if c.EntriesPerPage == 0 {
		c.EntriesPerPage = 20
	}
	if c.TruncateLength == 0 {
		c.TruncateLength = 300
	}
}

// Validate checks that the configuration is complete enough to run a build.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("%w: source directory is required", ErrInvalid)
	}
	if strings.TrimSpace(c.Destination) == "" {
		return fmt.Errorf("%w: destination directory is required", ErrInvalid)
	}
	if strings.TrimSpace(c.Site.URL) == "" {
		return fmt.Errorf("%w: site url is required", ErrInvalid)
	}
	if _, err := c.Domain(); err != nil {
		return err
	}
	if c.EntriesPerPage < 1 {
		return fmt.Errorf("%w: entries_per_page must be at least 1", ErrInvalid)
	}
	if c.TruncateLength < 1 {
		return fmt.Errorf("%w: truncate_length must be at least 1", ErrInvalid)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency cannot be negative", ErrInvalid)
	}
	return nil
}

// Domain returns the host portion of the site URL. The feed refuses to
// render without one, so validation surfaces the problem before any build.
func (c *Config) Domain() (string, error) {
	u, err := url.Parse(c.Site.URL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBaseURLHost, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q has no host", ErrBaseURLHost, c.Site.URL)
	}
	return u.Host, nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Source:         "posts",
		Destination:    "public",
		TemplateDir:    "templates",
		EntriesPerPage: 20,
		TruncateLength: 300,
		Site: SiteConfig{
			Title:       "My Blog",
			URL:         "https://blog.example.com",
			Description: "Notes and essays",
			Author:      "anonymous",
			ShareImage:  "https://blog.example.com/images/card.png",
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// loadEnvFiles loads environment variables from the first .env file found.
// Values already present in the environment win.
func loadEnvFiles() {
	envPaths := []string{".env", ".env.local"}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", envPath)
			return
		}
	}
}
