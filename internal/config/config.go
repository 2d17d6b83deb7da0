package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/drpaneas/weekdigest/internal/llm"
)

var validRepo = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*/[a-zA-Z0-9._-]+$`)

const dateLayout = "2006-01-02"

// Config holds all runtime configuration for a digest run. It is built once
// at startup and passed explicitly; nothing reads the environment after it.
type Config struct {
	// Repo is the "owner/name" repository whose activity is scraped.
	Repo string
	// TargetRepo is the "owner/name" repository the discussion is posted
	// to. Defaults to Repo; GITHUB_REPOSITORY sets both.
	TargetRepo  string
	GitHubToken string
	Provider    llm.ProviderName
	Model       string
	OllamaHost  string
	APIKey      string
	// Date optionally simulates "now" (YYYY-MM-DD) for reproducible runs.
	Date       string
	DryRun     bool
	PolicyPath string
	Verbose    bool
	Policy     Policy
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return fmt.Errorf("GITHUB_TOKEN environment variable is required")
	}
	if c.Repo == "" {
		return fmt.Errorf("a repository is required (set GITHUB_REPOSITORY or pass -repo)")
	}
	if !validRepo.MatchString(c.Repo) {
		return fmt.Errorf("invalid repository %q: want owner/name", c.Repo)
	}
	if c.TargetRepo != "" && !validRepo.MatchString(c.TargetRepo) {
		return fmt.Errorf("invalid target repository %q: want owner/name", c.TargetRepo)
	}
	switch c.Provider {
	case llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderOllama, llm.ProviderNone:
	default:
		return fmt.Errorf("unsupported LLM provider %q: must be openai, anthropic, ollama, or none", c.Provider)
	}
	if c.APIKey == "" && (c.Provider == llm.ProviderOpenAI || c.Provider == llm.ProviderAnthropic) {
		return fmt.Errorf("%s requires an API key (set %s)", c.Provider, envKeyForProvider(c.Provider))
	}
	if c.Date != "" {
		if _, err := time.Parse(dateLayout, c.Date); err != nil {
			return fmt.Errorf("invalid -date %q: want YYYY-MM-DD", c.Date)
		}
	}
	return nil
}

// LoadFromEnv populates environment-dependent fields (token, keys, hosts,
// the repository the job runs in).
func (c *Config) LoadFromEnv() {
	c.GitHubToken = os.Getenv("GITHUB_TOKEN")
	if repo := os.Getenv("GITHUB_REPOSITORY"); repo != "" {
		c.TargetRepo = repo
		if c.Repo == "" {
			c.Repo = repo
		}
	}
	c.OllamaHost = os.Getenv("OLLAMA_HOST")
	if c.OllamaHost == "" {
		c.OllamaHost = "http://localhost:11434"
	}
	switch c.Provider {
	case llm.ProviderOpenAI:
		c.APIKey = os.Getenv("OPENAI_API_KEY")
	case llm.ProviderAnthropic:
		c.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
}

// ReferenceTime returns the instant the window is computed from: the -date
// override when given, the wall clock otherwise.
func (c *Config) ReferenceTime() time.Time {
	if c.Date == "" {
		return time.Now()
	}
	// Validate already guaranteed the format.
	t, _ := time.Parse(dateLayout, c.Date)
	return t
}

// AIEnabled reports whether a generative provider is configured for the run.
func (c *Config) AIEnabled() bool {
	if c.Provider == llm.ProviderNone || c.Provider == "" {
		return false
	}
	if c.APIKey == "" && c.Provider != llm.ProviderOllama {
		return false
	}
	return true
}

// DefaultModel returns the default model name for the given provider.
func DefaultModel(provider llm.ProviderName) string {
	switch provider {
	case llm.ProviderOpenAI:
		return "gpt-4o"
	case llm.ProviderAnthropic:
		return "claude-sonnet-4-5"
	case llm.ProviderOllama:
		return "llama3"
	default:
		return ""
	}
}

func envKeyForProvider(provider llm.ProviderName) string {
	switch provider {
	case llm.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case llm.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}
