package config

import "os"

// Config holds runtime configuration. Mode flags are computed once from
// credential presence at load time; stages never read the environment.
type Config struct {
	OpenAIAPIKey string
	SerperAPIKey string
	Model        string
	Port         string
}

func Load() *Config {
	return &Config{
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		SerperAPIKey: getEnv("SERPER_API_KEY", ""),
		Model:        getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		Port:         getEnv("PORT", "5015"),
	}
}

// AIEnabled reports whether AI planning, extraction, and synthesis are
// backed by a live provider.
func (c *Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// SearchEnabled reports whether web search is backed by a live provider.
// Search falls back independently of the AI provider.
func (c *Config) SearchEnabled() bool {
	return c.SerperAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
