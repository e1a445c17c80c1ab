package config

// DefaultModels maps provider name to the model used when none is configured.
var DefaultModels = map[string]string{
	"ollama":    "mistral",
	"openai":    "gpt-3.5-turbo",
	"anthropic": "claude-3-sonnet-20240229",
	"gemini":    "gemini-1.5-flash",
}

// DefaultBaseURLs maps provider name to its default API endpoint.
var DefaultBaseURLs = map[string]string{
	"ollama":    "http://localhost:11434",
	"openai":    "https://api.openai.com/v1",
	"anthropic": "https://api.anthropic.com",
	"gemini":    "https://generativelanguage.googleapis.com/v1beta",
}

// APIKeyEnvVars maps provider name to the environment variable consulted
// when no API key is configured. Ollama runs locally and needs none.
var APIKeyEnvVars = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"gemini":    "GEMINI_API_KEY",
}

// KnownModels lists common models per provider for the interactive menu.
var KnownModels = map[string][]string{
	"ollama":    {"mistral", "llama2", "neural-chat"},
	"openai":    {"gpt-3.5-turbo", "gpt-4"},
	"anthropic": {"claude-3-sonnet-20240229", "claude-3-opus-20240229"},
	"gemini":    {"gemini-1.5-flash", "gemini-1.5-pro"},
}
