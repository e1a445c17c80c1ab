// Package llm provides the language model clients used to draft
// documentation prose.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/GAKiknadze/swagger-to-docs/config"
)

// Message is one turn of the conversation sent to a model.
type Message struct {
	Role    string // "system" or "user"
	Content string
}

// Model is the interface every provider client implements. Generate blocks
// until the provider returns a completion or fails.
type Model interface {
	Name() string
	Generate(ctx context.Context, messages []Message) (string, error)
}

// Provider identifies a model backend.
type Provider string

const (
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// ParseProvider validates a provider name from config.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(s)) {
	case ProviderOllama:
		return ProviderOllama, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderAnthropic:
		return ProviderAnthropic, nil
	case ProviderGemini:
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q", s)
	}
}

// New builds a model client for the configured provider.
func New(cfg config.LLMConfig) (Model, error) {
	provider, err := ParseProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	switch provider {
	case ProviderOllama:
		return NewOllama(cfg), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case ProviderAnthropic:
		return NewAnthropic(cfg), nil
	case ProviderGemini:
		return NewGemini(cfg), nil
	}
	// Unreachable: ParseProvider covers every constant.
	return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
}

// Generation can take a while for long endpoint docs; more generous timeout
// than the spec fetcher.
var genClient = &http.Client{Timeout: 2 * time.Minute}

// splitMessages joins system turns and the rest into two strings, for
// providers that take a separate system instruction.
func splitMessages(messages []Message) (system, prompt string) {
	var sys, rest []string
	for _, m := range messages {
		if m.Role == "system" {
			sys = append(sys, m.Content)
		} else {
			rest = append(rest, m.Content)
		}
	}
	return strings.Join(sys, "\n\n"), strings.Join(rest, "\n\n")
}
