package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/GAKiknadze/swagger-to-docs/config"
)

const anthropicVersion = "2023-06-01"

// Anthropic calls the messages API.
type Anthropic struct {
	model       string
	apiKey      string
	baseURL     string
	temperature float64
	maxTokens   int
	client      *http.Client
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature,omitempty"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewAnthropic(cfg config.LLMConfig) *Anthropic {
	return &Anthropic{
		model:       cfg.Model,
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client:      genClient,
	}
}

func (a *Anthropic) Name() string {
	return "anthropic/" + a.model
}

func (a *Anthropic) Generate(ctx context.Context, messages []Message) (string, error) {
	system, prompt := splitMessages(messages)

	body, err := json.Marshal(anthropicRequest{
		Model:       a.model,
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
		System:      system,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding anthropic request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating anthropic request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling anthropic: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading anthropic response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic: HTTP %d: %s", resp.StatusCode, data)
	}

	var out anthropicResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decoding anthropic response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("anthropic: %s", out.Error.Message)
	}

	for _, block := range out.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic: no text content in response")
}
