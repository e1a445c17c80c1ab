package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GAKiknadze/swagger-to-docs/config"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in      string
		want    Provider
		wantErr bool
	}{
		{"ollama", ProviderOllama, false},
		{"OpenAI", ProviderOpenAI, false},
		{"anthropic", ProviderAnthropic, false},
		{"GEMINI", ProviderGemini, false},
		{"mistral", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseProvider(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseProvider(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseProvider(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	model, err := New(config.LLMConfig{Provider: "anthropic", Model: "claude-3-5-haiku-latest"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if model.Name() != "anthropic/claude-3-5-haiku-latest" {
		t.Errorf("Name() = %q", model.Name())
	}

	if _, err := New(config.LLMConfig{Provider: "unknown"}); err == nil {
		t.Error("unknown provider should be rejected")
	}
}

func TestSplitMessages(t *testing.T) {
	system, prompt := splitMessages([]Message{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "hello"},
		{Role: "user", Content: "world"},
	})
	if system != "be terse" {
		t.Errorf("system = %q", system)
	}
	if prompt != "hello\n\nworld" {
		t.Errorf("prompt = %q", prompt)
	}
}

func TestOllamaGenerate(t *testing.T) {
	var got ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"response": "drafted docs"})
	}))
	defer srv.Close()

	model := NewOllama(config.LLMConfig{
		Model: "llama3.2", BaseURL: srv.URL, Temperature: 0.7, MaxTokens: 2000,
	})
	out, err := model.Generate(context.Background(), []Message{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "document this"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "drafted docs" {
		t.Errorf("Generate = %q", out)
	}

	if got.Model != "llama3.2" || got.Prompt != "document this" || got.System != "be terse" {
		t.Errorf("request = %+v", got)
	}
	if got.Stream {
		t.Error("stream should be false")
	}
	if got.Options.NumPredict != 2000 {
		t.Errorf("num_predict = %d", got.Options.NumPredict)
	}
}

func TestOllamaGenerateError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"error": "model not found"})
	}))
	defer srv.Close()

	model := NewOllama(config.LLMConfig{Model: "missing", BaseURL: srv.URL})
	_, err := model.Generate(context.Background(), []Message{{Role: "user", Content: "x"}})
	if err == nil || !strings.Contains(err.Error(), "model not found") {
		t.Errorf("error = %v, want model not found", err)
	}
}

func TestOpenAIGenerate(t *testing.T) {
	var got openaiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"role": "assistant", "content": "drafted docs"}},
			},
		})
	}))
	defer srv.Close()

	model := NewOpenAI(config.LLMConfig{
		Model: "gpt-4o-mini", APIKey: "sk-test", BaseURL: srv.URL, MaxTokens: 2000,
	})
	out, err := model.Generate(context.Background(), []Message{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "document this"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "drafted docs" {
		t.Errorf("Generate = %q", out)
	}

	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "document this" {
		t.Errorf("messages = %+v", got.Messages)
	}
	if got.MaxTokens != 2000 {
		t.Errorf("max_tokens = %d", got.MaxTokens)
	}
}

func TestOpenAIGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid api key"},
		})
	}))
	defer srv.Close()

	model := NewOpenAI(config.LLMConfig{Model: "gpt-4o-mini", APIKey: "bad", BaseURL: srv.URL})
	_, err := model.Generate(context.Background(), []Message{{Role: "user", Content: "x"}})
	if err == nil || !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("error = %v, want invalid api key", err)
	}
}

func TestGenerateNonJSONErrorBody(t *testing.T) {
	// A proxy 502 with an HTML body should surface the status, not a JSON
	// decode error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>502 Bad Gateway</html>"))
	}))
	defer srv.Close()

	cfg := config.LLMConfig{Model: "m", APIKey: "k", BaseURL: srv.URL}
	models := []Model{NewOpenAI(cfg), NewAnthropic(cfg), NewGemini(cfg)}

	for _, model := range models {
		_, err := model.Generate(context.Background(), []Message{{Role: "user", Content: "x"}})
		if err == nil {
			t.Errorf("%s: want error on 502", model.Name())
			continue
		}
		if !strings.Contains(err.Error(), "HTTP 502") {
			t.Errorf("%s: error = %v, want HTTP 502", model.Name(), err)
		}
		if strings.Contains(err.Error(), "decoding") {
			t.Errorf("%s: error = %v, should report the status, not a decode failure", model.Name(), err)
		}
	}
}

func TestAnthropicGenerate(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if key := r.Header.Get("x-api-key"); key != "sk-ant-test" {
			t.Errorf("x-api-key = %q", key)
		}
		if v := r.Header.Get("anthropic-version"); v != anthropicVersion {
			t.Errorf("anthropic-version = %q", v)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []any{
				map[string]any{"type": "text", "text": "drafted docs"},
			},
		})
	}))
	defer srv.Close()

	model := NewAnthropic(config.LLMConfig{
		Model: "claude-3-5-haiku-latest", APIKey: "sk-ant-test", BaseURL: srv.URL, MaxTokens: 2000,
	})
	out, err := model.Generate(context.Background(), []Message{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "document this"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "drafted docs" {
		t.Errorf("Generate = %q", out)
	}

	if got.System != "be terse" {
		t.Errorf("system = %q", got.System)
	}
	if got.MaxTokens != 2000 {
		t.Errorf("max_tokens = %d", got.MaxTokens)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "document this" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestGeminiGenerate(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.0-flash:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if key := r.URL.Query().Get("key"); key != "g-test" {
			t.Errorf("key = %q", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{
					"parts": []any{map[string]any{"text": "drafted docs"}},
				}},
			},
		})
	}))
	defer srv.Close()

	model := NewGemini(config.LLMConfig{
		Model: "gemini-2.0-flash", APIKey: "g-test", BaseURL: srv.URL, MaxTokens: 2000,
	})
	out, err := model.Generate(context.Background(), []Message{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "document this"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "drafted docs" {
		t.Errorf("Generate = %q", out)
	}

	if got.SystemInstruction == nil || got.SystemInstruction.Parts[0].Text != "be terse" {
		t.Errorf("systemInstruction = %+v", got.SystemInstruction)
	}
	if len(got.Contents) != 1 || got.Contents[0].Parts[0].Text != "document this" {
		t.Errorf("contents = %+v", got.Contents)
	}
	if got.GenerationConfig == nil || got.GenerationConfig.MaxOutputTokens != 2000 {
		t.Errorf("generationConfig = %+v", got.GenerationConfig)
	}
}

func TestGeminiGenerateEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	model := NewGemini(config.LLMConfig{Model: "gemini-2.0-flash", BaseURL: srv.URL})
	_, err := model.Generate(context.Background(), []Message{{Role: "user", Content: "x"}})
	if err == nil || !strings.Contains(err.Error(), "empty response") {
		t.Errorf("error = %v, want empty response", err)
	}
}
