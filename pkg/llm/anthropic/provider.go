package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-retirement-be/pkg/llm"
)

const (
	defaultBaseURL   = "https://api.anthropic.com/v1"
	defaultModel     = "claude-sonnet-4-20250514"
	apiVersion       = "2023-06-01"
	defaultMaxTokens = 4096
)

// AnthropicProvider is the higher-fidelity backend. Single model, no internal
// fallback list; cross-provider fallback is the orchestrator's decision.
type AnthropicProvider struct {
	APIKey  string
	BaseURL string
	Model   string
	Client  *http.Client
}

var _ llm.Provider = &AnthropicProvider{}

func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	if model == "" {
		model = defaultModel
	}
	return &AnthropicProvider{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Model:   model,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (p *AnthropicProvider) Name() string {
	return llm.ProviderAnthropic
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
	MaxTokens int                `json:"max_tokens"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (p *AnthropicProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResult, error) {
	model := p.Model
	if req.Model != "" {
		model = req.Model
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	// No JSON response mode on this API; the system prompt carries the schema
	// and the parser handles fences.
	payload := anthropicRequest{
		Model:     model,
		System:    req.SystemPrompt,
		MaxTokens: maxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: req.UserPrompt},
		},
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, llm.NewProviderError(p.Name(), model, llm.KindOther, 0, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.BaseURL+"/messages", bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, llm.NewProviderError(p.Name(), model, llm.KindOther, 0, err)
	}
	httpReq.Header.Set("x-api-key", p.APIKey)
	httpReq.Header.Set("anthropic-version", apiVersion)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(httpReq)
	if err != nil {
		return nil, llm.NewProviderError(p.Name(), model, llm.KindTransport, 0, err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, llm.NewProviderError(p.Name(), model, llm.KindTransport, res.StatusCode, err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, llm.NewProviderError(p.Name(), model, classifyStatus(res.StatusCode), res.StatusCode,
			fmt.Errorf("status %d: %s", res.StatusCode, string(resBody)))
	}

	var anthRes anthropicResponse
	if err := json.Unmarshal(resBody, &anthRes); err != nil {
		return nil, llm.NewProviderError(p.Name(), model, llm.KindBadResponse, res.StatusCode, err)
	}

	text := ""
	for _, block := range anthRes.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return nil, llm.NewProviderError(p.Name(), model, llm.KindBadResponse, res.StatusCode,
			fmt.Errorf("no text blocks in response"))
	}

	return &llm.CompletionResult{
		Text:       text,
		ModelUsed:  model,
		TokensUsed: anthRes.Usage.InputTokens + anthRes.Usage.OutputTokens,
	}, nil
}

func classifyStatus(status int) llm.ErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return llm.KindAuth
	case http.StatusTooManyRequests:
		return llm.KindRateLimit
	case http.StatusNotFound:
		return llm.KindModelNotFound
	}
	return llm.KindOther
}
