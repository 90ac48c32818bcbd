package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-retirement-be/pkg/llm"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModels is the ordered candidate list: primary plus two fallbacks.
// Retired model names are the most common production failure here, so the
// provider walks the list on model-not-found instead of surfacing it.
var DefaultModels = []string{
	"gemini-1.5-flash",
	"gemini-1.5-flash-8b",
	"gemini-1.5-pro",
}

type GeminiProvider struct {
	APIKey  string
	BaseURL string
	Models  []string
	Client  *http.Client
}

var _ llm.Provider = &GeminiProvider{}

func NewGeminiProvider(apiKey string, models []string) *GeminiProvider {
	if len(models) == 0 {
		models = DefaultModels
	}
	return &GeminiProvider{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Models:  models,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (p *GeminiProvider) Name() string {
	return llm.ProviderGemini
}

// --- Request/Response structs (internal to this package) ---

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		TotalTokenCount int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// Complete walks the candidate model list. A model-not-found failure advances
// to the next model; a JSON-mode rejection retries the same model once without
// structured output; anything else surfaces immediately. After the list is
// exhausted the last model's error is returned.
func (p *GeminiProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResult, error) {
	models := p.Models
	if req.Model != "" {
		models = []string{req.Model}
	}

	var lastErr error
	for _, model := range models {
		result, err := p.completeOnce(ctx, model, req, req.ForceJSON)
		if err == nil {
			return result, nil
		}

		if req.ForceJSON && llm.IsKind(err, llm.KindJSONModeUnsupported) {
			result, err = p.completeOnce(ctx, model, req, false)
			if err == nil {
				return result, nil
			}
		}

		lastErr = err
		if llm.IsKind(err, llm.KindModelNotFound) {
			continue
		}
		return nil, err
	}

	return nil, lastErr
}

func (p *GeminiProvider) completeOnce(ctx context.Context, model string, req llm.CompletionRequest, forceJSON bool) (*llm.CompletionResult, error) {
	genCfg := &geminiGenerationConfig{
		Temperature:     req.Temperature,
		MaxOutputTokens: req.MaxTokens,
	}
	if forceJSON {
		genCfg.ResponseMimeType = "application/json"
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: req.UserPrompt}}},
		},
		GenerationConfig: genCfg,
	}
	if req.SystemPrompt != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.SystemPrompt}}}
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, llm.NewProviderError(p.Name(), model, llm.KindOther, 0, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.BaseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, llm.NewProviderError(p.Name(), model, llm.KindOther, 0, err)
	}
	httpReq.Header.Set("x-goog-api-key", p.APIKey)
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
		kind := classifyStatus(res.StatusCode, string(resBody), forceJSON)
		return nil, llm.NewProviderError(p.Name(), model, kind, res.StatusCode,
			fmt.Errorf("status %d: %s", res.StatusCode, truncate(string(resBody), 300)))
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return nil, llm.NewProviderError(p.Name(), model, llm.KindBadResponse, res.StatusCode, err)
	}
	if len(geminiRes.Candidates) == 0 || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return nil, llm.NewProviderError(p.Name(), model, llm.KindBadResponse, res.StatusCode,
			fmt.Errorf("empty candidates in response"))
	}

	return &llm.CompletionResult{
		Text:       geminiRes.Candidates[0].Content.Parts[0].Text,
		ModelUsed:  model,
		TokensUsed: geminiRes.UsageMetadata.TotalTokenCount,
	}, nil
}

// classifyStatus maps Gemini's HTTP failures into error kinds. Body substrings
// are consulted only here, never above the adapter.
func classifyStatus(status int, body string, forceJSON bool) llm.ErrorKind {
	lower := strings.ToLower(body)
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return llm.KindAuth
	case http.StatusTooManyRequests:
		return llm.KindRateLimit
	case http.StatusNotFound:
		return llm.KindModelNotFound
	case http.StatusBadRequest:
		if forceJSON && (strings.Contains(lower, "response_mime_type") ||
			strings.Contains(lower, "responsemimetype") ||
			strings.Contains(lower, "json mode")) {
			return llm.KindJSONModeUnsupported
		}
		if strings.Contains(lower, "model") &&
			(strings.Contains(lower, "not found") ||
				strings.Contains(lower, "not supported") ||
				strings.Contains(lower, "deprecated")) {
			return llm.KindModelNotFound
		}
	}
	return llm.KindOther
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
