package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-retirement-be/pkg/llm"
)

func okResponse(text string, tokens int) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{"parts": []map[string]interface{}{{"text": text}}}},
		},
		"usageMetadata": map[string]interface{}{"totalTokenCount": tokens},
	}
}

func modelFromPath(path string) string {
	// /models/<model>:generateContent
	trimmed := strings.TrimPrefix(path, "/models/")
	return strings.TrimSuffix(trimmed, ":generateContent")
}

func newTestProvider(serverURL string, models []string) *GeminiProvider {
	p := NewGeminiProvider("test-key", models)
	p.BaseURL = serverURL
	return p
}

func TestCompleteSuccess(t *testing.T) {
	var gotForceJSON bool
	var gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("x-goog-api-key")

		var req geminiRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotForceJSON = req.GenerationConfig != nil && req.GenerationConfig.ResponseMimeType == "application/json"

		_ = json.NewEncoder(w).Encode(okResponse(`{"ok":true}`, 321))
	}))
	defer server.Close()

	p := newTestProvider(server.URL, []string{"gemini-1.5-flash"})
	res, err := p.Complete(context.Background(), llm.CompletionRequest{
		SystemPrompt: "sys",
		UserPrompt:   "make a plan",
		ForceJSON:    true,
		MaxTokens:    1024,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if res.Text != `{"ok":true}` {
		t.Errorf("Text = %q", res.Text)
	}
	if res.ModelUsed != "gemini-1.5-flash" {
		t.Errorf("ModelUsed = %s", res.ModelUsed)
	}
	if res.TokensUsed != 321 {
		t.Errorf("TokensUsed = %d, want 321", res.TokensUsed)
	}
	if !gotForceJSON {
		t.Error("responseMimeType not set when ForceJSON requested")
	}
	if gotAPIKey != "test-key" {
		t.Errorf("x-goog-api-key = %q", gotAPIKey)
	}
}

func TestCompleteWalksModelListOnNotFound(t *testing.T) {
	var attempts []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		model := modelFromPath(r.URL.Path)
		attempts = append(attempts, model)
		if model != "gemini-1.5-pro" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"message":"model not found"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(okResponse("ok", 10))
	}))
	defer server.Close()

	p := newTestProvider(server.URL, []string{"gemini-1.5-flash", "gemini-1.5-flash-8b", "gemini-1.5-pro"})
	res, err := p.Complete(context.Background(), llm.CompletionRequest{UserPrompt: "hi"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if res.ModelUsed != "gemini-1.5-pro" {
		t.Errorf("ModelUsed = %s, want the last fallback", res.ModelUsed)
	}
	want := []string{"gemini-1.5-flash", "gemini-1.5-flash-8b", "gemini-1.5-pro"}
	if len(attempts) != len(want) {
		t.Fatalf("attempts = %v, want %v", attempts, want)
	}
}

func TestCompleteExhaustionReportsLastModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"model not found"}}`))
	}))
	defer server.Close()

	p := newTestProvider(server.URL, []string{"a", "b", "c"})
	_, err := p.Complete(context.Background(), llm.CompletionRequest{UserPrompt: "hi"})
	if err == nil {
		t.Fatal("expected error after exhausting the model list")
	}

	if !llm.IsKind(err, llm.KindModelNotFound) {
		t.Errorf("kind = %s, want %s", llm.KindOf(err), llm.KindModelNotFound)
	}
	var pe *llm.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want *llm.ProviderError", err)
	}
	if pe.Model != "c" {
		t.Errorf("Model = %s, want the last attempted model", pe.Model)
	}
}

func TestCompleteJSONModeRetry(t *testing.T) {
	var forceJSONAttempts, plainAttempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.GenerationConfig != nil && req.GenerationConfig.ResponseMimeType != "" {
			forceJSONAttempts++
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"response_mime_type is not supported"}}`))
			return
		}
		plainAttempts++
		_ = json.NewEncoder(w).Encode(okResponse(`{"plan":"here"}`, 50))
	}))
	defer server.Close()

	p := newTestProvider(server.URL, []string{"gemini-1.5-flash"})
	res, err := p.Complete(context.Background(), llm.CompletionRequest{UserPrompt: "hi", ForceJSON: true})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if forceJSONAttempts != 1 || plainAttempts != 1 {
		t.Errorf("attempts = %d forced + %d plain, want 1 + 1", forceJSONAttempts, plainAttempts)
	}
	if res.Text != `{"plan":"here"}` {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestCompleteAuthFailureSurfacesImmediately(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"api key invalid"}}`))
	}))
	defer server.Close()

	p := newTestProvider(server.URL, []string{"a", "b", "c"})
	_, err := p.Complete(context.Background(), llm.CompletionRequest{UserPrompt: "hi"})

	if !llm.IsKind(err, llm.KindAuth) {
		t.Errorf("kind = %s, want %s", llm.KindOf(err), llm.KindAuth)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1: auth failures must not walk the model list", attempts)
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		forceJSON bool
		want      llm.ErrorKind
	}{
		{"unauthorized", 401, "", false, llm.KindAuth},
		{"forbidden", 403, "", false, llm.KindAuth},
		{"rate limited", 429, "", false, llm.KindRateLimit},
		{"not found", 404, "", false, llm.KindModelNotFound},
		{"json mode rejected", 400, "response_mime_type is not supported", true, llm.KindJSONModeUnsupported},
		{"json mode text without forceJSON", 400, "response_mime_type is not supported", false, llm.KindOther},
		{"deprecated model via 400", 400, "model gemini-x is deprecated", false, llm.KindModelNotFound},
		{"generic 400", 400, "invalid argument", false, llm.KindOther},
		{"server error", 500, "", false, llm.KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyStatus(tt.status, tt.body, tt.forceJSON); got != tt.want {
				t.Errorf("classifyStatus(%d) = %s, want %s", tt.status, got, tt.want)
			}
		})
	}
}
