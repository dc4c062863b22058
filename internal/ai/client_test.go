package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"craftfolio/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*OpenAIClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewOpenAIClient(config.AIConfig{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		Model:          "gpt-4o-mini",
		TimeoutSeconds: 5,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, srv
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"enhance", "expand", "tailor"} {
		if _, err := ParseMode(valid); err != nil {
			t.Errorf("ParseMode(%q): %v", valid, err)
		}
	}
	if _, err := ParseMode("rewrite"); err == nil {
		t.Fatal("ParseMode must reject unknown modes")
	}
}

func TestEnhanceSendsPromptAndAuth(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  Polished text.  "}},
			},
		})
	})

	out, err := client.Enhance(context.Background(), ModeExpand, "Did stuff")
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}
	if out != "Polished text." {
		t.Fatalf("content not trimmed: %q", out)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || !strings.Contains(gotReq.Messages[0].Content, "Did stuff") {
		t.Fatalf("prompt missing input text: %+v", gotReq.Messages)
	}
	if !strings.Contains(gotReq.Messages[0].Content, "Expand") {
		t.Fatalf("expand mode must use the expand prompt: %q", gotReq.Messages[0].Content)
	}
}

func TestGenerateBulletsOptionalDescription(t *testing.T) {
	var prompts []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		prompts = append(prompts, req.Messages[0].Content)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "1. Shipped things"}},
			},
		})
	})

	if _, err := client.GenerateBullets(context.Background(), "Engineer", "ACME", "built APIs"); err != nil {
		t.Fatalf("with description: %v", err)
	}
	if _, err := client.GenerateBullets(context.Background(), "Engineer", "ACME", ""); err != nil {
		t.Fatalf("without description: %v", err)
	}
	if !strings.Contains(prompts[0], "Context: built APIs") {
		t.Fatalf("description not forwarded: %q", prompts[0])
	}
	if strings.Contains(prompts[1], "Context:") {
		t.Fatalf("empty description must not add context: %q", prompts[1])
	}
}

func TestTailorResumeEmbedsJSONAndJD(t *testing.T) {
	var prompt string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		prompt = req.Messages[0].Content
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": `{"skills":["Go"]}`}},
			},
		})
	})

	out, err := client.TailorResume(context.Background(), []byte(`{"skills":[]}`), "Backend role at ACME")
	if err != nil {
		t.Fatalf("tailor: %v", err)
	}
	if out != `{"skills":["Go"]}` {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(prompt, `{"skills":[]}`) || !strings.Contains(prompt, "Backend role at ACME") {
		t.Fatalf("prompt must embed resume JSON and job description: %q", prompt)
	}
}

func TestUpstreamErrorSurfaced(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limited", "type": "rate_limit_error"},
		})
	})

	if _, err := client.Enhance(context.Background(), ModeEnhance, "x"); err == nil {
		t.Fatal("expected upstream error")
	} else if !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("error must carry upstream message: %v", err)
	}
}

func TestEmptyChoicesRejected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})
	if _, err := client.Enhance(context.Background(), ModeEnhance, "x"); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestNewOpenAIClientValidation(t *testing.T) {
	if _, err := NewOpenAIClient(config.AIConfig{Model: "m"}); err == nil {
		t.Fatal("missing api key must fail")
	}
	if _, err := NewOpenAIClient(config.AIConfig{APIKey: "k"}); err == nil {
		t.Fatal("missing model must fail")
	}
}
