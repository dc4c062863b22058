package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"craftfolio/internal/config"
)

const (
	enhanceMaxTokens = 500
	bulletsMaxTokens = 400
	tailorMaxTokens  = 2000

	defaultTemperature = 0.7
)

// OpenAIClient 走 OpenAI 兼容的 chat completions 接口。
// base_url 可以指向任何兼容网关（官方、代理或本地模型）。
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIClient 按配置构造客户端，缺少密钥或模型名时报错。
func NewOpenAIClient(cfg config.AIConfig) (*OpenAIClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("AI_API_KEY 未配置")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("AI_MODEL 未配置")
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIClient{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Enhance 实现 Client。
func (c *OpenAIClient) Enhance(ctx context.Context, mode Mode, text string) (string, error) {
	return c.complete(ctx, enhancePrompt(mode, text), enhanceMaxTokens)
}

// GenerateBullets 实现 Client。
func (c *OpenAIClient) GenerateBullets(ctx context.Context, jobTitle, company, description string) (string, error) {
	return c.complete(ctx, bulletsPrompt(jobTitle, company, description), bulletsMaxTokens)
}

// TailorResume 实现 Client。
func (c *OpenAIClient) TailorResume(ctx context.Context, resumeJSON []byte, jobDescription string) (string, error) {
	return c.complete(ctx, tailorPrompt(resumeJSON, jobDescription), tailorMaxTokens)
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: defaultTemperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("ai request timeout: %w", err)
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("ai response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("ai upstream error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai upstream status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("ai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("ai response empty content")
	}
	return content, nil
}
