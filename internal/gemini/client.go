// Package gemini 는 Google Gemini 기반 분류 백엔드다.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/park285/dominator-discord-go/internal/config"
	"github.com/park285/dominator-discord-go/internal/llm"
	"github.com/park285/dominator-discord-go/internal/metrics"
)

const backendName = "gemini"

const reasonMissingAPIKey = "Gemini の API キーが未設定です。"

// responseSchema 는 응답을 2필드 JSON 으로 고정하는 스키마다.
var responseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"crime_coefficient": map[string]any{"type": "number"},
		"reason":            map[string]any{"type": "string"},
	},
	"required":         []string{"crime_coefficient", "reason"},
	"propertyOrdering": []string{"crime_coefficient", "reason"},
}

// Client 는 Gemini 호출을 담당한다.
type Client struct {
	cfg     config.GeminiConfig
	prompt  *llm.Prompt
	metrics *metrics.Store
	logger  *slog.Logger
	mu      sync.Mutex
	client  *genai.Client
}

var _ llm.Client = (*Client)(nil)

// NewClient 는 Gemini 분류 클라이언트를 생성한다.
func NewClient(cfg config.GeminiConfig, prompt *llm.Prompt, store *metrics.Store, logger *slog.Logger) *Client {
	return &Client{
		cfg:     cfg,
		prompt:  prompt,
		metrics: store,
		logger:  logger,
	}
}

// AnalyzeCrimeCoefficient 는 메시지의 犯罪係数 를 측정한다.
// 어떤 실패 경로에서도 에러를 올리지 않고 유효한 Result 를 반환한다.
func (c *Client) AnalyzeCrimeCoefficient(ctx context.Context, message string) llm.Result {
	if strings.TrimSpace(message) == "" {
		return llm.Result{CrimeCoefficient: 0, Reason: llm.ReasonEmptyInput}
	}
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return llm.Result{CrimeCoefficient: 0, Reason: reasonMissingAPIKey}
	}

	prompt := c.prompt.Build(message)
	return llm.Classify(ctx, c.logger, c.metrics, backendName, func(ctx context.Context) (string, error) {
		return c.generate(ctx, prompt)
	})
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return "", err
	}

	generateConfig := &genai.GenerateContentConfig{
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: responseSchema,
	}
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	response, err := client.Models.GenerateContent(ctx, c.cfg.Model, contents, generateConfig)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return response.Text(), nil
}

func (c *Client) getClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	timeout := time.Duration(c.cfg.TimeoutSeconds) * time.Second
	client, err := genai.NewClient(context.WithoutCancel(ctx), &genai.ClientConfig{
		APIKey:  c.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			Timeout: genai.Ptr(timeout),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	c.client = client
	return client, nil
}
