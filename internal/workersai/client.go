// Package workersai 는 Cloudflare Workers AI 기반 분류 백엔드다.
package workersai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/park285/dominator-discord-go/internal/config"
	"github.com/park285/dominator-discord-go/internal/llm"
	"github.com/park285/dominator-discord-go/internal/metrics"
)

const backendName = "workersai"

const reasonMissingCredentials = "Workers AI の認証情報が未設定です。"

// Client 는 Workers AI REST 호출을 담당한다.
type Client struct {
	cfg        config.WorkersAIConfig
	prompt     *llm.Prompt
	metrics    *metrics.Store
	logger     *slog.Logger
	httpClient *http.Client
}

var _ llm.Client = (*Client)(nil)

// NewClient 는 Workers AI 분류 클라이언트를 생성한다.
func NewClient(cfg config.WorkersAIConfig, prompt *llm.Prompt, store *metrics.Store, logger *slog.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		cfg:        cfg,
		prompt:     prompt,
		metrics:    store,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// AnalyzeCrimeCoefficient 는 메시지의 犯罪係数 를 측정한다.
// 어떤 실패 경로에서도 에러를 올리지 않고 유효한 Result 를 반환한다.
func (c *Client) AnalyzeCrimeCoefficient(ctx context.Context, message string) llm.Result {
	if strings.TrimSpace(message) == "" {
		return llm.Result{CrimeCoefficient: 0, Reason: llm.ReasonEmptyInput}
	}
	if strings.TrimSpace(c.cfg.AccountID) == "" || strings.TrimSpace(c.cfg.APIToken) == "" {
		return llm.Result{CrimeCoefficient: 0, Reason: reasonMissingCredentials}
	}

	prompt := c.prompt.Build(message)
	return llm.Classify(ctx, c.logger, c.metrics, backendName, func(ctx context.Context) (string, error) {
		return c.run(ctx, prompt)
	})
}

// run 은 /ai/run 엔드포인트를 1회 호출하고 응답 텍스트를 추출한다.
func (c *Client) run(ctx context.Context, prompt string) (string, error) {
	endpoint := fmt.Sprintf(
		"%s/accounts/%s/ai/run/%s",
		strings.TrimRight(c.cfg.BaseURL, "/"),
		c.cfg.AccountID,
		c.cfg.Model,
	)

	payload, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("workers ai request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("workers ai status %d", resp.StatusCode)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		// JSON 이 아니면 본문 그대로 파서에 넘긴다.
		return string(body), nil
	}
	return llm.ExtractText(decoded), nil
}
