package discord

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/park285/dominator-discord-go/internal/config"
	"github.com/park285/dominator-discord-go/internal/metrics"
)

// listMessagesLimit 은 사용자 탐색 시 가져오는 최근 메시지 수다.
const listMessagesLimit = 50

// APIError 는 Discord REST 의 비정상 상태 코드다.
type APIError struct {
	Operation string
	Status    int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord %s: status %d", e.Operation, e.Status)
}

// Client 는 Discord REST API 클라이언트다.
type Client struct {
	baseURL       string
	botToken      string
	applicationID string
	httpClient    *http.Client
	metrics       *metrics.Store
	logger        *slog.Logger
}

// NewClient 는 REST 클라이언트를 생성한다.
func NewClient(cfg config.DiscordConfig, store *metrics.Store, logger *slog.Logger) *Client {
	return &Client{
		baseURL:       cfg.APIBaseURL,
		botToken:      cfg.BotToken,
		applicationID: cfg.ApplicationID,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		metrics:       store,
		logger:        logger,
	}
}

// ListChannelMessages 는 채널의 최근 메시지를 최신순으로 조회한다.
func (c *Client) ListChannelMessages(ctx context.Context, channelID string) ([]Message, error) {
	path := fmt.Sprintf("/channels/%s/messages?limit=%d", url.PathEscape(channelID), listMessagesLimit)
	body, err := c.do(ctx, "list_channel_messages", http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var messages []Message
	if err := json.Unmarshal(body, &messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return messages, nil
}

// GetChannelMessage 는 단일 메시지를 조회한다.
func (c *Client) GetChannelMessage(ctx context.Context, channelID, messageID string) (*Message, error) {
	path := fmt.Sprintf("/channels/%s/messages/%s", url.PathEscape(channelID), url.PathEscape(messageID))
	body, err := c.do(ctx, "get_channel_message", http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var message Message
	if err := json.Unmarshal(body, &message); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	return &message, nil
}

// EditOriginalResponse 는 지연 응답의 원본 메시지를 수정한다.
func (c *Client) EditOriginalResponse(ctx context.Context, interactionToken, content string) error {
	path := fmt.Sprintf(
		"/webhooks/%s/%s/messages/@original",
		url.PathEscape(c.applicationID),
		url.PathEscape(interactionToken),
	)
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return fmt.Errorf("encode follow-up: %w", err)
	}

	_, err = c.do(ctx, "edit_original_response", http.MethodPatch, path, payload)
	return err
}

// BulkOverwriteCommands 는 전역 커맨드 목록을 통째로 교체한다.
func (c *Client) BulkOverwriteCommands(ctx context.Context, commands []ApplicationCommand) error {
	path := fmt.Sprintf("/applications/%s/commands", url.PathEscape(c.applicationID))
	payload, err := json.Marshal(commands)
	if err != nil {
		return fmt.Errorf("encode commands: %w", err)
	}

	_, err = c.do(ctx, "bulk_overwrite_commands", http.MethodPut, path, payload)
	return err
}

func (c *Client) do(ctx context.Context, operation, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.botToken != "" {
		req.Header.Set("Authorization", "Bot "+c.botToken)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordRESTError(operation, 0)
		return nil, fmt.Errorf("discord %s: %w", operation, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordRESTError(operation, resp.StatusCode)
		return nil, fmt.Errorf("discord %s: read body: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.RecordRESTError(operation, resp.StatusCode)
		c.logger.Warn("discord_rest_error",
			slog.String("operation", operation),
			slog.String("status", strconv.Itoa(resp.StatusCode)),
		)
		return nil, &APIError{Operation: operation, Status: resp.StatusCode}
	}
	return body, nil
}
