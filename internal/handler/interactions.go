package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/park285/dominator-discord-go/internal/config"
	"github.com/park285/dominator-discord-go/internal/discord"
	"github.com/park285/dominator-discord-go/internal/guild"
	"github.com/park285/dominator-discord-go/internal/llm"
	"github.com/park285/dominator-discord-go/internal/metrics"
	"github.com/park285/dominator-discord-go/internal/middleware"
	"github.com/park285/dominator-discord-go/internal/verify"
)

// 서명 헤더 키.
const (
	signatureHeader = "X-Signature-Ed25519"
	timestampHeader = "X-Signature-Timestamp"
)

// 슬래시 커맨드 이름.
const (
	commandDominate    = "dominate"
	commandDominateURL = "dominate_with_message_url"
	commandRegister    = "register"
	commandUnregister  = "unregister"
)

// InteractionHandler 는 웹훅 엔드포인트의 본체다.
type InteractionHandler struct {
	cfg      *config.Config
	verifier *verify.Verifier
	llm      llm.Client
	guilds   *guild.Service
	rest     *discord.Client
	metrics  *metrics.Store
	logger   *slog.Logger
	tasks    *TaskTracker
}

// NewInteractionHandler 는 인터랙션 핸들러를 생성한다.
func NewInteractionHandler(
	cfg *config.Config,
	verifier *verify.Verifier,
	llmClient llm.Client,
	guilds *guild.Service,
	rest *discord.Client,
	store *metrics.Store,
	logger *slog.Logger,
	tasks *TaskTracker,
) *InteractionHandler {
	return &InteractionHandler{
		cfg:      cfg,
		verifier: verifier,
		llm:      llmClient,
		guilds:   guilds,
		rest:     rest,
		metrics:  store,
		logger:   logger,
		tasks:    tasks,
	}
}

// HandleInteractions 는 POST /api/interactions 요청을 처리한다.
func (h *InteractionHandler) HandleInteractions(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "failed to read body")
		return
	}

	signature := c.GetHeader(signatureHeader)
	timestamp := c.GetHeader(timestampHeader)
	if !h.verifier.Verify(rawBody, signature, timestamp) {
		h.logger.Warn("interaction_signature_rejected",
			slog.String("request_id", middleware.GetRequestID(c)),
		)
		c.String(http.StatusUnauthorized, "invalid request signature")
		return
	}

	var interaction discord.Interaction
	if err := json.Unmarshal(rawBody, &interaction); err != nil {
		c.String(http.StatusBadRequest, "malformed interaction payload")
		return
	}

	h.metrics.RecordInteraction(interaction.Type, interaction.CommandName())

	if interaction.Type == discord.InteractionTypePing {
		c.JSON(http.StatusOK, discord.Pong())
		return
	}

	if interaction.Type == discord.InteractionTypeApplicationCommand {
		h.handleCommand(c, &interaction)
		return
	}

	h.logger.Error("unhandled_interaction_type", slog.Int("type", interaction.Type))
	c.String(http.StatusBadRequest, "unhandled interaction type")
}

func (h *InteractionHandler) handleCommand(c *gin.Context, interaction *discord.Interaction) {
	ctx := c.Request.Context()

	switch interaction.CommandName() {
	case commandRegister:
		c.JSON(http.StatusOK, h.handleRegister(ctx, interaction))
	case commandUnregister:
		c.JSON(http.StatusOK, h.handleUnregister(ctx, interaction))
	case commandDominate:
		h.deferAndRun(c, interaction, h.runDominate)
	case commandDominateURL:
		h.deferAndRun(c, interaction, h.runDominateURL)
	default:
		h.logger.Error("unhandled_command", slog.String("name", interaction.CommandName()))
		c.String(http.StatusBadRequest, "unhandled interaction type")
	}
}

// deferAndRun 은 허용 목록 게이트를 통과한 커맨드를 지연 응답으로 ack 하고
// 분류 작업을 백그라운드로 넘긴다.
func (h *InteractionHandler) deferAndRun(
	c *gin.Context,
	interaction *discord.Interaction,
	run func(ctx context.Context, interaction *discord.Interaction),
) {
	if !h.guildAllowed(c.Request.Context(), interaction.GuildID) {
		c.JSON(http.StatusOK, discord.EphemeralMessage(msgGuildNotAllowed))
		return
	}

	// 응답 반환 후에도 작업은 계속되어야 하므로 요청 컨텍스트에서 분리한다.
	ctx := context.WithoutCancel(c.Request.Context())
	h.tasks.Go(func() {
		run(ctx, interaction)
	})
	c.JSON(http.StatusOK, discord.Deferred())
}

// guildAllowed 는 허용 목록을 조회한다. 조회 실패는 거부로 처리한다.
func (h *InteractionHandler) guildAllowed(ctx context.Context, guildID string) bool {
	if guildID == "" {
		return false
	}
	allowed, err := h.guilds.IsAllowed(ctx, guildID)
	if err != nil {
		h.logger.Error("allowlist_lookup_failed",
			slog.String("guild_id", guildID),
			slog.String("error", err.Error()),
		)
		return false
	}
	return allowed
}

func (h *InteractionHandler) handleRegister(ctx context.Context, interaction *discord.Interaction) discord.InteractionResponse {
	if interaction.GuildID == "" {
		return discord.EphemeralMessage(msgGuildOnly)
	}
	if !h.isOperator(interaction) {
		return discord.EphemeralMessage(msgNoPermission)
	}

	active, err := h.guilds.IsAllowed(ctx, interaction.GuildID)
	if err != nil {
		h.logger.Error("guild_register_failed",
			slog.String("guild_id", interaction.GuildID),
			slog.String("error", err.Error()),
		)
		return discord.EphemeralMessage(errorMessage(err))
	}
	if active {
		return discord.EphemeralMessage(msgAlreadyRegistered)
	}

	if err := h.guilds.Register(ctx, interaction.GuildID, interaction.InvokerID(), interaction.ChannelID); err != nil {
		h.logger.Error("guild_register_failed",
			slog.String("guild_id", interaction.GuildID),
			slog.String("error", err.Error()),
		)
		return discord.EphemeralMessage(errorMessage(err))
	}
	return discord.EphemeralMessage(msgRegistered)
}

func (h *InteractionHandler) handleUnregister(ctx context.Context, interaction *discord.Interaction) discord.InteractionResponse {
	if interaction.GuildID == "" {
		return discord.EphemeralMessage(msgGuildOnly)
	}
	if !h.isOperator(interaction) {
		return discord.EphemeralMessage(msgNoPermission)
	}

	unregistered, err := h.guilds.Unregister(ctx, interaction.GuildID, interaction.InvokerID())
	if err != nil {
		h.logger.Error("guild_unregister_failed",
			slog.String("guild_id", interaction.GuildID),
			slog.String("error", err.Error()),
		)
		return discord.EphemeralMessage(errorMessage(err))
	}
	if !unregistered {
		return discord.EphemeralMessage(msgNotRegistered)
	}
	return discord.EphemeralMessage(msgUnregistered)
}

func (h *InteractionHandler) isOperator(interaction *discord.Interaction) bool {
	operatorID := h.cfg.Discord.OperatorUserID
	return operatorID != "" && interaction.InvokerID() == operatorID
}
