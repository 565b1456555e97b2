package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/park285/dominator-discord-go/internal/discord"
)

// runDominate 는 /dominate 지연 작업이다. 결과는 항상 원본 응답 PATCH 로 전달한다.
func (h *InteractionHandler) runDominate(ctx context.Context, interaction *discord.Interaction) {
	defer h.recoverToFollowup(ctx, interaction.Token)
	h.editOriginal(ctx, interaction.Token, h.dominateByUser(ctx, interaction))
}

// runDominateURL 는 /dominate_with_message_url 지연 작업이다.
func (h *InteractionHandler) runDominateURL(ctx context.Context, interaction *discord.Interaction) {
	defer h.recoverToFollowup(ctx, interaction.Token)
	h.editOriginal(ctx, interaction.Token, h.dominateByURL(ctx, interaction))
}

// dominateByUser 는 대상 사용자의 채널 내 최신 발언을 찾아 측정한다.
func (h *InteractionHandler) dominateByUser(ctx context.Context, interaction *discord.Interaction) string {
	targetUserID, _ := interaction.Data.Option("user")
	if targetUserID == "" {
		return msgInvalidUser
	}

	username := interaction.ResolvedUsername(targetUserID)
	if username == "" {
		username = "<@" + targetUserID + ">"
	}

	messages, err := h.rest.ListChannelMessages(ctx, interaction.ChannelID)
	if err != nil {
		return fetchErrorMessage(err, false)
	}

	latest := latestMessageBy(messages, targetUserID)
	if latest == nil {
		return msgNoRecentMessage
	}

	result := h.llm.AnalyzeCrimeCoefficient(ctx, *latest.Content)
	return formatUserResult(username, result)
}

// latestMessageBy 는 최신순 목록에서 대상 사용자의 본문 있는 첫 메시지를 찾는다.
func latestMessageBy(messages []discord.Message, userID string) *discord.Message {
	for i := range messages {
		message := &messages[i]
		if message.Author != nil && message.Author.ID == userID && message.Content != nil {
			return message
		}
	}
	return nil
}

func (h *InteractionHandler) editOriginal(ctx context.Context, token, content string) {
	if err := h.rest.EditOriginalResponse(ctx, token, content); err != nil {
		h.logger.Error("followup_edit_failed", slog.String("error", err.Error()))
	}
}

// recoverToFollowup 은 지연 작업의 패닉을 오류 메시지 PATCH 로 바꾼다.
func (h *InteractionHandler) recoverToFollowup(ctx context.Context, token string) {
	recovered := recover()
	if recovered == nil {
		return
	}
	h.logger.Error("deferred_task_panic", slog.Any("panic", recovered))
	h.editOriginal(ctx, token, fmt.Sprintf(msgErrorFmt, fmt.Sprint(recovered)))
}

// fetchErrorMessage 는 REST 실패를 사용자 문구로 바꾼다. notFoundDedicated 는
// 404 전용 문구를 쓰는 by-url 경로에서만 참이다.
func fetchErrorMessage(err error, notFoundDedicated bool) string {
	var apiErr *discord.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden:
			return msgFetchForbidden
		case notFoundDedicated && apiErr.Status == http.StatusNotFound:
			return msgMessageNotFound
		default:
			return fmt.Sprintf(msgFetchFailedFmt, apiErr.Status)
		}
	}
	return errorMessage(err)
}

func errorMessage(err error) string {
	return fmt.Sprintf(msgErrorFmt, err.Error())
}
