package handler

import (
	"context"
	"strings"

	"github.com/park285/dominator-discord-go/internal/discord"
)

// dominateByURL 는 메시지 URL 이 가리키는 본문을 측정한다.
// 허용 목록은 호출 길드가 아니라 URL 에 박힌 길드를 기준으로 다시 본다.
func (h *InteractionHandler) dominateByURL(ctx context.Context, interaction *discord.Interaction) string {
	inputURL, _ := interaction.Data.Option("url")
	if inputURL == "" {
		return msgURLMissing
	}

	ref := discord.ParseMessageURL(inputURL)
	if ref == nil {
		return msgURLUnsupported
	}
	if ref.GuildID == "@me" {
		return msgDMNotSupported
	}
	if !h.guildAllowed(ctx, ref.GuildID) {
		return msgGuildOutOfScope
	}

	message, err := h.rest.GetChannelMessage(ctx, ref.ChannelID, ref.MessageID)
	if err != nil {
		return fetchErrorMessage(err, true)
	}

	text := ""
	if message.Content != nil {
		text = *message.Content
	}
	if strings.TrimSpace(text) == "" {
		return msgEmptyBody
	}

	authorName := unknownUserName
	if message.Author != nil && message.Author.Username != "" {
		authorName = message.Author.Username
	}

	result := h.llm.AnalyzeCrimeCoefficient(ctx, text)
	return formatURLResult(inputURL, authorName, result)
}
