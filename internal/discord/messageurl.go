package discord

import (
	"net/url"
	"strings"
)

// MessageRef 는 메시지 URL 에서 추출한 좌표다. GuildID 는 DM 링크면 "@me" 가 된다.
type MessageRef struct {
	GuildID   string
	ChannelID string
	MessageID string
}

// ParseMessageURL 은 Discord 메시지 링크를 파싱한다. 형식이 다르면 nil 을 반환한다.
// 허용 호스트는 discord.com / discordapp.com (서브도메인 포함) 뿐이다.
func ParseMessageURL(input string) *MessageRef {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return nil
	}
	if !isDiscordHost(u.Host) {
		return nil
	}

	segments := splitPath(u.Path)
	if len(segments) != 4 || segments[0] != "channels" {
		return nil
	}
	if segments[1] == "" || segments[2] == "" || segments[3] == "" {
		return nil
	}

	return &MessageRef{
		GuildID:   segments[1],
		ChannelID: segments[2],
		MessageID: segments[3],
	}
}

func isDiscordHost(host string) bool {
	host = strings.ToLower(host)
	for _, domain := range []string{"discord.com", "discordapp.com"} {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
