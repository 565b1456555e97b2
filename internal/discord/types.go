// Package discord 는 인터랙션 페이로드 모델과 REST 클라이언트를 담는다.
package discord

// 인터랙션 타입. (Discord Interaction Type)
const (
	InteractionTypePing               = 1
	InteractionTypeApplicationCommand = 2
)

// 인터랙션 응답 타입. (Discord Interaction Callback Type)
const (
	ResponseTypePong                   = 1
	ResponseTypeChannelMessage         = 4
	ResponseTypeDeferredChannelMessage = 5
)

// FlagEphemeral 은 호출자에게만 보이는 응답 플래그다.
const FlagEphemeral = 1 << 6

// User 는 Discord 사용자다.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Member 는 길드 멤버다.
type Member struct {
	User *User `json:"user"`
}

// Option 은 슬래시 커맨드 옵션 값이다.
// USER/STRING 타입 모두 snowflake 또는 문자열 값으로 도착한다.
type Option struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Resolved 는 인터랙션에 동봉된 엔티티 해석 결과다.
type Resolved struct {
	Users map[string]User `json:"users"`
}

// InteractionData 는 커맨드 호출 상세다.
type InteractionData struct {
	Name     string    `json:"name"`
	Options  []Option  `json:"options"`
	Resolved *Resolved `json:"resolved"`
}

// Option 은 이름이 일치하는 옵션 값을 반환한다.
func (d *InteractionData) Option(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, option := range d.Options {
		if option.Name == name {
			return option.Value, true
		}
	}
	return "", false
}

// Interaction 은 수신 인터랙션 페이로드다. 코어는 이를 소유하지 않고 통과시킨다.
type Interaction struct {
	Type      int              `json:"type"`
	Data      *InteractionData `json:"data"`
	GuildID   string           `json:"guild_id"`
	ChannelID string           `json:"channel_id"`
	Token     string           `json:"token"`
	Member    *Member          `json:"member"`
	User      *User            `json:"user"`
}

// CommandName 은 커맨드 이름을 반환한다.
func (i *Interaction) CommandName() string {
	if i == nil || i.Data == nil {
		return ""
	}
	return i.Data.Name
}

// InvokerID 는 호출 사용자 ID 를 반환한다. 길드 내 호출은 member 에, DM 은 user 에 실린다.
func (i *Interaction) InvokerID() string {
	if i == nil {
		return ""
	}
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// ResolvedUsername 은 resolved 사용자 이름을 반환한다. 없으면 빈 문자열.
func (i *Interaction) ResolvedUsername(userID string) string {
	if i == nil || i.Data == nil || i.Data.Resolved == nil {
		return ""
	}
	user, ok := i.Data.Resolved.Users[userID]
	if !ok {
		return ""
	}
	return user.Username
}

// Message 는 채널 메시지다. Content 는 필드 부재와 빈 문자열을 구분한다.
type Message struct {
	ID      string  `json:"id"`
	Content *string `json:"content"`
	Author  *User   `json:"author"`
}

// InteractionResponse 는 웹훅 동기 응답이다.
type InteractionResponse struct {
	Type int           `json:"type"`
	Data *ResponseData `json:"data,omitempty"`
}

// ResponseData 는 응답 본문이다.
type ResponseData struct {
	Content string `json:"content,omitempty"`
	Flags   int    `json:"flags,omitempty"`
}

// Pong 은 핑 응답을 만든다.
func Pong() InteractionResponse {
	return InteractionResponse{Type: ResponseTypePong}
}

// Deferred 는 지연 응답 ack 를 만든다.
func Deferred() InteractionResponse {
	return InteractionResponse{Type: ResponseTypeDeferredChannelMessage}
}

// EphemeralMessage 는 호출자에게만 보이는 즉시 응답을 만든다.
func EphemeralMessage(content string) InteractionResponse {
	return InteractionResponse{
		Type: ResponseTypeChannelMessage,
		Data: &ResponseData{Content: content, Flags: FlagEphemeral},
	}
}

// ApplicationCommand 는 등록용 커맨드 정의다.
type ApplicationCommand struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Options     []CommandOption `json:"options,omitempty"`
}

// CommandOption 은 커맨드 옵션 정의다.
type CommandOption struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        int    `json:"type"`
	Required    bool   `json:"required"`
}

// 커맨드 옵션 타입. (Application Command Option Type)
const (
	OptionTypeString = 3
	OptionTypeUser   = 6
)
