// Package registration 은 슬래시 커맨드 정의와 일괄 등록을 담당한다.
package registration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/park285/dominator-discord-go/internal/discord"
)

// Commands 는 봇이 노출하는 전역 슬래시 커맨드 전체다.
// PUT 으로 통째로 덮어쓰므로 여기 없는 커맨드는 등록이 해제된다.
func Commands() []discord.ApplicationCommand {
	return []discord.ApplicationCommand{
		{
			Name:        "dominate",
			Description: "指定したユーザーの犯罪係数を測定します",
			Options: []discord.CommandOption{
				{
					Name:        "user",
					Description: "測定対象のユーザー",
					Type:        discord.OptionTypeUser,
					Required:    true,
				},
			},
		},
		{
			Name:        "dominate_with_message_url",
			Description: "メッセージURLから本文を取得して犯罪係数を測定します",
			Options: []discord.CommandOption{
				{
					Name:        "url",
					Description: "DiscordメッセージのURL",
					Type:        discord.OptionTypeString,
					Required:    true,
				},
			},
		},
		{
			Name:        "register",
			Description: "このサーバーをボットの許可リストに登録します（管理者のみ）",
		},
		{
			Name:        "unregister",
			Description: "このサーバーをボットの許可リストから解除します（管理者のみ）",
		},
	}
}

// Register 는 전역 커맨드 목록을 일괄 교체한다.
func Register(ctx context.Context, client *discord.Client, logger *slog.Logger) error {
	commands := Commands()
	if err := client.BulkOverwriteCommands(ctx, commands); err != nil {
		return fmt.Errorf("overwrite commands: %w", err)
	}

	for _, command := range commands {
		logger.Info("command_registered", slog.String("name", command.Name))
	}
	return nil
}
