// Package handler 는 인터랙션 라우팅과 커맨드 처리를 담당한다.
package handler

// 사용자에게 노출되는 일본어 고정 문구. 형식을 바꾸면 기존 운영 메시지와 어긋난다.
const (
	healthText = "Hello! Dominator online — 犯罪係数測定システム稼働中"

	msgGuildNotAllowed = "このサーバーは許可リストに登録されていません。/register で登録してください。"
	msgGuildOnly       = "このコマンドはサーバー内でのみ実行できます。"
	msgNoPermission    = "権限がありません。"

	msgAlreadyRegistered = "このサーバーは既に登録済みです。"
	msgRegistered        = "このサーバーを登録しました。"
	msgNotRegistered     = "このサーバーは未登録です。"
	msgUnregistered      = "このサーバーの登録を解除しました。"

	msgInvalidUser     = "ユーザー指定が無効です。"
	msgFetchForbidden  = "メッセージを取得できませんでした（権限/設定を確認してください）。"
	msgFetchFailedFmt  = "メッセージ取得に失敗しました。（%d）"
	msgNoRecentMessage = "対象ユーザーの直近メッセージが見つかりませんでした。"

	msgURLMissing      = "URLが指定されていません。`https://discord.com/channels/...` を指定してください。"
	msgURLUnsupported  = "対応していないURL形式です。`https://discord.com/channels/{guild}/{channel}/{message}` を指定してください。"
	msgDMNotSupported  = "DMのメッセージは対象外です。"
	msgGuildOutOfScope = "このギルドのメッセージは対象外です。"
	msgMessageNotFound = "メッセージが見つかりませんでした。URLを確認してください。"
	msgEmptyBody       = "メッセージ本文が見つかりませんでした。"

	msgErrorFmt = "エラーが発生しました: %s"

	unknownUserName = "不明なユーザー"
)
