package handler

import (
	"fmt"
	"strconv"

	"github.com/park285/dominator-discord-go/internal/llm"
)

// 집행 모드 라벨.
const (
	modeLethalEliminator   = "Lethal Eliminator"
	modeNonLethalParalyzer = "Non-Lethal Paralyzer"
	modeNoTarget           = "執行対象外"
	modeImmune             = "執行対象外(免罪体質者)"
	modeUnknown            = "不明"
)

// ExecutionMode 는 犯罪係数 구간을 집행 모드 라벨로 사상한다.
// 정확히 300 은 어느 구간에도 속하지 않아 不明 이 된다. 운영 중인 판정표 그대로다.
func ExecutionMode(coefficient float64) string {
	switch {
	case coefficient > 300:
		return modeLethalEliminator
	case coefficient >= 100 && coefficient <= 299:
		return modeNonLethalParalyzer
	case coefficient > 0 && coefficient < 100:
		return modeNoTarget
	case coefficient == 0:
		return modeImmune
	default:
		return modeUnknown
	}
}

func formatCoefficient(coefficient float64) string {
	return strconv.FormatFloat(coefficient, 'f', -1, 64)
}

// formatUserResult 는 /dominate 결과 메시지를 만든다.
func formatUserResult(username string, result llm.Result) string {
	return fmt.Sprintf(
		"**犯罪係数測定結果**\n\n対象ユーザー: %s\n犯罪係数: %s\n執行モード: %s\n\n**判定理由**\n%s",
		username,
		formatCoefficient(result.CrimeCoefficient),
		ExecutionMode(result.CrimeCoefficient),
		result.Reason,
	)
}

// formatURLResult 는 /dominate_with_message_url 결과 메시지를 만든다.
func formatURLResult(sourceURL, authorName string, result llm.Result) string {
	return fmt.Sprintf(
		"**犯罪係数測定結果**\n\n対象メッセージ: %s\n投稿者: %s\n犯罪係数: %s\n執行モード: %s\n\n**判定理由**\n%s",
		sourceURL,
		authorName,
		formatCoefficient(result.CrimeCoefficient),
		ExecutionMode(result.CrimeCoefficient),
		result.Reason,
	)
}
