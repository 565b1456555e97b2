// Package llm 은 犯罪係数 분류 결과 모델과 백엔드 공통 계약을 담는다.
package llm

import "context"

// Result 는 분류 결과다. 생성 후 변경하지 않는다.
type Result struct {
	CrimeCoefficient float64 `json:"crime_coefficient"`
	Reason           string  `json:"reason"`
}

// Client 는 분류 백엔드 인터페이스다.
// 구현은 어떤 입력에 대해서도 에러를 반환하지 않고 유효한 Result 로 수렴해야 한다.
type Client interface {
	AnalyzeCrimeCoefficient(ctx context.Context, message string) Result
}

// 사용자 노출 폴백 문구. 원문 메시지와 동일하게 유지한다.
const (
	ReasonEmptyInput     = "解析対象のメッセージが空でした。"
	ReasonAnalysisFailed = "解析に失敗しました。"
	ReasonFallback       = "理由の抽出に失敗しました。"
)

// MaxAttempts 는 백엔드 호출 시도 횟수 상한이다. 백오프 없이 연속 시도한다.
const MaxAttempts = 2
