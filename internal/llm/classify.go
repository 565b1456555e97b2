package llm

import (
	"context"
	"log/slog"

	"github.com/park285/dominator-discord-go/internal/metrics"
)

// Attempt 는 백엔드 1회 호출이다. 응답 텍스트 또는 에러를 반환한다.
type Attempt func(ctx context.Context) (string, error)

// Classify 는 백엔드 공통 재시도 계약을 수행한다.
// 최대 MaxAttempts 회 시도하며, 시도 중 발생한 네트워크/파싱 에러는
// 루프를 중단하지 않는다. 끝까지 파싱에 실패하면 계수 0 의 폴백을 반환한다.
func Classify(
	ctx context.Context,
	logger *slog.Logger,
	store *metrics.Store,
	backend string,
	attempt Attempt,
) Result {
	for i := 1; i <= MaxAttempts; i++ {
		text, err := attempt(ctx)
		if err != nil {
			logger.Warn("llm_attempt_failed", "backend", backend, "attempt", i, "err", err)
			store.RecordLLMAttempt(backend, "error")
			continue
		}

		if parsed := ParseResult(text); parsed != nil {
			store.RecordLLMAttempt(backend, "ok")
			store.RecordClassification(backend, "ok")
			return *parsed
		}

		logger.Warn("llm_attempt_unparseable", "backend", backend, "attempt", i)
		store.RecordLLMAttempt(backend, "unparseable")
	}

	store.RecordClassification(backend, "fallback")
	return Result{CrimeCoefficient: 0, Reason: ReasonAnalysisFailed}
}
