package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/park285/dominator-discord-go/internal/metrics"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassifyFirstParseableWins(t *testing.T) {
	calls := 0
	result := Classify(context.Background(), discardLogger(), metrics.NewStore(), "test",
		func(ctx context.Context) (string, error) {
			calls++
			return `{"crime_coefficient": 120, "reason": "ok"}`, nil
		})

	if calls != 1 {
		t.Fatalf("expected single attempt, got %d", calls)
	}
	if result.CrimeCoefficient != 120 || result.Reason != "ok" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestClassifyRetriesOnUnparseable(t *testing.T) {
	calls := 0
	result := Classify(context.Background(), discardLogger(), metrics.NewStore(), "test",
		func(ctx context.Context) (string, error) {
			calls++
			if calls == 1 {
				return "これはJSONではない", nil
			}
			return `{"crime_coefficient": "5", "reason": "retry"}`, nil
		})

	if calls != 2 {
		t.Fatalf("expected two attempts, got %d", calls)
	}
	if result.CrimeCoefficient != 5 || result.Reason != "retry" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestClassifyErrorsDoNotAbort(t *testing.T) {
	calls := 0
	result := Classify(context.Background(), discardLogger(), metrics.NewStore(), "test",
		func(ctx context.Context) (string, error) {
			calls++
			if calls == 1 {
				return "", errors.New("network down")
			}
			return `{"crime_coefficient": 0, "reason": "recovered"}`, nil
		})

	if result.Reason != "recovered" {
		t.Fatalf("expected recovery on second attempt, got %+v", result)
	}
}

func TestClassifyTerminalFallback(t *testing.T) {
	calls := 0
	result := Classify(context.Background(), discardLogger(), metrics.NewStore(), "test",
		func(ctx context.Context) (string, error) {
			calls++
			return "", errors.New("always failing")
		})

	if calls != MaxAttempts {
		t.Fatalf("expected %d attempts, got %d", MaxAttempts, calls)
	}
	if result.CrimeCoefficient != 0 || result.Reason != ReasonAnalysisFailed {
		t.Fatalf("unexpected fallback: %+v", result)
	}
}
