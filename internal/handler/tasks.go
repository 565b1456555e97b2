package handler

import (
	"log/slog"

	"github.com/sourcegraph/conc"
)

// TaskTracker 는 지연 응답 이후의 백그라운드 작업을 추적한다.
// 취소 훅은 없다. 프로세스 종료 시 남은 작업을 기다리는 것이 전부다.
type TaskTracker struct {
	wg     conc.WaitGroup
	logger *slog.Logger
}

// NewTaskTracker 는 작업 추적기를 생성한다.
func NewTaskTracker(logger *slog.Logger) *TaskTracker {
	return &TaskTracker{logger: logger}
}

// Go 는 작업을 백그라운드로 실행한다.
func (t *TaskTracker) Go(fn func()) {
	t.wg.Go(fn)
}

// Wait 는 진행 중인 작업이 모두 끝날 때까지 막는다. 패닉은 로그로만 남긴다.
func (t *TaskTracker) Wait() {
	if recovered := t.wg.WaitAndRecover(); recovered != nil && t.logger != nil {
		t.logger.Error("background_task_panic", slog.String("panic", recovered.String()))
	}
}
