// Package di 는 애플리케이션 의존성 조립을 담당한다.
package di

import (
	"log/slog"
	"net/http"

	"github.com/park285/dominator-discord-go/internal/config"
	"github.com/park285/dominator-discord-go/internal/guild"
	"github.com/park285/dominator-discord-go/internal/handler"
)

// App 은 애플리케이션 구성 요소를 묶는다.
type App struct {
	Server *http.Server
	Logger *slog.Logger
	Config *config.Config
	Guilds *guild.Service
	Tasks  *handler.TaskTracker
}

// NewApp 은 App 인스턴스를 생성한다.
func NewApp(
	server *http.Server,
	logger *slog.Logger,
	cfg *config.Config,
	guilds *guild.Service,
	tasks *handler.TaskTracker,
) *App {
	return &App{
		Server: server,
		Logger: logger,
		Config: cfg,
		Guilds: guilds,
		Tasks:  tasks,
	}
}

// Close 는 앱 리소스를 정리한다. 진행 중인 지연 작업을 먼저 기다린다.
func (a *App) Close() {
	if a.Tasks != nil {
		a.Tasks.Wait()
	}
	if a.Guilds != nil {
		a.Guilds.Close()
	}
}
