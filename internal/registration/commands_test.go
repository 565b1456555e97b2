package registration

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/park285/dominator-discord-go/internal/config"
	"github.com/park285/dominator-discord-go/internal/discord"
	"github.com/park285/dominator-discord-go/internal/metrics"
)

func TestCommandDefinitions(t *testing.T) {
	commands := Commands()
	if len(commands) != 4 {
		t.Fatalf("expected 4 commands, got %d", len(commands))
	}

	byName := map[string]discord.ApplicationCommand{}
	for _, command := range commands {
		if command.Name == "" || command.Description == "" {
			t.Errorf("command missing name or description: %+v", command)
		}
		byName[command.Name] = command
	}

	dominate := byName["dominate"]
	if len(dominate.Options) != 1 || dominate.Options[0].Type != discord.OptionTypeUser || !dominate.Options[0].Required {
		t.Errorf("unexpected dominate options: %+v", dominate.Options)
	}

	byURL := byName["dominate_with_message_url"]
	if len(byURL.Options) != 1 || byURL.Options[0].Type != discord.OptionTypeString || !byURL.Options[0].Required {
		t.Errorf("unexpected dominate_with_message_url options: %+v", byURL.Options)
	}

	for _, name := range []string{"register", "unregister"} {
		if len(byName[name].Options) != 0 {
			t.Errorf("expected no options for %s", name)
		}
	}
}

func TestRegisterBulkOverwrites(t *testing.T) {
	var received []discord.ApplicationCommand
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/applications/app-1/commands" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode commands: %v", err)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := discord.NewClient(config.DiscordConfig{
		ApplicationID: "app-1",
		BotToken:      "bot-token",
		APIBaseURL:    server.URL,
	}, metrics.NewStore(), logger)

	if err := Register(context.Background(), client, logger); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(received) != 4 {
		t.Fatalf("expected 4 commands sent, got %d", len(received))
	}
}

func TestRegisterPropagatesFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := discord.NewClient(config.DiscordConfig{
		ApplicationID: "app-1",
		BotToken:      "bot-token",
		APIBaseURL:    server.URL,
	}, metrics.NewStore(), logger)

	if err := Register(context.Background(), client, logger); err == nil {
		t.Fatalf("expected error on rejected registration")
	}
}
