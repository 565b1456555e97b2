package llm

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts/*.yml
var promptsFS embed.FS

const promptPath = "prompts/classify.yml"

// Prompt 는 분류 프롬프트 템플릿이다. 모든 백엔드가 공유한다.
type Prompt struct {
	template string
}

// NewPrompt 는 내장 YAML 에서 프롬프트 템플릿을 로드한다.
func NewPrompt() (*Prompt, error) {
	data, err := fs.ReadFile(promptsFS, promptPath)
	if err != nil {
		return nil, fmt.Errorf("read prompt file: %w", err)
	}

	var mapping map[string]string
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("parse prompt yaml: %w", err)
	}

	template := mapping["template"]
	if strings.TrimSpace(template) == "" {
		return nil, errors.New("prompt template is empty")
	}
	if !strings.Contains(template, "{message}") {
		return nil, errors.New("prompt template missing {message} placeholder")
	}

	return &Prompt{template: template}, nil
}

// Build 는 사용자 메시지를 구분자 안에 삽입한 프롬프트를 만든다.
func (p *Prompt) Build(message string) string {
	return strings.ReplaceAll(p.template, "{message}", message)
}
