package llm

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ParseResult 는 모델 출력 텍스트에서 분류 결과를 추출한다.
// 전체 파싱이 실패하면 첫 '{' 와 마지막 '}' 사이의 부분 문자열을 한 번 더 시도한다.
// 마크다운 펜스나 전후 설명문이 섞인 출력을 허용하기 위한 2단계 추출이다.
func ParseResult(text string) *Result {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if result := tryParse([]byte(text)); result != nil {
		return result
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		if result := tryParse([]byte(text[start : end+1])); result != nil {
			return result
		}
	}
	return nil
}

// ExtractText 는 백엔드별로 이름이 다른 응답 필드에서 텍스트를 꺼낸다.
// 고정 순서의 후보 필드를 조회하고, 모두 없으면 응답 전체를 직렬화해 반환한다.
func ExtractText(raw any) string {
	if raw == nil {
		return ""
	}
	if text, ok := raw.(string); ok {
		return text
	}

	if obj, ok := raw.(map[string]any); ok {
		for _, field := range []string{"response", "output_text", "text"} {
			if text, ok := obj[field].(string); ok && text != "" {
				return text
			}
		}
		if result, ok := obj["result"].(map[string]any); ok {
			if text, ok := result["response"].(string); ok && text != "" {
				return text
			}
		}
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return ""
	}
	return string(data)
}

func tryParse(data []byte) *Result {
	var loose struct {
		CrimeCoefficient any `json:"crime_coefficient"`
		Reason           any `json:"reason"`
	}
	if err := json.Unmarshal(data, &loose); err != nil {
		return nil
	}
	if !recognizable(loose.CrimeCoefficient, loose.Reason) {
		return nil
	}
	result := normalize(loose.CrimeCoefficient, loose.Reason)
	return &result
}

// recognizable: coefficient 는 숫자 또는 숫자 문자열, reason 은 문자열 또는 숫자여야 한다.
func recognizable(coefficient any, reason any) bool {
	switch coefficient.(type) {
	case float64, string:
	default:
		return false
	}
	switch reason.(type) {
	case string, float64:
	default:
		return false
	}
	return true
}

func normalize(coefficient any, reason any) Result {
	value := 0.0
	switch c := coefficient.(type) {
	case float64:
		value = c
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(c), 64); err == nil {
			value = parsed
		}
	}

	text := ""
	switch r := reason.(type) {
	case string:
		text = strings.TrimSpace(r)
	case float64:
		text = strconv.FormatFloat(r, 'f', -1, 64)
	}
	if text == "" {
		text = ReasonFallback
	}

	return Result{CrimeCoefficient: value, Reason: text}
}
