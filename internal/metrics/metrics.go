// Package metrics 는 Prometheus 카운터를 관리한다.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Store 는 자체 레지스트리를 가진 메트릭 모음이다.
type Store struct {
	registry        *prometheus.Registry
	interactions    *prometheus.CounterVec
	classifications *prometheus.CounterVec
	llmAttempts     *prometheus.CounterVec
	restErrors      *prometheus.CounterVec
}

// NewStore 는 메트릭 스토어를 생성한다.
func NewStore() *Store {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(registry)

	return &Store{
		registry: registry,
		interactions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dominator_interactions_total",
			Help: "Inbound interactions by type and command name.",
		}, []string{"type", "name"}),
		classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dominator_classifications_total",
			Help: "Classification outcomes by backend.",
		}, []string{"backend", "outcome"}),
		llmAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dominator_llm_attempts_total",
			Help: "Individual LLM attempts by backend and result.",
		}, []string{"backend", "result"}),
		restErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dominator_discord_rest_errors_total",
			Help: "Discord REST failures by operation and status.",
		}, []string{"operation", "status"}),
	}
}

// RecordInteraction 은 수신 인터랙션을 기록한다.
func (s *Store) RecordInteraction(interactionType int, name string) {
	if s == nil {
		return
	}
	if name == "" {
		name = "-"
	}
	s.interactions.WithLabelValues(strconv.Itoa(interactionType), name).Inc()
}

// RecordClassification 은 분류 결과를 기록한다.
func (s *Store) RecordClassification(backend string, outcome string) {
	if s == nil {
		return
	}
	s.classifications.WithLabelValues(backend, outcome).Inc()
}

// RecordLLMAttempt 는 개별 LLM 시도를 기록한다.
func (s *Store) RecordLLMAttempt(backend string, result string) {
	if s == nil {
		return
	}
	s.llmAttempts.WithLabelValues(backend, result).Inc()
}

// RecordRESTError 는 Discord REST 실패를 기록한다.
func (s *Store) RecordRESTError(operation string, status int) {
	if s == nil {
		return
	}
	s.restErrors.WithLabelValues(operation, strconv.Itoa(status)).Inc()
}

// Handler 는 /metrics 용 HTTP 핸들러를 반환한다.
func (s *Store) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}
