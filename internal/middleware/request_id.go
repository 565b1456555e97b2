// Package middleware 는 공용 HTTP 미들웨어다.
package middleware

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-gonic/gin"
)

// RequestIDHeader 는 요청 ID 헤더 키다.
const RequestIDHeader = "X-Request-ID"

const (
	requestIDKey = "request_id"

	// 외부에서 들어오는 ID 는 로그 필드로 그대로 실리므로 길이를 제한한다.
	maxInboundIDLength = 64
)

// RequestID 는 요청 ID를 부여하는 미들웨어다. 서명 검증 실패처럼 핸들러가
// 중간에 요청을 끊어도 응답에 ID 가 실리도록 헤더를 먼저 기록한다.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxInboundIDLength {
			requestID = generateRequestID()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID 는 컨텍스트의 요청 ID 를 반환한다.
func GetRequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	requestID, ok := value.(string)
	if !ok {
		return ""
	}
	return requestID
}

func generateRequestID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}
	return hex.EncodeToString(bytes)
}
