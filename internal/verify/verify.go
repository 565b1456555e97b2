// Package verify 는 Discord 인터랙션 웹훅의 Ed25519 서명 검증을 담당한다.
package verify

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrInvalidPublicKey 는 공개 키가 hex Ed25519 키가 아닐 때 반환된다.
var ErrInvalidPublicKey = errors.New("invalid ed25519 public key")

// Verifier 는 고정 공개 키로 요청 서명을 검증한다.
type Verifier struct {
	publicKey ed25519.PublicKey
}

// NewVerifier 는 hex 인코딩된 공개 키로 Verifier 를 생성한다.
func NewVerifier(publicKeyHex string) (*Verifier, error) {
	decoded, err := hex.DecodeString(strings.TrimSpace(publicKeyHex))
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, ErrInvalidPublicKey
	}
	return &Verifier{publicKey: ed25519.PublicKey(decoded)}, nil
}

// Verify 는 timestamp || body 에 대한 서명을 검증한다.
// 헤더 누락, 서명 디코딩 실패 등 모든 비정상 입력은 false 로 수렴한다.
func (v *Verifier) Verify(rawBody []byte, signatureHex string, timestamp string) bool {
	if v == nil || len(v.publicKey) != ed25519.PublicKeySize {
		return false
	}
	if strings.TrimSpace(signatureHex) == "" || strings.TrimSpace(timestamp) == "" {
		return false
	}

	signature, err := hex.DecodeString(signatureHex)
	if err != nil || len(signature) != ed25519.SignatureSize {
		return false
	}

	message := make([]byte, 0, len(timestamp)+len(rawBody))
	message = append(message, timestamp...)
	message = append(message, rawBody...)
	return ed25519.Verify(v.publicKey, message, signature)
}
