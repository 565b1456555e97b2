package verify

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"testing"
)

func newTestVerifier(t *testing.T) (*Verifier, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	verifier, err := NewVerifier(hex.EncodeToString(pub))
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	return verifier, priv
}

func sign(priv ed25519.PrivateKey, timestamp string, body []byte) string {
	message := append([]byte(timestamp), body...)
	return hex.EncodeToString(ed25519.Sign(priv, message))
}

func TestNewVerifierRejectsBadKeys(t *testing.T) {
	if _, err := NewVerifier("zz"); err == nil {
		t.Fatalf("expected error for non-hex key")
	}
	if _, err := NewVerifier("abcd"); err == nil {
		t.Fatalf("expected error for short key")
	}
}

func TestVerifyValidSignature(t *testing.T) {
	verifier, priv := newTestVerifier(t)
	body := []byte(`{"type":1}`)
	timestamp := "1700000000"

	if !verifier.Verify(body, sign(priv, timestamp, body), timestamp) {
		t.Fatalf("expected valid signature to pass")
	}
}

func TestVerifyFailsClosed(t *testing.T) {
	verifier, priv := newTestVerifier(t)
	body := []byte(`{"type":1}`)
	timestamp := "1700000000"
	signature := sign(priv, timestamp, body)

	tests := []struct {
		name      string
		body      []byte
		signature string
		timestamp string
	}{
		{"missing signature", body, "", timestamp},
		{"missing timestamp", body, signature, ""},
		{"blank headers", body, "  ", "  "},
		{"non-hex signature", body, "not-hex!", timestamp},
		{"truncated signature", body, signature[:16], timestamp},
		{"tampered body", []byte(`{"type":2}`), signature, timestamp},
		{"tampered timestamp", body, signature, "1700000001"},
	}

	for _, tc := range tests {
		if verifier.Verify(tc.body, tc.signature, tc.timestamp) {
			t.Errorf("%s: expected verification to fail", tc.name)
		}
	}
}

func TestVerifyWrongKey(t *testing.T) {
	verifier, _ := newTestVerifier(t)
	_, otherPriv := func() (ed25519.PublicKey, ed25519.PrivateKey) {
		pub, priv, _ := ed25519.GenerateKey(rand.Reader)
		return pub, priv
	}()

	body := []byte(strings.Repeat("a", 128))
	if verifier.Verify(body, sign(otherPriv, "123", body), "123") {
		t.Fatalf("expected signature from another key to fail")
	}
}
