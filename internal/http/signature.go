package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifySignature reports whether sigHeader is a valid X-Hub-Signature-256
// for body under appSecret. Header format: "sha256=<hex>". The HMAC is
// computed over the exact bytes received; re-encoding the JSON first would
// break verification on key order or whitespace.
func VerifySignature(appSecret string, body []byte, sigHeader string) bool {
	const prefix = "sha256="
	if !strings.HasPrefix(sigHeader, prefix) {
		return false
	}
	provided, err := hex.DecodeString(sigHeader[len(prefix):])
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	return hmac.Equal(provided, mac.Sum(nil))
}
