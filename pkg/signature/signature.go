package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// Header é o cabeçalho em que cal.com e Instantly enviam a assinatura
const Header = "X-Signature"

const prefix = "sha256="

var (
	ErrSecretMissing    = errors.New("hmac_secret_missing")
	ErrSignatureMissing = errors.New("signature_missing")
	ErrSignatureInvalid = errors.New("signature_invalid")
)

// Verifier valida a assinatura HMAC-SHA256 do corpo bruto de um webhook
type Verifier struct {
	secret []byte
	bypass bool
}

func NewVerifier(secret string, bypass bool) *Verifier {
	return &Verifier{secret: []byte(secret), bypass: bypass}
}

// Verify aceita "sha256=<hex>", "<hex>", "sha256=<base64>" ou "<base64>"; hex ignora maiúsculas
func (v *Verifier) Verify(body []byte, header string) error {
	if v.bypass {
		return nil
	}
	if len(v.secret) == 0 {
		return ErrSecretMissing
	}

	provided := strings.TrimSpace(header)
	provided = strings.TrimSpace(strings.TrimPrefix(provided, prefix))
	if provided == "" {
		return ErrSignatureMissing
	}

	digest := Sign(v.secret, body)

	expectedHex := hex.EncodeToString(digest)
	if subtle.ConstantTimeCompare([]byte(strings.ToLower(provided)), []byte(expectedHex)) == 1 {
		return nil
	}

	expectedB64 := base64.StdEncoding.EncodeToString(digest)
	if subtle.ConstantTimeCompare([]byte(provided), []byte(expectedB64)) == 1 {
		return nil
	}

	return ErrSignatureInvalid
}

func Sign(secret, body []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return mac.Sum(nil)
}

// SignHex devolve a assinatura no formato "sha256=<hex>" usado pelos clientes e testes
func SignHex(secret string, body []byte) string {
	return prefix + hex.EncodeToString(Sign([]byte(secret), body))
}
