package signature

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifier_Verify(t *testing.T) {
	const secret = "shh"
	body := []byte(`{"event":"reply","lead":{"email":"ana@acme.com"}}`)

	digest := Sign([]byte(secret), body)
	hexSig := hex.EncodeToString(digest)
	b64Sig := base64.StdEncoding.EncodeToString(digest)

	tests := []struct {
		name     string
		verifier *Verifier
		header   string
		want     error
	}{
		{name: "sha256= com hex", verifier: NewVerifier(secret, false), header: "sha256=" + hexSig},
		{name: "hex puro", verifier: NewVerifier(secret, false), header: hexSig},
		{name: "hex em maiúsculas", verifier: NewVerifier(secret, false), header: strings.ToUpper(hexSig)},
		{name: "sha256= com base64", verifier: NewVerifier(secret, false), header: "sha256=" + b64Sig},
		{name: "base64 puro", verifier: NewVerifier(secret, false), header: b64Sig},
		{name: "espaços ao redor", verifier: NewVerifier(secret, false), header: "  sha256=" + hexSig + " "},
		{name: "segredo ausente", verifier: NewVerifier("", false), header: hexSig, want: ErrSecretMissing},
		{name: "cabeçalho ausente", verifier: NewVerifier(secret, false), header: "", want: ErrSignatureMissing},
		{name: "somente prefixo", verifier: NewVerifier(secret, false), header: "sha256=", want: ErrSignatureMissing},
		{name: "assinatura errada", verifier: NewVerifier(secret, false), header: SignHex("outro", body), want: ErrSignatureInvalid},
		{name: "bypass de desenvolvimento", verifier: NewVerifier("", true), header: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.verifier.Verify(body, tt.header)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVerifier_TamperedBody(t *testing.T) {
	v := NewVerifier("shh", false)
	header := SignHex("shh", []byte(`{"a":1}`))

	assert.NoError(t, v.Verify([]byte(`{"a":1}`), header))
	assert.ErrorIs(t, v.Verify([]byte(`{"a":2}`), header), ErrSignatureInvalid)
}
