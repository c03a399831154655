package domain

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Patch guarda o corpo JSON cru de uma requisição, preservando a diferença entre
// chave ausente e chave com null
type Patch map[string]jsoniter.RawMessage

// ParsePatch decodifica o corpo; corpo vazio vira um Patch vazio
func ParsePatch(body []byte) (Patch, error) {
	patch := Patch{}
	if len(bytes.TrimSpace(body)) == 0 {
		return patch, nil
	}
	if err := json.Unmarshal(body, &patch); err != nil {
		return nil, ErrInvalidJSON
	}
	return patch, nil
}

// FieldError aponta a chave do Patch cujo valor não tem o tipo esperado
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return ErrInvalidField.Error() + ": " + e.Field
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidField
}

func (p Patch) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// IsNull indica chave presente com null; o json-iterator decodifica null como RawMessage vazio
func (p Patch) IsNull(key string) bool {
	raw, ok := p[key]
	if !ok {
		return false
	}
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// String devolve o valor de uma chave textual; ausente ou null devolve ""
func (p Patch) String(key string) (string, error) {
	value, err := p.OptionalString(key)
	if err != nil || value == nil {
		return "", err
	}
	return *value, nil
}

func (p Patch) OptionalString(key string) (*string, error) {
	if !p.Has(key) || p.IsNull(key) {
		return nil, nil
	}

	var value string
	if err := json.Unmarshal(p[key], &value); err != nil {
		return nil, &FieldError{Field: key}
	}
	return &value, nil
}

// Decimal aceita número ou string numérica
func (p Patch) Decimal(key string) (decimal.NullDecimal, error) {
	if !p.Has(key) || p.IsNull(key) {
		return decimal.NullDecimal{}, nil
	}

	var value decimal.Decimal
	if err := value.UnmarshalJSON(p[key]); err != nil {
		return decimal.NullDecimal{}, &FieldError{Field: key}
	}
	return decimal.NullDecimal{Decimal: value, Valid: true}, nil
}
