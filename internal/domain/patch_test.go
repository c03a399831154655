package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePatch(t *testing.T) {
	patch, err := ParsePatch(nil)
	require.NoError(t, err)
	assert.Empty(t, patch)

	_, err = ParsePatch([]byte("{not json"))
	assert.ErrorIs(t, err, ErrInvalidJSON)

	_, err = ParsePatch([]byte(`["array"]`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestPatch_Values(t *testing.T) {
	patch, err := ParsePatch([]byte(`{"title":"Acme","notes":null,"amount":"1200.10","price":99.5,"bad":7}`))
	require.NoError(t, err)

	title, err := patch.String("title")
	require.NoError(t, err)
	assert.Equal(t, "Acme", title)

	assert.True(t, patch.Has("notes"))
	assert.True(t, patch.IsNull("notes"))
	notes, err := patch.OptionalString("notes")
	require.NoError(t, err)
	assert.Nil(t, notes)

	missing, err := patch.String("missing")
	require.NoError(t, err)
	assert.Equal(t, "", missing)

	amount, err := patch.Decimal("amount")
	require.NoError(t, err)
	assert.Equal(t, "1200.1", amount.Decimal.String())

	price, err := patch.Decimal("price")
	require.NoError(t, err)
	assert.Equal(t, "99.5", price.Decimal.String())

	_, err = patch.String("bad")
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestPatch_NullEmChavesOpcionais(t *testing.T) {
	patch, err := ParsePatch([]byte(`{"title":"Acme","contact_id":null,"amount":null}`))
	require.NoError(t, err)

	assert.True(t, patch.IsNull("contact_id"))
	assert.False(t, patch.IsNull("title"))
	assert.False(t, patch.IsNull("ausente"))

	contactID, err := patch.OptionalString("contact_id")
	require.NoError(t, err)
	assert.Nil(t, contactID)

	amount, err := patch.Decimal("amount")
	require.NoError(t, err)
	assert.False(t, amount.Valid)
}

func TestFieldError(t *testing.T) {
	patch, err := ParsePatch([]byte(`{"amount":"abc"}`))
	require.NoError(t, err)

	_, err = patch.Decimal("amount")

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "amount", fieldErr.Field)
	assert.ErrorIs(t, err, ErrInvalidField)
	assert.Equal(t, "invalid field: amount", err.Error())
}
