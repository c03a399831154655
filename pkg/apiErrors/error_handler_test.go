package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, StatusFor(ErrWriteFailed))
	assert.Equal(t, http.StatusConflict, StatusFor(ErrDuplicateEvent))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(ErrSignatureMissing))
	assert.Equal(t, http.StatusForbidden, StatusFor(ErrSignatureInvalid))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(ErrSecretMissing))
	assert.Equal(t, http.StatusRequestEntityTooLarge, StatusFor(ErrPayloadTooLarge))
	assert.Equal(t, http.StatusInternalServerError, StatusFor("XYZ_999"))
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, ErrMissingRequiredData, "missing field", "Missing field: email")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":"VAL_002","message":"missing field","details":"Missing field: email"}`, rec.Body.String())
}
