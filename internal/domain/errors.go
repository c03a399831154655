package domain

import (
	"errors"
	"fmt"
)

// Erros de validação
var (
	ErrInvalidJSON         = errors.New("Invalid JSON")
	ErrMissingField        = errors.New("missing field")
	ErrInvalidField        = errors.New("invalid field")
	ErrNoUpdatableFields   = errors.New("no updatable fields")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrInvalidReplyStatus  = errors.New("invalid reply status")
	ErrInvalidRelatedType  = errors.New("invalid related type")
	ErrMissingAttendeeMail = errors.New("Missing attendee email")
	ErrMissingLeadEmail    = errors.New("Missing lead.email")
)

// Erros de domínio
var (
	ErrDealNotFound           = errors.New("deal not found")
	ErrContactNotFound        = errors.New("contact not found")
	ErrStageNotFound          = errors.New("stage not found")
	ErrDefaultPipelineMissing = errors.New("pipeline_not_found_default")
	ErrWriteFailed            = errors.New("write failed")
	ErrDuplicateEvent         = errors.New("Duplicate event")
	ErrDatabaseOperation      = errors.New("database operation error")
)

// CRMError carrega o código de API junto do erro base, para o handler escolher o status HTTP
type CRMError struct {
	Err     error
	Code    string
	Details string
}

func (e *CRMError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CRMError) Unwrap() error {
	return e.Err
}

func NewCRMError(err error, code string, details string) *CRMError {
	return &CRMError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
