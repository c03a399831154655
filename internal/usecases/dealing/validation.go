package dealing

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct traduz o primeiro erro do validator para a mensagem exposta pela API
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.NewCRMError(domain.ErrInvalidField, apiErrors.ErrInvalidRequest, err.Error())
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return domain.NewCRMError(domain.ErrMissingField, apiErrors.ErrMissingRequiredData, "Missing field: "+fe.Field())
	case "email":
		return domain.NewCRMError(domain.ErrInvalidEmail, apiErrors.ErrInvalidFormat, "Invalid email: "+fe.Value().(string))
	default:
		return domain.NewCRMError(domain.ErrInvalidField, apiErrors.ErrInvalidFormat, "Invalid field: "+fe.Field())
	}
}

// patchError converte erros de leitura do corpo em erros de validação
func patchError(err error) error {
	var fieldErr *domain.FieldError
	if errors.As(err, &fieldErr) {
		return domain.NewCRMError(domain.ErrInvalidField, apiErrors.ErrInvalidFormat, "Invalid field: "+fieldErr.Field)
	}
	return domain.NewCRMError(domain.ErrInvalidField, apiErrors.ErrInvalidFormat, "")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
