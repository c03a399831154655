package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro expostos pela API do CRM
const (
	// Erros de autenticação
	ErrInvalidToken          = "AUTH_001" // Token ausente ou inválido
	ErrExpiredToken          = "AUTH_002" // Token expirado
	ErrInsufficientPrivilege = "AUTH_003" // Papel sem permissão para a rota

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Campo obrigatório ausente
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido (JSON, e-mail, ...)

	// Erros do domínio CRM
	ErrNotFound       = "CRM_001" // Registro não encontrado
	ErrWriteFailed    = "CRM_002" // Falha ao gravar no banco
	ErrDuplicateEvent = "CRM_003" // Chave de idempotência já processada

	// Erros de webhooks
	ErrSignatureMissing = "WH_001" // Cabeçalho de assinatura ausente
	ErrSignatureInvalid = "WH_002" // Assinatura HMAC não confere
	ErrSecretMissing    = "WH_003" // Segredo HMAC não configurado

	// Erros do servidor
	ErrInternalServer    = "SRV_001"
	ErrDatabaseOperation = "SRV_002"
	ErrExternalService   = "SRV_003"
	ErrCommunication     = "SRV_004"

	ErrNotFoundRoute    = "HTTP_404"
	ErrMethodNotAllowed = "HTTP_405"
	ErrPayloadTooLarge  = "HTTP_413"
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrNotFound:              http.StatusNotFound,
	ErrWriteFailed:           http.StatusForbidden,
	ErrDuplicateEvent:        http.StatusConflict,
	ErrSignatureMissing:      http.StatusUnauthorized,
	ErrSignatureInvalid:      http.StatusForbidden,
	ErrSecretMissing:         http.StatusInternalServerError,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
	ErrNotFoundRoute:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrPayloadTooLarge:       http.StatusRequestEntityTooLarge,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor retorna o status HTTP associado ao código, ou 500 quando desconhecido
func StatusFor(code string) int {
	if status, exists := httpStatusMap[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}
