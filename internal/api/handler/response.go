package handler

import (
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"github.com/vfg2006/crm-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Corpo máximo aceito; payloads de webhooks ficam bem abaixo disso
const maxBodyBytes = 1 << 20

type okResponse map[string]any

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

func writeOK(w http.ResponseWriter, r *http.Request, fields okResponse) {
	body := okResponse{"status": "ok"}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, r, http.StatusOK, body)
}

// writeServiceError traduz os erros dos casos de uso para o formato padrão da API
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var crmErr *domain.CRMError
	if errors.As(err, &crmErr) {
		var details any
		if crmErr.Details != "" {
			details = crmErr.Details
		}
		apiErrors.WriteError(w, crmErr.Code, crmErr.Err.Error(), details)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro não mapeado")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Internal Error", nil)
}

// readBody lê o corpo inteiro ou responde com o erro; corpo acima do limite vira 413
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apiErrors.WriteError(w, apiErrors.ErrPayloadTooLarge, "Payload too large", nil)
			return nil, false
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler requisição", nil)
		return nil, false
	}
	return body, true
}

// readPatch lê o corpo preservando chaves com null; corpo vazio vira {}
func readPatch(w http.ResponseWriter, r *http.Request) (domain.Patch, bool) {
	body, ok := readBody(w, r)
	if !ok {
		return nil, false
	}

	patch, err := domain.ParsePatch(body)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, domain.ErrInvalidJSON.Error(), nil)
		return nil, false
	}
	return patch, true
}
