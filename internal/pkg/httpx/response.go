// Package httpx concentra a escrita padronizada de respostas JSON,
// compartilhada por handlers e middlewares.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"sweetshop/internal/domain"
	apperror "sweetshop/internal/errors"
	"sweetshop/internal/pkg/logger"
)

// WriteJSON serializa body com o status informado.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(body)
}

// WriteSuccess escreve o envelope {message, data}.
// Para 204 nenhum corpo é enviado.
func WriteSuccess(w http.ResponseWriter, log logger.Logger, status int, message string, data interface{}) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	if err := WriteJSON(w, status, domain.APIResponse{Message: message, Data: data}); err != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}

// WriteError traduz o erro para status/categoria e escreve o corpo padronizado.
// Erros 5xx são registrados com a causa raiz; 4xx apenas em debug.
func WriteError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	resp := domain.ErrorResponse{Code: status, Category: category, Message: message}
	if encErr := WriteJSON(w, status, resp); encErr != nil {
		log.Error("Falha ao codificar JSON de erro", encErr)
	}
}

// DecodeJSON lê o corpo da requisição; JSON malformado vira ValidationError.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return nil
}

// DecodeOptionalJSON é como DecodeJSON, mas aceita corpo vazio.
// present é false quando nada foi enviado (dst fica intacto).
func DecodeOptionalJSON(r *http.Request, dst interface{}) (present bool, err error) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return true, nil
}

// PathUUID lê o parâmetro de rota name e exige que seja um UUID.
func PathUUID(r *http.Request, name string) (string, error) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperror.NewValidationError(fmt.Sprintf("O ID '%s' não é um UUID válido.", raw))
	}
	return id.String(), nil
}
