package inventory

import (
	"context"
	"net/http"

	"sweetshop/internal/domain"
	apperror "sweetshop/internal/errors"
	"sweetshop/internal/pkg/httpx"
	"sweetshop/internal/pkg/logger"
	"sweetshop/internal/pkg/middleware"
)

// InventoryService define o contrato que o Handler espera da camada de Serviço.
type InventoryService interface {
	Purchase(ctx context.Context, id string, quantity int) (domain.PurchaseResult, error)
	Restock(ctx context.Context, id string, quantity int) (domain.Sweet, error)
}

// Handler agrupa os handlers de compra e reposição.
type Handler struct {
	Service InventoryService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc InventoryService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// PurchaseHandler lida com a requisição POST /api/sweets/{id}/purchase.
// @Summary Compra unidades de um doce
// @Description Baixa o estoque e devolve o valor total (preço × quantidade, 2 casas decimais).
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do doce (UUID)"
// @Param purchase body domain.PurchaseRequest true "Quantidade (>= 1)"
// @Success 200 {object} domain.APIResponse{data=domain.PurchaseResult}
// @Failure 400 {object} domain.ErrorResponse "Payload ou ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Doce não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Estoque insuficiente"
// @Router /api/sweets/{id}/purchase [post]
func (h *Handler) PurchaseHandler(w http.ResponseWriter, r *http.Request) {
	id, quantity, err := h.readRequest(r)
	if err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}

	if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
		h.Logger.Debug("Compra solicitada.", map[string]interface{}{"user_id": claims.UserID, "sweet_id": id, "quantity": quantity})
	}

	result, err := h.Service.Purchase(r.Context(), id, quantity)
	if err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}
	httpx.WriteSuccess(w, h.Logger, http.StatusOK, "Compra realizada com sucesso.", result)
}

// RestockHandler lida com a requisição POST /api/sweets/{id}/restock.
// @Summary Repõe o estoque de um doce
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do doce (UUID)"
// @Param restock body domain.RestockRequest true "Quantidade (>= 1)"
// @Success 200 {object} domain.APIResponse{data=domain.Sweet}
// @Failure 400 {object} domain.ErrorResponse "Payload ou ID inválido"
// @Failure 403 {object} domain.ErrorResponse "Apenas ADMIN"
// @Failure 404 {object} domain.ErrorResponse "Doce não encontrado"
// @Router /api/sweets/{id}/restock [post]
func (h *Handler) RestockHandler(w http.ResponseWriter, r *http.Request) {
	id, quantity, err := h.readRequest(r)
	if err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}

	sweet, err := h.Service.Restock(r.Context(), id, quantity)
	if err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}
	httpx.WriteSuccess(w, h.Logger, http.StatusOK, "Estoque reposto com sucesso.", sweet)
}

// readRequest valida o ID da rota e a quantidade do corpo (mínimo 1).
func (h *Handler) readRequest(r *http.Request) (string, int, error) {
	id, err := httpx.PathUUID(r, "id")
	if err != nil {
		return "", 0, err
	}

	// PurchaseRequest e RestockRequest têm o mesmo formato.
	var req domain.PurchaseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return "", 0, err
	}
	if req.Quantity < 1 {
		return "", 0, apperror.NewValidationError("A quantidade deve ser no mínimo 1.")
	}
	return id, req.Quantity, nil
}
