package sweet

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	"sweetshop/internal/domain"
	apperror "sweetshop/internal/errors"
	"sweetshop/internal/pkg/httpx"
	"sweetshop/internal/pkg/logger"
	"sweetshop/internal/pkg/middleware"
)

// CatalogService define as consultas que o Handler espera da camada de Serviço.
type CatalogService interface {
	ListAll(ctx context.Context) ([]domain.Sweet, error)
	GetByID(ctx context.Context, id string) (domain.Sweet, error)
	ListAvailable(ctx context.Context) ([]domain.Sweet, error)
	ListOutOfStock(ctx context.Context) ([]domain.Sweet, error)
	Search(ctx context.Context, filter domain.SweetFilter) ([]domain.Sweet, error)
}

// ManagementService define as operações de escrita do catálogo.
type ManagementService interface {
	AddSweet(ctx context.Context, draft domain.SweetDraft) (domain.Sweet, error)
	UpdateSweet(ctx context.Context, id string, partial *domain.SweetUpdate) (domain.Sweet, error)
	DeleteSweet(ctx context.Context, id string) error
}

// Handler agrupa todos os métodos de Handler de doces.
type Handler struct {
	Catalog    CatalogService
	Management ManagementService
	Logger     logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando os Services e o Logger.
func NewHandler(catalog CatalogService, management ManagementService, log logger.Logger) *Handler {
	return &Handler{
		Catalog:    catalog,
		Management: management,
		Logger:     log,
	}
}

// ListSweetsHandler lida com a requisição GET /api/sweets.
// @Summary Lista todos os doces
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.APIResponse{data=[]domain.Sweet}
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/sweets [get]
func (h *Handler) ListSweetsHandler(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, "Doces listados com sucesso.", h.Catalog.ListAll)
}

// ListAvailableHandler lida com a requisição GET /api/sweets/available.
// @Summary Lista os doces com estoque
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.APIResponse{data=[]domain.Sweet}
// @Router /api/sweets/available [get]
func (h *Handler) ListAvailableHandler(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, "Doces disponíveis listados com sucesso.", h.Catalog.ListAvailable)
}

// ListOutOfStockHandler lida com a requisição GET /api/sweets/not-available.
// @Summary Lista os doces esgotados
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.APIResponse{data=[]domain.Sweet}
// @Router /api/sweets/not-available [get]
func (h *Handler) ListOutOfStockHandler(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, "Doces esgotados listados com sucesso.", h.Catalog.ListOutOfStock)
}

func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, message string, list func(context.Context) ([]domain.Sweet, error)) {
	sweets, err := list(r.Context())
	if err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}
	httpx.WriteSuccess(w, h.Logger, http.StatusOK, message, sweets)
}

// SearchSweetsHandler lida com a requisição GET /api/sweets/search.
// @Summary Busca doces por nome, categoria e faixa de preço
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Param name query string false "Parte do nome (sem diferenciar maiúsculas)"
// @Param category query string false "Categoria exata (sem diferenciar maiúsculas)"
// @Param minPrice query number false "Preço mínimo"
// @Param maxPrice query number false "Preço máximo"
// @Success 200 {object} domain.APIResponse{data=[]domain.Sweet}
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Router /api/sweets/search [get]
func (h *Handler) SearchSweetsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}

	sweets, err := h.Catalog.Search(r.Context(), filter)
	if err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}
	httpx.WriteSuccess(w, h.Logger, http.StatusOK, "Busca realizada com sucesso.", sweets)
}

// GetSweetHandler lida com a requisição GET /api/sweets/{id}.
// @Summary Busca um doce pelo ID
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do doce (UUID)"
// @Success 200 {object} domain.APIResponse{data=domain.Sweet}
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Doce não encontrado"
// @Router /api/sweets/{id} [get]
func (h *Handler) GetSweetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}

	sweet, err := h.Catalog.GetByID(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}
	httpx.WriteSuccess(w, h.Logger, http.StatusOK, "Doce encontrado.", sweet)
}

// CreateSweetHandler lida com a requisição POST /api/sweets.
// @Summary Cadastra um novo doce
// @Tags sweets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sweet body domain.SweetDraft true "Dados do doce"
// @Success 201 {object} domain.APIResponse{data=domain.Sweet}
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 403 {object} domain.ErrorResponse "Apenas ADMIN"
// @Router /api/sweets [post]
func (h *Handler) CreateSweetHandler(w http.ResponseWriter, r *http.Request) {
	var draft domain.SweetDraft
	if err := httpx.DecodeJSON(r, &draft); err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Category = strings.TrimSpace(draft.Category)
	if err := ValidateDraft(draft); err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}

	if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
		h.Logger.Info("Cadastro de doce solicitado.", map[string]interface{}{"user_id": claims.UserID, "name": draft.Name})
	}

	created, err := h.Management.AddSweet(r.Context(), draft)
	if err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}
	httpx.WriteSuccess(w, h.Logger, http.StatusCreated, "Doce cadastrado com sucesso.", created)
}

// UpdateSweetHandler lida com a requisição PUT /api/sweets/{id}.
// Corpo ausente ou null não altera o doce; campos omitidos mantêm o valor atual.
// @Summary Atualiza parcialmente um doce
// @Tags sweets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do doce (UUID)"
// @Param sweet body domain.SweetUpdate false "Campos a alterar"
// @Success 200 {object} domain.APIResponse{data=domain.Sweet}
// @Failure 400 {object} domain.ErrorResponse "Payload ou ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Doce não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Modificação concorrente"
// @Router /api/sweets/{id} [put]
func (h *Handler) UpdateSweetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}

	var partial *domain.SweetUpdate
	if _, err := httpx.DecodeOptionalJSON(r, &partial); err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}
	if err := ValidateUpdate(partial); err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}

	updated, err := h.Management.UpdateSweet(r.Context(), id, partial)
	if err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}
	httpx.WriteSuccess(w, h.Logger, http.StatusOK, "Doce atualizado com sucesso.", updated)
}

// DeleteSweetHandler lida com a requisição DELETE /api/sweets/{id}.
// @Summary Remove um doce
// @Tags sweets
// @Security BearerAuth
// @Param id path string true "ID do doce (UUID)"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse "Doce não encontrado"
// @Router /api/sweets/{id} [delete]
func (h *Handler) DeleteSweetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}

	if err := h.Management.DeleteSweet(r.Context(), id); err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}
	httpx.WriteSuccess(w, h.Logger, http.StatusNoContent, "", nil)
}

// parseFilter lê os filtros opcionais da query string.
func parseFilter(r *http.Request) (domain.SweetFilter, error) {
	q := r.URL.Query()
	var filter domain.SweetFilter

	if v := strings.TrimSpace(q.Get("name")); v != "" {
		filter.Name = &v
	}
	if v := strings.TrimSpace(q.Get("category")); v != "" {
		filter.Category = &v
	}

	var err error
	if filter.MinPrice, err = parsePrice(q.Get("minPrice"), "minPrice"); err != nil {
		return domain.SweetFilter{}, err
	}
	if filter.MaxPrice, err = parsePrice(q.Get("maxPrice"), "maxPrice"); err != nil {
		return domain.SweetFilter{}, err
	}
	return filter, nil
}

func parsePrice(raw, param string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apperror.NewValidationError("O parâmetro " + param + " deve ser numérico.")
	}
	return &v, nil
}
