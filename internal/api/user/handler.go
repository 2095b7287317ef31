package user

import (
	"context"
	"net/http"

	"sweetshop/internal/domain"
	"sweetshop/internal/pkg/httpx"
	"sweetshop/internal/pkg/logger"
)

// UserService define o contrato para as operações de registro e login.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error)
	Login(ctx context.Context, email string, password string) (domain.LoginResult, error)
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RegisterUserHandler lida com a requisição POST /api/auth/register.
// @Summary Registra um novo usuário
// @Description Cria um novo usuário com papel USER, hasheia a senha e salva no banco de dados.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Credenciais de registro (email e senha)"
// @Success 201 {object} domain.APIResponse{data=domain.User} "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido, e-mail malformado ou senha fraca"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/auth/register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := httpx.DecodeJSON(r, &reg); err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}

	newUser, err := h.Service.Register(r.Context(), reg)
	if err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}

	// O PasswordHash não sai no JSON (tag `json:"-"`).
	httpx.WriteSuccess(w, h.Logger, http.StatusCreated, "Usuário registrado com sucesso.", newUser)
}

// LoginUserHandler lida com a requisição POST /api/auth/login.
// @Summary Autentica um usuário e retorna um JWT
// @Description Recebe email/senha, verifica a validade e emite um JSON Web Token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Credenciais do usuário (email e senha)"
// @Success 200 {object} domain.APIResponse{data=domain.LoginResult} "Token JWT emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/auth/login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var loginReq LoginRequest
	if err := httpx.DecodeJSON(r, &loginReq); err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}

	result, err := h.Service.Login(r.Context(), loginReq.Email, loginReq.Password)
	if err != nil {
		httpx.WriteError(w, r, h.Logger, err)
		return
	}

	httpx.WriteSuccess(w, h.Logger, http.StatusOK, "Login realizado com sucesso.", result)
}
