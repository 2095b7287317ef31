package userservice

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"sweetshop/internal/domain"
	apperror "sweetshop/internal/errors"
	"sweetshop/internal/pkg/logger"
)

// UserRepository é o contrato de persistência de usuários.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string, userRole string) (string, error)
}

// Caracteres especiais aceitos na senha.
const passwordSpecials = "#@$!%*?&"

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo UserRepository
	TokenSvc TokenService
	logger   logger.Logger
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo UserRepository, tokenSvc TokenService, logger logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		TokenSvc: tokenSvc,
		logger:   logger,
	}
}

// Register registra um novo usuário com o papel USER.
// Ele faz o hashing da senha e valida formato do e-mail e força da senha.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	email := normalizeEmail(registration.Email)
	if err := ValidateCredentials(email, registration.Password); err != nil {
		return domain.User{}, err
	}
	return s.create(ctx, email, registration.Password, domain.RoleUser)
}

// Login autentica um usuário, verifica a senha e gera um JWT.
func (s *UserService) Login(ctx context.Context, email string, password string) (domain.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return domain.LoginResult{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		// NotFound vira Unauthorized para não revelar quais e-mails existem.
		if apperror.IsNotFound(err) {
			return domain.LoginResult{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return domain.LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("Senha incorreta no login.", map[string]interface{}{"user_id": user.ID})
		return domain.LoginResult{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	tokenString, err := s.TokenSvc.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return domain.LoginResult{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	s.logger.Info("Login realizado.", map[string]interface{}{"user_id": user.ID, "role": user.Role})
	return domain.LoginResult{Token: tokenString, UserID: user.ID, Role: user.Role}, nil
}

// EnsureAdmin garante que exista uma conta ADMIN com o e-mail informado.
// É idempotente: uma conta já existente não é alterada.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.UserRepo.FindByEmail(ctx, email)
	if err == nil {
		if existing.Role != domain.RoleAdmin {
			s.logger.Warn("Conta de administrador configurada já existe sem o papel ADMIN.", map[string]interface{}{"email": email})
		}
		return nil
	}
	if !apperror.IsNotFound(err) {
		return err
	}

	if err := ValidateCredentials(email, password); err != nil {
		return err
	}
	if _, err := s.create(ctx, email, password, domain.RoleAdmin); err != nil {
		var conflict *apperror.ConflictError
		if errors.As(err, &conflict) {
			return nil
		}
		return err
	}

	s.logger.Info("Conta de administrador criada.", map[string]interface{}{"email": email})
	return nil
}

func (s *UserService) create(ctx context.Context, email, password string, role domain.UserRole) (domain.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	return s.UserRepo.Save(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	})
}

// ValidateCredentials verifica o formato do e-mail e a força da senha:
// ao menos 8 caracteres, com maiúscula, minúscula, dígito e um de #@$!%*?&.
func ValidateCredentials(email, password string) error {
	if email == "" || password == "" {
		return apperror.NewValidationError("Email e senha são obrigatórios.")
	}
	if !emailPattern.MatchString(email) {
		return apperror.NewValidationError("Formato de e-mail inválido.")
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	if len(password) < 8 || !upper || !lower || !digit || !special {
		return apperror.NewValidationError("A senha deve ter ao menos 8 caracteres, com letra maiúscula, letra minúscula, número e um caractere especial (#@$!%*?&).")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
