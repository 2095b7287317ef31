package catalogservice

import (
	"context"
	"fmt"

	"sweetshop/internal/domain"
	apperror "sweetshop/internal/errors"
	"sweetshop/internal/pkg/logger"
)

// SweetReader define as consultas que o catálogo faz ao store.
type SweetReader interface {
	FindByID(ctx context.Context, id string) (domain.Sweet, error)
	FindAll(ctx context.Context) ([]domain.Sweet, error)
	FindAvailable(ctx context.Context) ([]domain.Sweet, error)
	FindOutOfStock(ctx context.Context) ([]domain.Sweet, error)
	Search(ctx context.Context, filter domain.SweetFilter) ([]domain.Sweet, error)
}

// Service expõe as consultas de leitura do catálogo de doces.
type Service struct {
	repo   SweetReader
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Catálogo.
func NewService(repo SweetReader, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Sweet, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) ListAvailable(ctx context.Context) ([]domain.Sweet, error) {
	return s.repo.FindAvailable(ctx)
}

func (s *Service) ListOutOfStock(ctx context.Context) ([]domain.Sweet, error) {
	return s.repo.FindOutOfStock(ctx)
}

// GetByID busca um doce; devolve NotFoundError quando o ID não existe.
func (s *Service) GetByID(ctx context.Context, id string) (domain.Sweet, error) {
	sweet, err := s.repo.FindByID(ctx, id)
	if apperror.IsNotFound(err) {
		return domain.Sweet{}, apperror.NewNotFoundError(fmt.Sprintf("Doce com ID %s não encontrado.", id))
	}
	return sweet, err
}

// Search valida a faixa de preço e delega a busca ao store.
func (s *Service) Search(ctx context.Context, filter domain.SweetFilter) ([]domain.Sweet, error) {
	if err := ValidateFilter(filter); err != nil {
		return nil, err
	}

	s.logger.Debug("Buscando doces.", map[string]interface{}{
		"has_name":      filter.Name != nil,
		"has_category":  filter.Category != nil,
		"has_min_price": filter.MinPrice != nil,
		"has_max_price": filter.MaxPrice != nil,
	})
	return s.repo.Search(ctx, filter)
}

// ValidateFilter aplica as regras de faixa de preço da busca.
func ValidateFilter(filter domain.SweetFilter) error {
	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		return apperror.NewValidationError("O preço mínimo não pode ser negativo.")
	}
	if filter.MaxPrice != nil && *filter.MaxPrice <= 0 {
		return apperror.NewValidationError("O preço máximo deve ser maior que zero.")
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return apperror.NewValidationError("O preço mínimo não pode ser maior que o preço máximo.")
	}
	return nil
}
