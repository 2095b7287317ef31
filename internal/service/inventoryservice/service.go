package inventoryservice

import (
	"context"
	"fmt"

	"sweetshop/internal/domain"
	apperror "sweetshop/internal/errors"
	"sweetshop/internal/pkg/keylock"
	"sweetshop/internal/pkg/logger"
	"sweetshop/internal/pkg/money"
)

// SweetStore define o contrato que o Serviço de Inventário espera da camada de Persistência.
type SweetStore interface {
	FindByID(ctx context.Context, id string) (domain.Sweet, error)
	Save(ctx context.Context, sweet domain.Sweet) (domain.Sweet, error)
}

// Service aplica as transições de estoque (compra e reposição) sobre um doce.
// Cada transição é uma leitura seguida de uma escrita, serializadas por ID de doce.
type Service struct {
	repo   SweetStore
	locks  *keylock.Locker
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Inventário.
// locks pode ser compartilhado com outros serviços que alteram os mesmos doces.
func NewService(repo SweetStore, locks *keylock.Locker, logger logger.Logger) *Service {
	if locks == nil {
		locks = keylock.New()
	}
	return &Service{repo: repo, locks: locks, logger: logger}
}

// Purchase retira quantity unidades do estoque e calcula o valor total da compra.
// A quantidade não é validada aqui: quem chama garante quantity >= 1.
func (s *Service) Purchase(ctx context.Context, id string, quantity int) (domain.PurchaseResult, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	sweet, err := s.load(ctx, id)
	if err != nil {
		return domain.PurchaseResult{}, err
	}

	if sweet.Quantity < quantity {
		s.logger.Info("Compra recusada por estoque insuficiente.", map[string]interface{}{
			"sweet_id":  id,
			"requested": quantity,
			"available": sweet.Quantity,
		})
		return domain.PurchaseResult{}, apperror.NewInsufficientStockError(sweet.Quantity)
	}

	sweet.Quantity -= quantity
	total := money.Total(sweet.Price, quantity)

	saved, err := s.repo.Save(ctx, sweet)
	if err != nil {
		return domain.PurchaseResult{}, err
	}

	s.logger.Info("Compra registrada.", map[string]interface{}{
		"sweet_id":     id,
		"quantity":     quantity,
		"remaining":    saved.Quantity,
		"total_amount": total,
	})
	return domain.PurchaseResult{
		Sweet:       saved,
		Remaining:   saved.Quantity,
		TotalAmount: total,
	}, nil
}

// Restock soma quantity ao estoque atual do doce, sem teto.
func (s *Service) Restock(ctx context.Context, id string, quantity int) (domain.Sweet, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	sweet, err := s.load(ctx, id)
	if err != nil {
		return domain.Sweet{}, err
	}

	sweet.Quantity += quantity

	saved, err := s.repo.Save(ctx, sweet)
	if err != nil {
		return domain.Sweet{}, err
	}

	s.logger.Info("Estoque reposto.", map[string]interface{}{
		"sweet_id":     id,
		"added":        quantity,
		"new_quantity": saved.Quantity,
	})
	return saved, nil
}

func (s *Service) load(ctx context.Context, id string) (domain.Sweet, error) {
	sweet, err := s.repo.FindByID(ctx, id)
	if apperror.IsNotFound(err) {
		return domain.Sweet{}, apperror.NewNotFoundError(fmt.Sprintf("Doce com ID %s não encontrado.", id))
	}
	return sweet, err
}
