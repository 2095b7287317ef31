package managementservice

import (
	"context"
	"fmt"

	"sweetshop/internal/domain"
	apperror "sweetshop/internal/errors"
	"sweetshop/internal/pkg/keylock"
	"sweetshop/internal/pkg/logger"
)

// SweetStore define o contrato que o Serviço de Gestão espera da camada de Persistência.
type SweetStore interface {
	FindByID(ctx context.Context, id string) (domain.Sweet, error)
	Save(ctx context.Context, sweet domain.Sweet) (domain.Sweet, error)
	Delete(ctx context.Context, id string) error
}

// Service cria, atualiza e remove doces do catálogo.
type Service struct {
	repo   SweetStore
	locks  *keylock.Locker
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Gestão.
func NewService(repo SweetStore, locks *keylock.Locker, logger logger.Logger) *Service {
	if locks == nil {
		locks = keylock.New()
	}
	return &Service{repo: repo, locks: locks, logger: logger}
}

// AddSweet persiste um novo doce. ID e timestamps são atribuídos pelo store.
func (s *Service) AddSweet(ctx context.Context, draft domain.SweetDraft) (domain.Sweet, error) {
	created, err := s.repo.Save(ctx, draft.ToSweet())
	if err != nil {
		return domain.Sweet{}, err
	}

	s.logger.Info("Doce cadastrado.", map[string]interface{}{"sweet_id": created.ID, "name": created.Name})
	return created, nil
}

// UpdateSweet aplica a atualização parcial: somente os campos presentes sobrescrevem o valor armazenado.
// Com partial nil o doce é devolvido sem escrita; com partial não nil sempre há um Save,
// mesmo que nenhum campo mude.
func (s *Service) UpdateSweet(ctx context.Context, id string, partial *domain.SweetUpdate) (domain.Sweet, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	sweet, err := s.load(ctx, id)
	if err != nil {
		return domain.Sweet{}, err
	}
	if partial == nil {
		return sweet, nil
	}

	applyUpdate(&sweet, partial)

	saved, err := s.repo.Save(ctx, sweet)
	if err != nil {
		return domain.Sweet{}, err
	}

	s.logger.Info("Doce atualizado.", map[string]interface{}{"sweet_id": saved.ID})
	return saved, nil
}

// DeleteSweet remove o doce permanentemente. O store só é chamado se o doce existir.
func (s *Service) DeleteSweet(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Doce removido.", map[string]interface{}{"sweet_id": id})
	return nil
}

func applyUpdate(sweet *domain.Sweet, partial *domain.SweetUpdate) {
	if partial.Name != nil {
		sweet.Name = *partial.Name
	}
	if partial.Category != nil {
		sweet.Category = *partial.Category
	}
	if partial.Price != nil {
		sweet.Price = *partial.Price
	}
	if partial.Quantity != nil {
		sweet.Quantity = *partial.Quantity
	}
}

func (s *Service) load(ctx context.Context, id string) (domain.Sweet, error) {
	sweet, err := s.repo.FindByID(ctx, id)
	if apperror.IsNotFound(err) {
		return domain.Sweet{}, apperror.NewNotFoundError(fmt.Sprintf("Doce com ID %s não encontrado.", id))
	}
	return sweet, err
}
