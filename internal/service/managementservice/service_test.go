package managementservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sweetshop/internal/domain"
	apperror "sweetshop/internal/errors"
	"sweetshop/internal/pkg/logger"
	"sweetshop/internal/service/managementservice"
)

// MockSweetStore é uma implementação mock da interface SweetStore.
type MockSweetStore struct {
	mock.Mock
}

func (m *MockSweetStore) FindByID(ctx context.Context, id string) (domain.Sweet, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Sweet), args.Error(1)
}

func (m *MockSweetStore) Save(ctx context.Context, sweet domain.Sweet) (domain.Sweet, error) {
	args := m.Called(ctx, sweet)
	if fn, ok := args.Get(0).(func(domain.Sweet) domain.Sweet); ok {
		return fn(sweet), args.Error(1)
	}
	return args.Get(0).(domain.Sweet), args.Error(1)
}

func (m *MockSweetStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func echo(s domain.Sweet) domain.Sweet { return s }

func storedSweet() domain.Sweet {
	now := time.Now().UTC()
	return domain.Sweet{
		ID:        uuid.NewString(),
		Name:      "Pé de Moleque",
		Category:  "Amendoim",
		Price:     4.75,
		Quantity:  30,
		Version:   3,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func setup() (*MockSweetStore, *managementservice.Service) {
	repo := new(MockSweetStore)
	return repo, managementservice.NewService(repo, nil, logger.NewNop())
}

func TestAddSweet_Success(t *testing.T) {
	repo, svc := setup()
	ctx := context.Background()
	draft := domain.SweetDraft{Name: "Cocada", Category: "Coco", Price: 3.5, Quantity: 20}

	repo.On("Save", ctx, mock.MatchedBy(func(s domain.Sweet) bool {
		return s.ID == "" && s.Name == "Cocada" && s.Quantity == 20
	})).Return(func(s domain.Sweet) domain.Sweet {
		s.ID = uuid.NewString()
		s.CreatedAt = time.Now()
		return s
	}, nil).Once()

	created, err := svc.AddSweet(ctx, draft)

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Coco", created.Category)
	assert.Equal(t, 3.5, created.Price)
	repo.AssertExpectations(t)
}

func TestAddSweet_StoreFailure(t *testing.T) {
	repo, svc := setup()
	ctx := context.Background()
	storeErr := apperror.NewDBError("Falha ao inserir doce", errors.New("disco cheio"))

	repo.On("Save", ctx, mock.Anything).Return(domain.Sweet{}, storeErr).Once()

	_, err := svc.AddSweet(ctx, domain.SweetDraft{Name: "Cocada"})

	assert.Same(t, storeErr, err)
}

func TestUpdateSweet_OnlyNameKeepsOtherFields(t *testing.T) {
	repo, svc := setup()
	ctx := context.Background()
	original := storedSweet()
	newName := "Paçoca"

	repo.On("FindByID", ctx, original.ID).Return(original, nil).Once()
	repo.On("Save", ctx, mock.Anything).Return(echo, nil).Once()

	updated, err := svc.UpdateSweet(ctx, original.ID, &domain.SweetUpdate{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "Paçoca", updated.Name)
	assert.Equal(t, original.Category, updated.Category)
	assert.Equal(t, original.Price, updated.Price)
	assert.Equal(t, original.Quantity, updated.Quantity)
	repo.AssertExpectations(t)
}

func TestUpdateSweet_AllFields(t *testing.T) {
	repo, svc := setup()
	ctx := context.Background()
	original := storedSweet()
	name, category, price, quantity := "Quindim", "Ovos", 6.25, 0

	repo.On("FindByID", ctx, original.ID).Return(original, nil).Once()
	repo.On("Save", ctx, mock.Anything).Return(echo, nil).Once()

	updated, err := svc.UpdateSweet(ctx, original.ID, &domain.SweetUpdate{
		Name: &name, Category: &category, Price: &price, Quantity: &quantity,
	})

	require.NoError(t, err)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, category, updated.Category)
	assert.Equal(t, price, updated.Price)
	assert.Equal(t, 0, updated.Quantity)
}

func TestUpdateSweet_NilPartialDoesNotWrite(t *testing.T) {
	repo, svc := setup()
	ctx := context.Background()
	original := storedSweet()

	repo.On("FindByID", ctx, original.ID).Return(original, nil).Once()

	result, err := svc.UpdateSweet(ctx, original.ID, nil)

	require.NoError(t, err)
	assert.Equal(t, original, result)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateSweet_EmptyPartialStillSaves(t *testing.T) {
	repo, svc := setup()
	ctx := context.Background()
	original := storedSweet()

	repo.On("FindByID", ctx, original.ID).Return(original, nil).Once()
	repo.On("Save", ctx, original).Return(echo, nil).Once()

	result, err := svc.UpdateSweet(ctx, original.ID, &domain.SweetUpdate{})

	require.NoError(t, err)
	assert.Equal(t, original, result)
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestUpdateSweet_NotFound(t *testing.T) {
	repo, svc := setup()
	ctx := context.Background()
	id := uuid.NewString()
	name := "X"

	repo.On("FindByID", ctx, id).Return(domain.Sweet{}, apperror.NewNotFoundError("sem linha")).Once()

	_, err := svc.UpdateSweet(ctx, id, &domain.SweetUpdate{Name: &name})

	assert.True(t, apperror.IsNotFound(err))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateSweet_ConflictPropagates(t *testing.T) {
	repo, svc := setup()
	ctx := context.Background()
	original := storedSweet()
	conflict := apperror.NewConflictError("versão desatualizada")

	repo.On("FindByID", ctx, original.ID).Return(original, nil).Once()
	repo.On("Save", ctx, mock.Anything).Return(domain.Sweet{}, conflict).Once()

	_, err := svc.UpdateSweet(ctx, original.ID, &domain.SweetUpdate{})

	var conflictErr *apperror.ConflictError
	assert.True(t, errors.As(err, &conflictErr))
}

func TestDeleteSweet_Success(t *testing.T) {
	repo, svc := setup()
	ctx := context.Background()
	original := storedSweet()

	repo.On("FindByID", ctx, original.ID).Return(original, nil).Once()
	repo.On("Delete", ctx, original.ID).Return(nil).Once()

	err := svc.DeleteSweet(ctx, original.ID)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteSweet_NotFoundNeverDeletes(t *testing.T) {
	repo, svc := setup()
	ctx := context.Background()
	id := uuid.NewString()

	repo.On("FindByID", ctx, id).Return(domain.Sweet{}, apperror.NewNotFoundError("sem linha")).Once()

	err := svc.DeleteSweet(ctx, id)

	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), id)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
