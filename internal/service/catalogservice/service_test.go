package catalogservice_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sweetshop/internal/domain"
	apperror "sweetshop/internal/errors"
	"sweetshop/internal/pkg/logger"
	"sweetshop/internal/service/catalogservice"
)

type MockSweetReader struct {
	mock.Mock
}

func (m *MockSweetReader) FindByID(ctx context.Context, id string) (domain.Sweet, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Sweet), args.Error(1)
}

func (m *MockSweetReader) FindAll(ctx context.Context) ([]domain.Sweet, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Sweet), args.Error(1)
}

func (m *MockSweetReader) FindAvailable(ctx context.Context) ([]domain.Sweet, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Sweet), args.Error(1)
}

func (m *MockSweetReader) FindOutOfStock(ctx context.Context) ([]domain.Sweet, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Sweet), args.Error(1)
}

func (m *MockSweetReader) Search(ctx context.Context, filter domain.SweetFilter) ([]domain.Sweet, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Sweet), args.Error(1)
}

func ptr[T any](v T) *T { return &v }

func TestGetByID(t *testing.T) {
	repo := new(MockSweetReader)
	svc := catalogservice.NewService(repo, logger.NewNop())
	ctx := context.Background()
	sweet := domain.Sweet{ID: uuid.NewString(), Name: "Bombom", Quantity: 3}
	missing := uuid.NewString()

	repo.On("FindByID", ctx, sweet.ID).Return(sweet, nil)
	repo.On("FindByID", ctx, missing).Return(domain.Sweet{}, apperror.NewNotFoundError("sem linha"))

	got, err := svc.GetByID(ctx, sweet.ID)
	require.NoError(t, err)
	assert.Equal(t, sweet, got)

	_, err = svc.GetByID(ctx, missing)
	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), missing)
}

func TestListings(t *testing.T) {
	repo := new(MockSweetReader)
	svc := catalogservice.NewService(repo, logger.NewNop())
	ctx := context.Background()
	inStock := domain.Sweet{ID: "a", Quantity: 2}
	soldOut := domain.Sweet{ID: "b", Quantity: 0}

	repo.On("FindAll", ctx).Return([]domain.Sweet{inStock, soldOut}, nil)
	repo.On("FindAvailable", ctx).Return([]domain.Sweet{inStock}, nil)
	repo.On("FindOutOfStock", ctx).Return([]domain.Sweet{soldOut}, nil)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	available, err := svc.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Sweet{inStock}, available)

	out, err := svc.ListOutOfStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Sweet{soldOut}, out)
}

func TestSearch_DelegatesValidFilter(t *testing.T) {
	repo := new(MockSweetReader)
	svc := catalogservice.NewService(repo, logger.NewNop())
	ctx := context.Background()
	filter := domain.SweetFilter{Name: ptr("choc"), MinPrice: ptr(1.0), MaxPrice: ptr(5.0)}

	repo.On("Search", ctx, filter).Return([]domain.Sweet{{ID: "x"}}, nil).Once()

	result, err := svc.Search(ctx, filter)

	require.NoError(t, err)
	assert.Len(t, result, 1)
	repo.AssertExpectations(t)
}

func TestValidateFilter(t *testing.T) {
	tests := []struct {
		name    string
		filter  domain.SweetFilter
		wantErr bool
	}{
		{"sem filtros", domain.SweetFilter{}, false},
		{"mínimo zero", domain.SweetFilter{MinPrice: ptr(0.0)}, false},
		{"mínimo negativo", domain.SweetFilter{MinPrice: ptr(-1.0)}, true},
		{"máximo zero", domain.SweetFilter{MaxPrice: ptr(0.0)}, true},
		{"faixa invertida", domain.SweetFilter{MinPrice: ptr(10.0), MaxPrice: ptr(2.0)}, true},
		{"faixa igual", domain.SweetFilter{MinPrice: ptr(2.0), MaxPrice: ptr(2.0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catalogservice.ValidateFilter(tt.filter)
			if tt.wantErr {
				var vErr *apperror.ValidationError
				assert.ErrorAs(t, err, &vErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSearch_InvalidFilterSkipsStore(t *testing.T) {
	repo := new(MockSweetReader)
	svc := catalogservice.NewService(repo, logger.NewNop())

	_, err := svc.Search(context.Background(), domain.SweetFilter{MinPrice: ptr(-3.0)})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}
