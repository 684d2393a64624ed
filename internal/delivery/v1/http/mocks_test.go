package http

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/stretchr/testify/mock"
)

type mockCategoryUC struct {
	mock.Mock
}

func (m *mockCategoryUC) ListPaged(ctx context.Context, req domain.PageRequest) (*domain.Page[usecase.CategoryDTO], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[usecase.CategoryDTO]), args.Error(1)
}

func (m *mockCategoryUC) GetByID(ctx context.Context, id int64) (*usecase.CategoryDTO, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CategoryDTO), args.Error(1)
}

func (m *mockCategoryUC) Create(ctx context.Context, dto *usecase.CategoryDTO) (*usecase.CategoryDTO, error) {
	args := m.Called(ctx, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CategoryDTO), args.Error(1)
}

func (m *mockCategoryUC) Update(ctx context.Context, id int64, dto *usecase.CategoryDTO) (*usecase.CategoryDTO, error) {
	args := m.Called(ctx, id, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CategoryDTO), args.Error(1)
}

func (m *mockCategoryUC) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockProductUC struct {
	mock.Mock
}

func (m *mockProductUC) ListPaged(ctx context.Context, req domain.PageRequest) (*domain.Page[usecase.ProductDTO], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[usecase.ProductDTO]), args.Error(1)
}

func (m *mockProductUC) GetByID(ctx context.Context, id int64) (*usecase.ProductDTO, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ProductDTO), args.Error(1)
}

func (m *mockProductUC) Create(ctx context.Context, dto *usecase.ProductDTO) (*usecase.ProductDTO, error) {
	args := m.Called(ctx, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ProductDTO), args.Error(1)
}

func (m *mockProductUC) Update(ctx context.Context, id int64, dto *usecase.ProductDTO) (*usecase.ProductDTO, error) {
	args := m.Called(ctx, id, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ProductDTO), args.Error(1)
}

func (m *mockProductUC) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
