package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
)

type CategoryUC interface {
	ListPaged(ctx context.Context, req domain.PageRequest) (*domain.Page[CategoryDTO], error)
	GetByID(ctx context.Context, id int64) (*CategoryDTO, error)
	Create(ctx context.Context, dto *CategoryDTO) (*CategoryDTO, error)
	Update(ctx context.Context, id int64, dto *CategoryDTO) (*CategoryDTO, error)
	Delete(ctx context.Context, id int64) error
}

type ProductUC interface {
	ListPaged(ctx context.Context, req domain.PageRequest) (*domain.Page[ProductDTO], error)
	GetByID(ctx context.Context, id int64) (*ProductDTO, error)
	Create(ctx context.Context, dto *ProductDTO) (*ProductDTO, error)
	Update(ctx context.Context, id int64, dto *ProductDTO) (*ProductDTO, error)
	Delete(ctx context.Context, id int64) error
}

// TxManager выполняет функцию в транзакции, переданной через контекст.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
