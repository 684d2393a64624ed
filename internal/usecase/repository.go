package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
)

// CategoryRepository — хранилище категорий.
// Отсутствие записи при сохранении ссылки сигнализируется e.ErrEntityMissing,
// отказ в удалении из-за внешних ссылок сигнализируется e.ErrReferentialIntegrity.
type CategoryRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Category, bool, error)
	FindAllPaged(ctx context.Context, req domain.PageRequest) (*domain.Page[*domain.Category], error)
	Save(ctx context.Context, category *domain.Category) (*domain.Category, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
	GetReference(id int64) *domain.Category
}

// ProductRepository — хранилище продуктов.
// FindByID загружает категории продукта, FindAllPaged их не загружает.
// Save пишет скалярные поля и заменяет набор категорий целиком.
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, bool, error)
	FindAllPaged(ctx context.Context, req domain.PageRequest) (*domain.Page[*domain.Product], error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
	GetReference(id int64) *domain.Product
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	ResetStuck(ctx context.Context, olderThan time.Duration) (int64, error)
}
