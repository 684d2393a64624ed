package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// ProductUseCase реализует бизнес-логику управления продуктами и их категориями.
type ProductUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	trManager    TxManager
	events       eventRecorder
	logger       logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	outboxRepo OutboxRepository,
	trManager TxManager,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		trManager:    trManager,
		events:       eventRecorder{repo: outboxRepo},
		logger:       logger,
	}
}

// ListPaged возвращает страницу продуктов в облегчённой форме, без категорий.
func (p *ProductUseCase) ListPaged(ctx context.Context, req domain.PageRequest) (*domain.Page[ProductDTO], error) {
	const op = "ProductUseCase.ListPaged"

	var page *domain.Page[*domain.Product]
	err := p.trManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		page, err = p.productRepo.FindAllPaged(ctx, req)
		return err
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &domain.Page[ProductDTO]{
		Content:       NewProductDTOs(page.Content),
		TotalElements: page.TotalElements,
		Number:        page.Number,
		Size:          page.Size,
	}, nil
}

// GetByID возвращает продукт вместе с категориями или e.ErrNotFound.
func (p *ProductUseCase) GetByID(ctx context.Context, id int64) (*ProductDTO, error) {
	const op = "ProductUseCase.GetByID"

	var product *domain.Product
	err := p.trManager.DoReadOnly(ctx, func(ctx context.Context) error {
		found, ok, err := p.productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return e.Wrap(fmt.Sprintf("product %d", id), e.ErrNotFound)
		}

		product = found
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	dto := NewProductDTOWithCategories(product)
	return &dto, nil
}

// Create сохраняет новый продукт и его набор категорий.
// Несуществующая категория в запросе возвращается как e.ErrNotFound.
func (p *ProductUseCase) Create(ctx context.Context, dto *ProductDTO) (*ProductDTO, error) {
	const op = "ProductUseCase.Create"

	if err := validateProduct(dto); err != nil {
		return nil, e.Wrap(op, err)
	}

	var res ProductDTO
	err := p.trManager.Do(ctx, func(ctx context.Context) error {
		entity := &domain.Product{}
		p.dtoToEntity(dto, entity)

		saved, err := p.productRepo.Save(ctx, entity)
		if err != nil {
			return err
		}

		res = NewProductDTO(saved)
		return p.events.record(ctx, ProductCreated, AggregateProduct, res.ID, newProductEventData(res, saved.CategoryIDs()))
	})
	if err != nil {
		if errors.Is(err, e.ErrEntityMissing) {
			p.logger.Warnf("%s: %v", op, err)
			return nil, e.Wrap(op, e.Wrap("category not found", e.ErrNotFound))
		}
		return nil, e.Wrap(op, err)
	}

	p.logger.Infof("product created: id=%d", res.ID)
	return &res, nil
}

// Update изменяет существующий продукт на месте и заменяет его набор категорий.
// Отсутствие продукта или одной из категорий возвращается как e.ErrNotFound.
func (p *ProductUseCase) Update(ctx context.Context, id int64, dto *ProductDTO) (*ProductDTO, error) {
	const op = "ProductUseCase.Update"

	if err := validateProduct(dto); err != nil {
		return nil, e.Wrap(op, err)
	}

	var res ProductDTO
	err := p.trManager.Do(ctx, func(ctx context.Context) error {
		entity := p.productRepo.GetReference(id)
		p.dtoToEntity(dto, entity)

		saved, err := p.productRepo.Save(ctx, entity)
		if err != nil {
			return err
		}

		res = NewProductDTO(saved)
		return p.events.record(ctx, ProductUpdated, AggregateProduct, res.ID, newProductEventData(res, saved.CategoryIDs()))
	})
	if err != nil {
		if errors.Is(err, e.ErrEntityMissing) {
			p.logger.Warnf("%s: %v", op, err)
			return nil, e.Wrap(op, e.Wrap(fmt.Sprintf("id not found %d", id), e.ErrNotFound))
		}
		return nil, e.Wrap(op, err)
	}

	p.logger.Infof("product updated: id=%d", res.ID)
	return &res, nil
}

// Delete удаляет продукт. Категории продукта не удаляются.
func (p *ProductUseCase) Delete(ctx context.Context, id int64) error {
	const op = "ProductUseCase.Delete"

	err := p.trManager.Do(ctx, func(ctx context.Context) error {
		exists, err := p.productRepo.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return e.Wrap(fmt.Sprintf("id not found %d", id), e.ErrNotFound)
		}

		if err := p.productRepo.DeleteByID(ctx, id); err != nil {
			return err
		}

		return p.events.record(ctx, ProductDeleted, AggregateProduct, id, nil)
	})
	if err != nil {
		if errors.Is(err, e.ErrReferentialIntegrity) {
			p.logger.Warnf("%s: %v", op, err)
			return e.Wrap(op, e.Wrap(fmt.Sprintf("product %d is referenced", id), e.ErrConflict))
		}
		return e.Wrap(op, err)
	}

	p.logger.Infof("product deleted: id=%d", id)
	return nil
}

// dtoToEntity копирует скалярные поля и заменяет набор категорий ссылками на категории из запроса.
func (p *ProductUseCase) dtoToEntity(dto *ProductDTO, entity *domain.Product) {
	copyProductDTO(dto, entity)

	refs := make([]*domain.Category, 0, len(dto.Categories))
	for _, cat := range dto.Categories {
		refs = append(refs, p.categoryRepo.GetReference(cat.ID))
	}

	entity.ReplaceCategories(refs)
}

func validateProduct(dto *ProductDTO) error {
	if dto == nil || strings.TrimSpace(dto.Name) == "" {
		return e.ErrNameRequired
	}

	if dto.Price.LessThan(decimal.Zero) {
		return e.ErrInvalidPrice
	}

	// Цена хранится как NUMERIC(14,2): лишние знаки были бы молча округлены.
	if !dto.Price.Equal(dto.Price.Truncate(2)) {
		return e.ErrPricePrecision
	}

	return nil
}
