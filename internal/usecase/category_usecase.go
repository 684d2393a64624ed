package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
)

// CategoryUseCase реализует бизнес-логику управления категориями.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	trManager    TxManager
	events       eventRecorder
	logger       logger.Logger
}

func NewCategoryUC(
	categoryRepo CategoryRepository,
	outboxRepo OutboxRepository,
	trManager TxManager,
	logger logger.Logger,
) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		trManager:    trManager,
		events:       eventRecorder{repo: outboxRepo},
		logger:       logger,
	}
}

// ListPaged возвращает страницу категорий. Метаданные страницы берутся из хранилища без изменений.
func (c *CategoryUseCase) ListPaged(ctx context.Context, req domain.PageRequest) (*domain.Page[CategoryDTO], error) {
	const op = "CategoryUseCase.ListPaged"

	var page *domain.Page[*domain.Category]
	err := c.trManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		page, err = c.categoryRepo.FindAllPaged(ctx, req)
		return err
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return domain.MapPage(page, NewCategoryDTO), nil
}

// GetByID возвращает категорию или e.ErrNotFound.
func (c *CategoryUseCase) GetByID(ctx context.Context, id int64) (*CategoryDTO, error) {
	const op = "CategoryUseCase.GetByID"

	var category *domain.Category
	err := c.trManager.DoReadOnly(ctx, func(ctx context.Context) error {
		found, ok, err := c.categoryRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return e.Wrap(fmt.Sprintf("category %d", id), e.ErrNotFound)
		}

		category = found
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	dto := NewCategoryDTO(category)
	return &dto, nil
}

// Create сохраняет новую категорию. ID из запроса игнорируется.
func (c *CategoryUseCase) Create(ctx context.Context, dto *CategoryDTO) (*CategoryDTO, error) {
	const op = "CategoryUseCase.Create"

	if err := validateCategory(dto); err != nil {
		return nil, e.Wrap(op, err)
	}

	var res CategoryDTO
	err := c.trManager.Do(ctx, func(ctx context.Context) error {
		saved, err := c.categoryRepo.Save(ctx, NewCategoryEntity(dto))
		if err != nil {
			return err
		}

		res = NewCategoryDTO(saved)
		return c.events.record(ctx, CategoryCreated, AggregateCategory, res.ID, newCategoryEventData(res))
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("category created: id=%d", res.ID)
	return &res, nil
}

// Update перезаписывает поля категории по ссылке без предварительной загрузки.
// Отсутствие записи обнаруживается при сохранении и возвращается как e.ErrNotFound.
func (c *CategoryUseCase) Update(ctx context.Context, id int64, dto *CategoryDTO) (*CategoryDTO, error) {
	const op = "CategoryUseCase.Update"

	if err := validateCategory(dto); err != nil {
		return nil, e.Wrap(op, err)
	}

	var res CategoryDTO
	err := c.trManager.Do(ctx, func(ctx context.Context) error {
		entity := c.categoryRepo.GetReference(id)
		copyCategoryDTO(dto, entity)

		saved, err := c.categoryRepo.Save(ctx, entity)
		if err != nil {
			return err
		}

		res = NewCategoryDTO(saved)
		return c.events.record(ctx, CategoryUpdated, AggregateCategory, res.ID, newCategoryEventData(res))
	})
	if err != nil {
		if errors.Is(err, e.ErrEntityMissing) {
			c.logger.Warnf("%s: %v", op, err)
			return nil, e.Wrap(op, e.Wrap(fmt.Sprintf("id not found %d", id), e.ErrNotFound))
		}
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("category updated: id=%d", res.ID)
	return &res, nil
}

// Delete удаляет категорию.
// Возвращает e.ErrNotFound, если категории нет, и e.ErrConflict, если на неё ссылаются продукты.
func (c *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	const op = "CategoryUseCase.Delete"

	err := c.trManager.Do(ctx, func(ctx context.Context) error {
		exists, err := c.categoryRepo.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return e.Wrap(fmt.Sprintf("id not found %d", id), e.ErrNotFound)
		}

		if err := c.categoryRepo.DeleteByID(ctx, id); err != nil {
			return err
		}

		return c.events.record(ctx, CategoryDeleted, AggregateCategory, id, nil)
	})
	if err != nil {
		if errors.Is(err, e.ErrReferentialIntegrity) {
			c.logger.Warnf("%s: %v", op, err)
			return e.Wrap(op, e.Wrap(fmt.Sprintf("category %d is referenced", id), e.ErrConflict))
		}
		return e.Wrap(op, err)
	}

	c.logger.Infof("category deleted: id=%d", id)
	return nil
}

func validateCategory(dto *CategoryDTO) error {
	if dto == nil || strings.TrimSpace(dto.Name) == "" {
		return e.ErrNameRequired
	}

	return nil
}
