package converter

import (
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/shopspring/decimal"
)

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
type CategoryConverter interface {
	ToModel(entity *domain.Category) *CategoryModel
	ToEntity(model *CategoryModel) *domain.Category
}

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
// Набор категорий в модель не входит: он хранится в product_categories.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) (*domain.Product, error)
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type CategoryConverterImpl struct{}

func NewCategoryConverterImpl() *CategoryConverterImpl {
	return &CategoryConverterImpl{}
}

func (c *CategoryConverterImpl) ToModel(entity *domain.Category) *CategoryModel {
	if entity == nil {
		return nil
	}

	return &CategoryModel{
		ID:        entity.ID,
		Name:      entity.Name,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: ConvertPointerTime(entity.UpdatedAt),
	}
}

func (c *CategoryConverterImpl) ToEntity(model *CategoryModel) *domain.Category {
	if model == nil {
		return nil
	}

	return &domain.Category{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: ConvertPointerTime(model.UpdatedAt),
	}
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (p *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	if entity == nil {
		return nil
	}

	return &ProductModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		Price:       entity.Price.String(),
		ImgURL:      entity.ImgURL,
		Date:        entity.Date,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   ConvertPointerTime(entity.UpdatedAt),
	}
}

func (p *ProductConverterImpl) ToEntity(model *ProductModel) (*domain.Product, error) {
	const op = "ProductConverterImpl.ToEntity"

	if model == nil {
		return nil, nil
	}

	price, err := decimal.NewFromString(model.Price)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &domain.Product{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Price:       price,
		ImgURL:      model.ImgURL,
		Date:        model.Date,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   ConvertPointerTime(model.UpdatedAt),
	}, nil
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl {
	return &OutboxEventConverterImpl{}
}

func (o *OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	if entity == nil {
		return nil
	}

	return &OutboxEventModel{
		ID:            entity.ID,
		EventID:       entity.EventID,
		EventType:     string(entity.EventType),
		AggregateType: entity.AggregateType,
		AggregateID:   entity.AggregateID,
		Payload:       entity.Payload,
		Status:        string(entity.Status),
		CreatedAt:     entity.CreatedAt,
		ProcessedAt:   ConvertPointerTime(entity.ProcessedAt),
	}
}

func (o *OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	if model == nil {
		return nil
	}

	return &usecase.OutboxEvent{
		ID:            model.ID,
		EventID:       model.EventID,
		EventType:     usecase.OutboxEventType(model.EventType),
		AggregateType: model.AggregateType,
		AggregateID:   model.AggregateID,
		Payload:       model.Payload,
		Status:        usecase.OutboxStatus(model.Status),
		CreatedAt:     model.CreatedAt,
		ProcessedAt:   ConvertPointerTime(model.ProcessedAt),
	}
}

func (o *OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	if models == nil {
		return nil
	}

	res := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		res = append(res, o.ToEntity(m))
	}

	return res
}

// ConvertPointerTime копирует необязательную метку времени, чтобы модель и сущность не делили указатель.
func ConvertPointerTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	v := *t
	return &v
}
