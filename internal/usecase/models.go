package usecase

import (
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// CategoryDTO описывает категорию для внешних слоёв.
type CategoryDTO struct {
	ID   int64
	Name string
}

// ProductDTO — внешнее представление продукта.
// Categories == nil означает, что категории не запрашивались (облегчённая форма для списков).
type ProductDTO struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	ImgURL      string
	Date        time.Time
	Categories  []CategoryDTO
}

// WriteRawMessageReq содержит готовое к отправке сообщение брокера.
type WriteRawMessageReq struct {
	Key     []byte
	Payload []byte
}

// MAPPERS

func NewCategoryDTO(category *domain.Category) CategoryDTO {
	return CategoryDTO{
		ID:   category.ID,
		Name: category.Name,
	}
}

func NewCategoryDTOs(categories []*domain.Category) []CategoryDTO {
	res := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		res = append(res, NewCategoryDTO(c))
	}

	return res
}

// NewCategoryEntity собирает новую категорию из DTO. ID из DTO игнорируется.
func NewCategoryEntity(dto *CategoryDTO) *domain.Category {
	return domain.NewCategory(dto.Name)
}

// NewProductDTO строит облегчённое представление продукта без категорий.
func NewProductDTO(product *domain.Product) ProductDTO {
	return ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImgURL:      product.ImgURL,
		Date:        product.Date,
	}
}

func NewProductDTOs(products []*domain.Product) []ProductDTO {
	res := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		res = append(res, NewProductDTO(p))
	}

	return res
}

// NewProductDTOWithCategories строит полное представление продукта.
// Категории продукта должны быть загружены.
func NewProductDTOWithCategories(product *domain.Product) ProductDTO {
	dto := NewProductDTO(product)
	dto.Categories = NewCategoryDTOs(product.Categories())

	return dto
}

func copyCategoryDTO(dto *CategoryDTO, entity *domain.Category) {
	entity.Name = dto.Name
}

// copyProductDTO переносит скалярные поля. Категории синхронизирует ProductUseCase.
func copyProductDTO(dto *ProductDTO, entity *domain.Product) {
	entity.Name = dto.Name
	entity.Description = dto.Description
	entity.Price = dto.Price
	entity.ImgURL = dto.ImgURL
	entity.Date = dto.Date
}
