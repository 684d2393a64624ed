package http

import (
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/shopspring/decimal"
)

type categoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type categoryRefRequest struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Name string `json:"name,omitempty"`
}

type productRequest struct {
	Name        string               `json:"name" validate:"required,max=255"`
	Description string               `json:"description"`
	Price       decimal.Decimal      `json:"price"`
	ImgURL      string               `json:"imgUrl" validate:"omitempty,url"`
	Date        time.Time            `json:"date"`
	Categories  []categoryRefRequest `json:"categories" validate:"dive"`
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// productResponse — представление продукта. Categories отсутствует в облегчённой форме списка.
type productResponse struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	ImgURL      string              `json:"imgUrl"`
	Date        time.Time           `json:"date"`
	Categories  *[]categoryResponse `json:"categories,omitempty"`
}

type pageResponse[T any] struct {
	Content          []T   `json:"content"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

func newPageResponse[T, R any](page *domain.Page[T], fn func(T) R) pageResponse[R] {
	content := make([]R, 0, len(page.Content))
	for _, item := range page.Content {
		content = append(content, fn(item))
	}

	totalPages := page.TotalPages()

	return pageResponse[R]{
		Content:          content,
		TotalElements:    page.TotalElements,
		TotalPages:       totalPages,
		Number:           page.Number,
		Size:             page.Size,
		NumberOfElements: len(content),
		First:            page.Number == 0,
		Last:             page.Number >= totalPages-1,
		Empty:            len(content) == 0,
	}
}

func (r *categoryRequest) toDTO() *usecase.CategoryDTO {
	return &usecase.CategoryDTO{Name: r.Name}
}

func (r *productRequest) toDTO() *usecase.ProductDTO {
	categories := make([]usecase.CategoryDTO, 0, len(r.Categories))
	for _, c := range r.Categories {
		categories = append(categories, usecase.CategoryDTO{ID: c.ID, Name: c.Name})
	}

	return &usecase.ProductDTO{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImgURL:      r.ImgURL,
		Date:        r.Date,
		Categories:  categories,
	}
}

func newCategoryResponse(dto usecase.CategoryDTO) categoryResponse {
	return categoryResponse{ID: dto.ID, Name: dto.Name}
}

func newProductResponse(dto usecase.ProductDTO) productResponse {
	res := productResponse{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price,
		ImgURL:      dto.ImgURL,
		Date:        dto.Date,
	}

	if dto.Categories != nil {
		categories := make([]categoryResponse, 0, len(dto.Categories))
		for _, c := range dto.Categories {
			categories = append(categories, newCategoryResponse(c))
		}
		res.Categories = &categories
	}

	return res
}
