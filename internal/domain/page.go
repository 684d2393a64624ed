package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
)

// Direction — направление сортировки.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Sort описывает сортировку по одному полю.
type Sort struct {
	Field     string
	Direction Direction
}

// ParseSort разбирает строку вида "name" или "name,desc".
// Пустая строка означает отсутствие сортировки.
func ParseSort(s string) (*Sort, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	field, dir, _ := strings.Cut(s, ",")
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, e.Wrap(s, e.ErrInvalidSortField)
	}

	switch strings.ToUpper(strings.TrimSpace(dir)) {
	case "", string(Asc):
		return &Sort{Field: field, Direction: Asc}, nil
	case string(Desc):
		return &Sort{Field: field, Direction: Desc}, nil
	default:
		return nil, e.Wrap(fmt.Sprintf("direction %q", dir), e.ErrInvalidPageRequest)
	}
}

// PageRequest — запрос страницы. Page считается с нуля.
type PageRequest struct {
	Page int
	Size int
	Sort *Sort
}

// NewPageRequest проверяет параметры и собирает запрос страницы.
func NewPageRequest(page, size int, sort *Sort) (PageRequest, error) {
	if page < 0 {
		return PageRequest{}, e.Wrap(fmt.Sprintf("page %d", page), e.ErrInvalidPageRequest)
	}
	if size <= 0 {
		return PageRequest{}, e.Wrap(fmt.Sprintf("size %d", size), e.ErrInvalidPageRequest)
	}
	// Offset = page*size должен помещаться в int.
	if page > math.MaxInt/size {
		return PageRequest{}, e.Wrap(fmt.Sprintf("page %d with size %d", page, size), e.ErrInvalidPageRequest)
	}

	return PageRequest{Page: page, Size: size, Sort: sort}, nil
}

// Offset возвращает число пропускаемых записей.
func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// Page содержит страницу результатов вместе с метаданными хранилища.
type Page[T any] struct {
	Content       []T
	TotalElements int64
	Number        int
	Size          int
}

func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}

	return &Page[T]{
		Content:       content,
		TotalElements: total,
		Number:        req.Page,
		Size:          req.Size,
	}
}

// TotalPages возвращает общее число страниц.
func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}

	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

func (p *Page[T]) IsEmpty() bool {
	return len(p.Content) == 0
}

// MapPage преобразует содержимое страницы, не трогая метаданные.
func MapPage[T, R any](p *Page[T], fn func(T) R) *Page[R] {
	content := make([]R, 0, len(p.Content))
	for _, item := range p.Content {
		content = append(content, fn(item))
	}

	return &Page[R]{
		Content:       content,
		TotalElements: p.TotalElements,
		Number:        p.Number,
		Size:          p.Size,
	}
}
