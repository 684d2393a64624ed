package pgdb

import (
	"fmt"
	"strings"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
)

// sortColumns сопоставляет имя поля сортировки из запроса с колонкой таблицы.
// Ключи в нижнем регистре: поля сравниваются без учёта регистра.
type sortColumns map[string]string

var (
	categorySortColumns = sortColumns{
		"id":   "id",
		"name": "name",
	}

	productSortColumns = sortColumns{
		"id":    "id",
		"name":  "name",
		"price": "price",
		"date":  "date",
	}
)

// orderBy строит ORDER BY для запроса страницы. Без сортировки записи упорядочиваются по id,
// при сортировке по другому полю id добавляется вторым ключом, чтобы страницы не пересекались.
func (s sortColumns) orderBy(sort *domain.Sort) (string, error) {
	if sort == nil {
		return "ORDER BY id ASC", nil
	}

	column, ok := s[strings.ToLower(sort.Field)]
	if !ok {
		return "", e.Wrap(fmt.Sprintf("field %q", sort.Field), e.ErrInvalidSortField)
	}

	dir := domain.Asc
	if sort.Direction == domain.Desc {
		dir = domain.Desc
	}

	if column == "id" {
		return fmt.Sprintf("ORDER BY id %s", dir), nil
	}

	return fmt.Sprintf("ORDER BY %s %s, id ASC", column, dir), nil
}
