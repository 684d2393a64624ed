package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает продукт и владеет набором связанных категорий.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	ImgURL      string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time

	categories []*Category
}

func NewProduct(name, description string, price decimal.Decimal, imgURL string, date time.Time) *Product {
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		ImgURL:      imgURL,
		Date:        date,
	}
}

// NewProductRef возвращает ссылку на продукт по ID без загрузки из хранилища.
func NewProductRef(id int64) *Product {
	return &Product{ID: id}
}

// IsNew сообщает, что продукт ещё не сохранён.
func (p *Product) IsNew() bool {
	return p.ID == 0
}

// Categories возвращает текущий набор категорий продукта.
func (p *Product) Categories() []*Category {
	return p.categories
}

// CategoryIDs возвращает идентификаторы категорий продукта.
func (p *Product) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(p.categories))
	for _, c := range p.categories {
		ids = append(ids, c.ID)
	}

	return ids
}

// ReplaceCategories полностью заменяет набор категорий продукта.
// Повторяющиеся ID схлопываются, побеждает первое вхождение. nil пропускается.
func (p *Product) ReplaceCategories(categories []*Category) {
	seen := make(map[int64]struct{}, len(categories))
	replaced := make([]*Category, 0, len(categories))
	for _, c := range categories {
		if c == nil {
			continue
		}
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		replaced = append(replaced, c)
	}

	p.categories = replaced
}
