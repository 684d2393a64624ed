package domain

import "time"

// Category описывает категорию продукта
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewCategory(name string) *Category {
	return &Category{
		Name: name,
	}
}

// NewCategoryRef возвращает ссылку на категорию по ID без загрузки из хранилища.
// Существование категории проверяется только при записи.
func NewCategoryRef(id int64) *Category {
	return &Category{ID: id}
}

// IsNew сообщает, что категория ещё не сохранена.
func (c *Category) IsNew() bool {
	return c.ID == 0
}
