package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

// FindByID возвращает категорию по ID. Отсутствие записи не считается ошибкой.
func (c *CategoryRepo) FindByID(ctx context.Context, id int64) (*domain.Category, bool, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM categories
		WHERE id = $1;
	`

	var model converter.CategoryModel
	err := tr.TxFromCtx(ctx, c.pool).QueryRow(ctx, query, id).
		Scan(&model.ID, &model.Name, &model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), true, nil
}

// FindAllPaged возвращает страницу категорий и общее число записей.
func (c *CategoryRepo) FindAllPaged(ctx context.Context, req domain.PageRequest) (*domain.Page[*domain.Category], error) {
	orderBy, err := categorySortColumns.orderBy(req.Sort)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	db := tr.TxFromCtx(ctx, c.pool)

	var total int64
	if err := db.QueryRow(ctx, `SELECT count(*) FROM categories;`).Scan(&total); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, created_at, updated_at
		FROM categories
		%s
		LIMIT $1 OFFSET $2;
	`, orderBy)

	rows, err := db.Query(ctx, query, req.Size, req.Offset())
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	content := make([]*domain.Category, 0, req.Size)
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(&model.ID, &model.Name, &model.CreatedAt, &model.UpdatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		content = append(content, c.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return domain.NewPage(content, req, total), nil
}

// Save создаёт категорию, если у неё нет ID, иначе перезаписывает существующую.
// Обновление отсутствующей записи возвращает e.ErrEntityMissing.
func (c *CategoryRepo) Save(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	db := tr.TxFromCtx(ctx, c.pool)
	model := c.conv.ToModel(category)

	if category.IsNew() {
		query := `
			INSERT INTO categories (name) VALUES ($1)
			RETURNING id, name, created_at, updated_at;
		`

		if err := db.QueryRow(ctx, query, model.Name).
			Scan(&model.ID, &model.Name, &model.CreatedAt, &model.UpdatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		return c.conv.ToEntity(model), nil
	}

	query := `
		UPDATE categories
		SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, name, created_at, updated_at;
	`

	if err := db.QueryRow(ctx, query, model.Name, model.ID).
		Scan(&model.ID, &model.Name, &model.CreatedAt, &model.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(fmt.Sprintf("category %d", category.ID), e.ErrEntityMissing)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(model), nil
}

func (c *CategoryRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := tr.TxFromCtx(ctx, c.pool).
		QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1);`, id).
		Scan(&exists)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

// DeleteByID удаляет категорию. Если на неё ссылаются продукты, возвращает e.ErrReferentialIntegrity.
func (c *CategoryRepo) DeleteByID(ctx context.Context, id int64) error {
	if _, err := tr.TxFromCtx(ctx, c.pool).Exec(ctx, `DELETE FROM categories WHERE id = $1;`, id); err != nil {
		if postgresForeignKey(err) {
			return e.Wrap(fmt.Sprintf("category %d", id), e.ErrReferentialIntegrity)
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetReference возвращает ссылку на категорию без обращения к базе.
func (c *CategoryRepo) GetReference(id int64) *domain.Category {
	return domain.NewCategoryRef(id)
}
