package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/tr"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productColumns = `id, name, description, price::text, img_url, date, created_at, updated_at`

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
// Связи с категориями хранятся в product_categories.
type ProductRepo struct {
	pool    *pgxpool.Pool
	conv    converter.ProductConverter
	catConv converter.CategoryConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter, catConv converter.CategoryConverter) *ProductRepo {
	return &ProductRepo{
		pool:    pool,
		conv:    conv,
		catConv: catConv,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, model *converter.ProductModel) error {
	return row.Scan(
		&model.ID, &model.Name, &model.Description, &model.Price,
		&model.ImgURL, &model.Date, &model.CreatedAt, &model.UpdatedAt,
	)
}

// FindByID возвращает продукт вместе с категориями.
func (p *ProductRepo) FindByID(ctx context.Context, id int64) (*domain.Product, bool, error) {
	db := tr.TxFromCtx(ctx, p.pool)

	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1;`, productColumns)

	var model converter.ProductModel
	if err := scanProduct(db.QueryRow(ctx, query, id), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	product, err := p.conv.ToEntity(&model)
	if err != nil {
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	categories, err := p.findCategories(ctx, db, id)
	if err != nil {
		return nil, false, err
	}
	product.ReplaceCategories(categories)

	return product, true, nil
}

func (p *ProductRepo) findCategories(ctx context.Context, db trmpgx.Tr, productID int64) ([]*domain.Category, error) {
	query := `
		SELECT c.id, c.name, c.created_at, c.updated_at
		FROM categories c
		JOIN product_categories pc ON pc.category_id = c.id
		WHERE pc.product_id = $1
		ORDER BY c.id;
	`

	rows, err := db.Query(ctx, query, productID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(&model.ID, &model.Name, &model.CreatedAt, &model.UpdatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		categories = append(categories, p.catConv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return categories, nil
}

// FindAllPaged возвращает страницу продуктов без категорий.
func (p *ProductRepo) FindAllPaged(ctx context.Context, req domain.PageRequest) (*domain.Page[*domain.Product], error) {
	orderBy, err := productSortColumns.orderBy(req.Sort)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	db := tr.TxFromCtx(ctx, p.pool)

	var total int64
	if err := db.QueryRow(ctx, `SELECT count(*) FROM products;`).Scan(&total); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		LIMIT $1 OFFSET $2;
	`, productColumns, orderBy)

	rows, err := db.Query(ctx, query, req.Size, req.Offset())
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	content := make([]*domain.Product, 0, req.Size)
	for rows.Next() {
		var model converter.ProductModel
		if err := scanProduct(rows, &model); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		product, err := p.conv.ToEntity(&model)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		content = append(content, product)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return domain.NewPage(content, req, total), nil
}

// Save записывает скалярные поля продукта и полностью заменяет набор его категорий.
// Отсутствующий продукт или категория возвращаются как e.ErrEntityMissing.
// Вызывается внутри транзакции: при ошибке связь и поля откатываются вместе.
func (p *ProductRepo) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	db := tr.TxFromCtx(ctx, p.pool)
	model := p.conv.ToModel(product)

	var err error
	if product.IsNew() {
		query := fmt.Sprintf(`
			INSERT INTO products (name, description, price, img_url, date)
			VALUES ($1, $2, $3::numeric, $4, $5)
			RETURNING %s;
		`, productColumns)

		err = scanProduct(db.QueryRow(ctx, query,
			model.Name, model.Description, model.Price, model.ImgURL, model.Date,
		), model)
	} else {
		query := fmt.Sprintf(`
			UPDATE products
			SET name = $1, description = $2, price = $3::numeric, img_url = $4, date = $5, updated_at = NOW()
			WHERE id = $6
			RETURNING %s;
		`, productColumns)

		err = scanProduct(db.QueryRow(ctx, query,
			model.Name, model.Description, model.Price, model.ImgURL, model.Date, model.ID,
		), model)
	}
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, e.Wrap(fmt.Sprintf("product %d", product.ID), e.ErrEntityMissing)
		case postgresCheck(err):
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidPrice)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	saved, err := p.conv.ToEntity(model)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := p.replaceCategories(ctx, db, saved.ID, product.CategoryIDs()); err != nil {
		return nil, err
	}
	saved.ReplaceCategories(product.Categories())

	return saved, nil
}

func (p *ProductRepo) replaceCategories(ctx context.Context, db trmpgx.Tr, productID int64, categoryIDs []int64) error {
	if _, err := db.Exec(ctx, `DELETE FROM product_categories WHERE product_id = $1;`, productID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if len(categoryIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO product_categories (product_id, category_id)
		SELECT $1, unnest($2::bigint[]);
	`

	if _, err := db.Exec(ctx, query, productID, categoryIDs); err != nil {
		if postgresForeignKey(err) {
			return e.Wrap(fmt.Sprintf("category of product %d: %s", productID, pgErrorDetail(err)), e.ErrEntityMissing)
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (p *ProductRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := tr.TxFromCtx(ctx, p.pool).
		QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1);`, id).
		Scan(&exists)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

// DeleteByID удаляет продукт. Связи с категориями удаляются каскадно, сами категории остаются.
func (p *ProductRepo) DeleteByID(ctx context.Context, id int64) error {
	if _, err := tr.TxFromCtx(ctx, p.pool).Exec(ctx, `DELETE FROM products WHERE id = $1;`, id); err != nil {
		if postgresForeignKey(err) {
			return e.Wrap(fmt.Sprintf("product %d", id), e.ErrReferentialIntegrity)
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetReference возвращает ссылку на продукт без обращения к базе.
func (p *ProductRepo) GetReference(id int64) *domain.Product {
	return domain.NewProductRef(id)
}
