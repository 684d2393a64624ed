package pgdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/DRSN-tech/catalog-backend/pkg/postgres"
	"github.com/DRSN-tech/catalog-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testTimeout = 10 * time.Second

var testDate = time.Date(2020, 7, 14, 10, 0, 0, 0, time.UTC)

type testStore struct {
	pool       *pgxpool.Pool
	categories *CategoryRepo
	products   *ProductRepo
	outbox     *OutboxEventRepo
	tx         *tr.Manager
}

// newTestStore подключается к DATABASE_URL, применяет миграции и очищает таблицы каталога.
// Без DATABASE_URL тест пропускается. База должна быть отдельной, тестовой.
func newTestStore(t *testing.T) (context.Context, *testStore) {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set - skipping PostgreSQL store test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(ctx))

	migrations, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)

	db := postgres.NewPgDatabase(pool, &cfg.PGDBCfg{MigrationsPath: migrations}, dsn)
	require.NoError(t, db.RunMigrations(logger.Nop{}))

	_, err = pool.Exec(ctx, `TRUNCATE product_categories, products, categories, outbox_events RESTART IDENTITY CASCADE;`)
	require.NoError(t, err)

	catConv := converter.NewCategoryConverterImpl()

	return ctx, &testStore{
		pool:       pool,
		categories: NewCategoryRepo(pool, catConv),
		products:   NewProductRepo(pool, converter.NewProductConverterImpl(), catConv),
		outbox:     NewOutboxEventRepo(pool, converter.NewOutboxEventConverterImpl()),
		tx:         tr.NewManager(pool),
	}
}

func (s *testStore) category(ctx context.Context, t *testing.T, name string) int64 {
	t.Helper()

	saved, err := s.categories.Save(ctx, domain.NewCategory(name))
	require.NoError(t, err)
	return saved.ID
}

func (s *testStore) product(ctx context.Context, t *testing.T, name, price string, categoryIDs ...int64) int64 {
	t.Helper()

	p := domain.NewProduct(name, "desc", decimal.RequireFromString(price), "https://img/"+name+".png", testDate)
	p.ReplaceCategories(refs(categoryIDs...))

	saved, err := s.products.Save(ctx, p)
	require.NoError(t, err)
	return saved.ID
}

func (s *testStore) count(ctx context.Context, t *testing.T, table string) int64 {
	t.Helper()

	var n int64
	require.NoError(t, s.pool.QueryRow(ctx, `SELECT count(*) FROM `+table).Scan(&n))
	return n
}

func refs(ids ...int64) []*domain.Category {
	res := make([]*domain.Category, 0, len(ids))
	for _, id := range ids {
		res = append(res, domain.NewCategoryRef(id))
	}
	return res
}
