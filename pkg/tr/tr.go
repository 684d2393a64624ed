package tr

import (
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/avito-tech/go-transaction-manager/trm/v2/settings"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Manager открывает транзакции PostgreSQL и кладёт их в контекст.
// Вложенные вызовы переиспользуют уже открытую транзакцию.
type Manager struct {
	trm      *manager.Manager
	readOnly trm.Settings
}

func NewManager(pool *pgxpool.Pool) *Manager {
	return &Manager{
		trm: manager.Must(trmpgx.NewDefaultFactory(pool)),
		readOnly: trmpgx.MustSettings(
			settings.Must(),
			trmpgx.WithTxOptions(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}),
		),
	}
}

// Do выполняет fn в read-write транзакции. Ошибка fn откатывает транзакцию.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.trm.Do(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции REPEATABLE READ, READ ONLY.
// Все запросы внутри fn видят один снимок, поэтому счётчик и страница согласованы.
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.trm.DoWithSettings(ctx, m.readOnly, fn)
}

// TxFromCtx возвращает транзакцию из контекста или пул, если транзакции нет.
func TxFromCtx(ctx context.Context, pool *pgxpool.Pool) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, pool)
}
