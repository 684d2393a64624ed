package pgdb

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Коды ошибок PostgreSQL.
const (
	foreignKeyViolationCode = "23503"
	uniqueViolationCode     = "23505"
	checkViolationCode      = "23514"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// postgresForeignKey сообщает, что запись ссылается на отсутствующую строку
// или удаляемая строка всё ещё используется.
func postgresForeignKey(err error) bool {
	return pgErrorCode(err) == foreignKeyViolationCode
}

func postgresDuplicate(err error) bool {
	return pgErrorCode(err) == uniqueViolationCode
}

func postgresCheck(err error) bool {
	return pgErrorCode(err) == checkViolationCode
}

// pgErrorDetail возвращает DETAIL ошибки PostgreSQL, например
// "Key (category_id)=(7) is not present in table "categories"."
func pgErrorDetail(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Detail
	}

	return ""
}
