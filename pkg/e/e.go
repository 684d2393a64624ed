package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Сигналы хранилища. Переводятся в доменные ошибки на уровне usecase.
	ErrEntityMissing        = fmt.Errorf("entity missing")
	ErrReferentialIntegrity = fmt.Errorf("referential integrity violation")

	// 404 Not Found
	ErrNotFound = fmt.Errorf("entity not found")

	// 409 Conflict
	ErrConflict = fmt.Errorf("integrity violation")

	// 400 Bad Request
	ErrStatusBadRequest   = fmt.Errorf("bad request")
	ErrNameRequired       = fmt.Errorf("name is required")
	ErrInvalidPrice       = fmt.Errorf("price must be a non-negative decimal")
	ErrPricePrecision     = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidID          = fmt.Errorf("invalid id")
	ErrInvalidPageRequest = fmt.Errorf("invalid page request")
	ErrInvalidSortField   = fmt.Errorf("invalid sort field")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
