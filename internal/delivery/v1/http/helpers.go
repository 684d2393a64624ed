package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const maxRequestBodySize = 1 << 20

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ToHTTPResponse сопоставляет ошибку со статусом ответа и сообщением для клиента.
func ToHTTPResponse(err error) (int, string) {
	var vErrs validator.ValidationErrors

	switch {
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, e.ErrNotFound.Error()
	case errors.Is(err, e.ErrConflict):
		return http.StatusConflict, e.ErrConflict.Error()
	case errors.As(err, &vErrs):
		return http.StatusBadRequest, validationMessage(vErrs)
	case errors.Is(err, e.ErrNameRequired):
		return http.StatusBadRequest, e.ErrNameRequired.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrInvalidID):
		return http.StatusBadRequest, e.ErrInvalidID.Error()
	case errors.Is(err, e.ErrInvalidPageRequest):
		return http.StatusBadRequest, e.ErrInvalidPageRequest.Error()
	case errors.Is(err, e.ErrInvalidSortField):
		return http.StatusBadRequest, e.ErrInvalidSortField.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func validationMessage(vErrs validator.ValidationErrors) string {
	fields := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		fields = append(fields, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}

	return "validation failed: " + strings.Join(fields, ", ")
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON читает тело запроса и проверяет его теги validate.
// Неизвестные поля, в том числе id, игнорируются.
func decodeJSON(w http.ResponseWriter, r *http.Request, validate *validator.Validate, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}

	return validate.Struct(v)
}

// parseID читает положительный идентификатор из параметра пути {id}.
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Wrap(fmt.Sprintf("id %q", raw), e.ErrInvalidID)
	}

	return id, nil
}

// parsePageRequest разбирает параметры page, size и sort в стиле Spring Data:
// ?page=0&size=12&sort=name,desc.
func parsePageRequest(r *http.Request, paging *cfg.PagingCfg) (domain.PageRequest, error) {
	q := r.URL.Query()

	page, err := parseIntParam(q.Get("page"), 0)
	if err != nil {
		return domain.PageRequest{}, e.Wrap("page", err)
	}

	size, err := parseIntParam(q.Get("size"), paging.DefaultSize)
	if err != nil {
		return domain.PageRequest{}, e.Wrap("size", err)
	}
	if size > paging.MaxSize {
		return domain.PageRequest{}, e.Wrap(fmt.Sprintf("size %d exceeds %d", size, paging.MaxSize), e.ErrInvalidPageRequest)
	}

	sort, err := domain.ParseSort(q.Get("sort"))
	if err != nil {
		return domain.PageRequest{}, err
	}

	return domain.NewPageRequest(page, size, sort)
}

func parseIntParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, e.Wrap(fmt.Sprintf("%q", raw), e.ErrInvalidPageRequest)
	}

	return v, nil
}

// validatePrice проверяет, что цена неотрицательна и содержит не больше двух знаков после запятой.
func validatePrice(price decimal.Decimal) error {
	if price.LessThan(decimal.Zero) {
		return e.ErrInvalidPrice
	}

	maxPrice := decimal.NewFromInt(1_000_000_000_000)
	if price.GreaterThanOrEqual(maxPrice) {
		return e.ErrInvalidPrice
	}

	if !price.Equal(price.Truncate(2)) {
		return e.ErrPricePrecision
	}

	return nil
}

// location строит ссылку на созданный ресурс для заголовка Location.
func location(r *http.Request, id int64) string {
	return strings.TrimSuffix(r.URL.Path, "/") + "/" + strconv.FormatInt(id, 10)
}
