package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: e.Wrap("op", e.ErrNotFound), want: http.StatusNotFound},
		{err: e.Wrap("op", e.ErrConflict), want: http.StatusConflict},
		{err: e.ErrNameRequired, want: http.StatusBadRequest},
		{err: e.ErrInvalidPrice, want: http.StatusBadRequest},
		{err: e.ErrInvalidID, want: http.StatusBadRequest},
		{err: e.ErrInvalidSortField, want: http.StatusBadRequest},
		{err: e.Wrap("unexpected EOF", e.ErrStatusBadRequest), want: http.StatusBadRequest},
		{err: fmt.Errorf("pool closed"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			code, _ := ToHTTPResponse(tt.err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, validatePrice(decimal.Zero))
	assert.NoError(t, validatePrice(decimal.RequireFromString("4100.90")))
	assert.NoError(t, validatePrice(decimal.RequireFromString("999999999999.99")))

	assert.ErrorIs(t, validatePrice(decimal.RequireFromString("-0.01")), e.ErrInvalidPrice)
	assert.ErrorIs(t, validatePrice(decimal.RequireFromString("0.001")), e.ErrPricePrecision)
	assert.ErrorIs(t, validatePrice(decimal.NewFromInt(1_000_000_000_000)), e.ErrInvalidPrice)
}
