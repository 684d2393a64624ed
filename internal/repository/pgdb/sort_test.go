package pgdb

import (
	"testing"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortColumns_OrderBy(t *testing.T) {
	tests := []struct {
		name    string
		columns sortColumns
		sort    *domain.Sort
		want    string
		wantErr bool
	}{
		{name: "no sort", columns: productSortColumns, want: "ORDER BY id ASC"},
		{name: "id desc", columns: productSortColumns, sort: &domain.Sort{Field: "id", Direction: domain.Desc}, want: "ORDER BY id DESC"},
		{name: "name asc", columns: categorySortColumns, sort: &domain.Sort{Field: "name", Direction: domain.Asc}, want: "ORDER BY name ASC, id ASC"},
		{name: "case insensitive", columns: productSortColumns, sort: &domain.Sort{Field: "PRICE", Direction: domain.Desc}, want: "ORDER BY price DESC, id ASC"},
		{name: "empty direction", columns: productSortColumns, sort: &domain.Sort{Field: "date"}, want: "ORDER BY date ASC, id ASC"},
		{name: "unknown field", columns: productSortColumns, sort: &domain.Sort{Field: "password"}, wantErr: true},
		{name: "product field on categories", columns: categorySortColumns, sort: &domain.Sort{Field: "price"}, wantErr: true},
		{name: "injection", columns: categorySortColumns, sort: &domain.Sort{Field: "name; DROP TABLE categories"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.columns.orderBy(tt.sort)
			if tt.wantErr {
				require.ErrorIs(t, err, e.ErrInvalidSortField)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
