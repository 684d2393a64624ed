package http

import (
	"net/http"
	"testing"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListCategories(t *testing.T) {
	t.Run("default paging", func(t *testing.T) {
		srv := newTestServer(t, nil)
		req := domain.PageRequest{Page: 0, Size: 12}
		srv.categories.On("ListPaged", mock.Anything, req).Return(
			domain.NewPage([]usecase.CategoryDTO{{ID: 1, Name: "Livros"}, {ID: 2, Name: "Eletrônicos"}}, req, 2), nil)

		rec := srv.do(http.MethodGet, "/api/v1/categories", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[pageResponse[categoryResponse]](t, rec)
		assert.Len(t, body.Content, 2)
		assert.Equal(t, "Livros", body.Content[0].Name)
		assert.Equal(t, int64(2), body.TotalElements)
		assert.Equal(t, 1, body.TotalPages)
		assert.Equal(t, 2, body.NumberOfElements)
		assert.True(t, body.First)
		assert.True(t, body.Last)
		assert.False(t, body.Empty)
	})

	t.Run("explicit page and sort", func(t *testing.T) {
		srv := newTestServer(t, nil)
		req := domain.PageRequest{Page: 1, Size: 2, Sort: &domain.Sort{Field: "name", Direction: domain.Desc}}
		srv.categories.On("ListPaged", mock.Anything, req).Return(
			domain.NewPage([]usecase.CategoryDTO{{ID: 3, Name: "Computadores"}}, req, 3), nil)

		rec := srv.do(http.MethodGet, "/api/v1/categories?page=1&size=2&sort=name,desc", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[pageResponse[categoryResponse]](t, rec)
		assert.Equal(t, 2, body.TotalPages)
		assert.False(t, body.First)
		assert.True(t, body.Last)
	})

	t.Run("unknown sort field from store", func(t *testing.T) {
		srv := newTestServer(t, nil)
		srv.categories.On("ListPaged", mock.Anything, mock.Anything).
			Return(nil, e.Wrap("field \"secret\"", e.ErrInvalidSortField))

		rec := srv.do(http.MethodGet, "/api/v1/categories?sort=secret", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	badParams := map[string]string{
		"negative page":   "/api/v1/categories?page=-1",
		"zero size":       "/api/v1/categories?size=0",
		"size over max":   "/api/v1/categories?size=1001",
		"not a number":    "/api/v1/categories?page=abc",
		"bad direction":   "/api/v1/categories?sort=name,sideways",
		"offset overflow": "/api/v1/categories?page=9223372036854775807&size=2",
	}
	for name, target := range badParams {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, nil)
			rec := srv.do(http.MethodGet, target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetCategory(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.categories.On("GetByID", mock.Anything, int64(1)).Return(&usecase.CategoryDTO{ID: 1, Name: "Livros"}, nil)
	srv.categories.On("GetByID", mock.Anything, int64(1000)).Return(nil, e.Wrap("category 1000", e.ErrNotFound))

	rec := srv.do(http.MethodGet, "/api/v1/categories/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, categoryResponse{ID: 1, Name: "Livros"}, decodeBody[categoryResponse](t, rec))

	rec = srv.do(http.MethodGet, "/api/v1/categories/1000", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decodeBody[ErrorResponse](t, rec).Code)

	rec = srv.do(http.MethodGet, "/api/v1/categories/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCategory(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		srv := newTestServer(t, nil)
		srv.categories.On("Create", mock.Anything, &usecase.CategoryDTO{Name: "Jogos"}).
			Return(&usecase.CategoryDTO{ID: 4, Name: "Jogos"}, nil)

		rec := srv.do(http.MethodPost, "/api/v1/categories", `{"id": 99, "name": "Jogos"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "/api/v1/categories/4", rec.Header().Get("Location"))
		assert.Equal(t, categoryResponse{ID: 4, Name: "Jogos"}, decodeBody[categoryResponse](t, rec))
	})

	t.Run("validation", func(t *testing.T) {
		srv := newTestServer(t, nil)

		rec := srv.do(http.MethodPost, "/api/v1/categories", `{"name": ""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeBody[ErrorResponse](t, rec).Message, "Name: required")

		rec = srv.do(http.MethodPost, "/api/v1/categories", `{"name": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("internal error hides details", func(t *testing.T) {
		srv := newTestServer(t, nil)
		srv.categories.On("Create", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		rec := srv.do(http.MethodPost, "/api/v1/categories", `{"name": "Jogos"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, e.ErrInternalServerError.Error(), decodeBody[ErrorResponse](t, rec).Message)
	})
}

func TestUpdateCategory(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.categories.On("Update", mock.Anything, int64(1), &usecase.CategoryDTO{Name: "Livros e Revistas"}).
		Return(&usecase.CategoryDTO{ID: 1, Name: "Livros e Revistas"}, nil)
	srv.categories.On("Update", mock.Anything, int64(1000), mock.Anything).
		Return(nil, e.Wrap("id not found 1000", e.ErrNotFound))

	rec := srv.do(http.MethodPut, "/api/v1/categories/1", `{"name": "Livros e Revistas"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Livros e Revistas", decodeBody[categoryResponse](t, rec).Name)

	rec = srv.do(http.MethodPut, "/api/v1/categories/1000", `{"name": "Nada"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCategory(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.categories.On("Delete", mock.Anything, int64(4)).Return(nil)
	srv.categories.On("Delete", mock.Anything, int64(1000)).Return(e.Wrap("id not found 1000", e.ErrNotFound))
	srv.categories.On("Delete", mock.Anything, int64(2)).Return(e.Wrap("category 2 is referenced", e.ErrConflict))

	assert.Equal(t, http.StatusNoContent, srv.do(http.MethodDelete, "/api/v1/categories/4", "").Code)
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodDelete, "/api/v1/categories/1000", "").Code)
	assert.Equal(t, http.StatusConflict, srv.do(http.MethodDelete, "/api/v1/categories/2", "").Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodDelete, "/api/v1/categories/0", "").Code)
}
