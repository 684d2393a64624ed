package http

import (
	"net/http"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
)

type CategoryHandler struct {
	categoryUsecase usecase.CategoryUC
	validate        *validator.Validate
	paging          *cfg.PagingCfg
	logger          logger.Logger
}

func NewCategoryHandler(
	categoryUsecase usecase.CategoryUC,
	validate *validator.Validate,
	paging *cfg.PagingCfg,
	logger logger.Logger,
) *CategoryHandler {
	return &CategoryHandler{
		categoryUsecase: categoryUsecase,
		validate:        validate,
		paging:          paging,
		logger:          logger,
	}
}

// listCategories
//
//	@Summary		Список категорий
//	@Description	Возвращает страницу категорий
//	@Tags			categories
//	@Produce		json
//	@Param			page	query		int		false	"Номер страницы, с нуля"
//	@Param			size	query		int		false	"Размер страницы"
//	@Param			sort	query		string	false	"Сортировка: поле[,asc|desc]"
//	@Success		200		{object}	pageResponse[categoryResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Router			/categories [get]
func (h *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	req, err := parsePageRequest(r, h.paging)
	if err != nil {
		h.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	page, err := h.categoryUsecase.ListPaged(r.Context(), req)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newPageResponse(page, newCategoryResponse))
}

// getCategory
//
//	@Summary	Категория по ID
//	@Tags		categories
//	@Produce	json
//	@Param		id	path		int	true	"ID категории"
//	@Success	200	{object}	categoryResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/categories/{id} [get]
func (h *CategoryHandler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	dto, err := h.categoryUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCategoryResponse(*dto))
}

// createCategory
//
//	@Summary	Создание категории
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		category	body		categoryRequest	true	"Категория"
//	@Success	201			{object}	categoryResponse
//	@Failure	400			{object}	ErrorResponse
//	@Router		/categories [post]
func (h *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		h.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	dto, err := h.categoryUsecase.Create(r.Context(), req.toDTO())
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	w.Header().Set("Location", location(r, dto.ID))
	WriteSuccess(w, http.StatusCreated, newCategoryResponse(*dto))
}

// updateCategory
//
//	@Summary	Изменение категории
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		id			path		int				true	"ID категории"
//	@Param		category	body		categoryRequest	true	"Категория"
//	@Success	200			{object}	categoryResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/categories/{id} [put]
func (h *CategoryHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req categoryRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		h.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	dto, err := h.categoryUsecase.Update(r.Context(), id, req.toDTO())
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCategoryResponse(*dto))
}

// deleteCategory
//
//	@Summary	Удаление категории
//	@Tags		categories
//	@Param		id	path	int	true	"ID категории"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse	"На категорию ссылаются продукты"
//	@Router		/categories/{id} [delete]
func (h *CategoryHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.categoryUsecase.Delete(r.Context(), id); err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) writeUsecaseError(w http.ResponseWriter, err error) {
	if code, _ := ToHTTPResponse(err); code == http.StatusInternalServerError {
		h.logger.Errorf(err, "category request failed")
	} else {
		h.logger.Warnf("%d %s", code, err.Error())
	}

	WriteError(w, err)
}
