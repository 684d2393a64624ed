package http

import (
	"net/http"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	validate       *validator.Validate
	paging         *cfg.PagingCfg
	logger         logger.Logger
}

func NewProductHandler(
	productUsecase usecase.ProductUC,
	validate *validator.Validate,
	paging *cfg.PagingCfg,
	logger logger.Logger,
) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		validate:       validate,
		paging:         paging,
		logger:         logger,
	}
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает страницу товаров без категорий
//	@Tags			products
//	@Produce		json
//	@Param			page	query		int		false	"Номер страницы, с нуля"
//	@Param			size	query		int		false	"Размер страницы"
//	@Param			sort	query		string	false	"Сортировка: поле[,asc|desc]"
//	@Success		200		{object}	pageResponse[productResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	req, err := parsePageRequest(r, p.paging)
	if err != nil {
		p.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	page, err := p.productUsecase.ListPaged(r.Context(), req)
	if err != nil {
		p.writeUsecaseError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newPageResponse(page, newProductResponse))
}

// getProduct
//
//	@Summary		Товар по ID
//	@Description	Возвращает товар вместе с категориями
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"ID товара"
//	@Success		200	{object}	productResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	dto, err := p.productUsecase.GetByID(r.Context(), id)
	if err != nil {
		p.writeUsecaseError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponse(*dto))
}

// createProduct
//
//	@Summary	Создание товара
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		product	body		productRequest	true	"Товар"
//	@Success	201		{object}	productResponse
//	@Failure	400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure	404		{object}	ErrorResponse	"Категория не найдена"
//	@Router		/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := p.decodeProduct(w, r)
	if !ok {
		return
	}

	dto, err := p.productUsecase.Create(r.Context(), req.toDTO())
	if err != nil {
		p.writeUsecaseError(w, err)
		return
	}

	w.Header().Set("Location", location(r, dto.ID))
	WriteSuccess(w, http.StatusCreated, newProductResponse(*dto))
}

// updateProduct
//
//	@Summary		Изменение товара
//	@Description	Перезаписывает поля товара и полностью заменяет набор его категорий
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"ID товара"
//	@Param			product	body		productRequest	true	"Товар"
//	@Success		200		{object}	productResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	req, ok := p.decodeProduct(w, r)
	if !ok {
		return
	}

	dto, err := p.productUsecase.Update(r.Context(), id, req.toDTO())
	if err != nil {
		p.writeUsecaseError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponse(*dto))
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Tags		products
//	@Param		id	path	int	true	"ID товара"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.productUsecase.Delete(r.Context(), id); err != nil {
		p.writeUsecaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (p *ProductHandler) decodeProduct(w http.ResponseWriter, r *http.Request) (*productRequest, bool) {
	var req productRequest
	if err := decodeJSON(w, r, p.validate, &req); err != nil {
		p.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return nil, false
	}

	if err := validatePrice(req.Price); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, err.Error(), req.Price.String())
		WriteError(w, err)
		return nil, false
	}

	return &req, true
}

func (p *ProductHandler) writeUsecaseError(w http.ResponseWriter, err error) {
	if code, _ := ToHTTPResponse(err); code == http.StatusInternalServerError {
		p.logger.Errorf(err, "product request failed")
	} else {
		p.logger.Warnf("%d %s", code, err.Error())
	}

	WriteError(w, err)
}
