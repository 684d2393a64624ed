package http

import (
	"context"
	"net/http"
	"time"

	_ "github.com/DRSN-tech/catalog-backend/docs" // Регистрация swagger-спецификации
	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// HealthCheck проверяет готовность зависимостей сервиса.
type HealthCheck func(ctx context.Context) error

type Router struct {
	router   *chi.Mux
	logger   logger.Logger
	validate *validator.Validate
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{
		router:   router,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (r *Router) Init(
	catUC usecase.CategoryUC,
	prUC usecase.ProductUC,
	httpCfg *cfg.HTTPConfig,
	paging *cfg.PagingCfg,
	health HealthCheck,
) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(httpCfg.SwaggerURL),
	))

	r.router.Get("/healthz", r.healthz(health))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		catHandler := NewCategoryHandler(catUC, r.validate, paging, r.logger)
		registerCategoryRoutes(v1, catHandler)

		prHandler := NewProductHandler(prUC, r.validate, paging, r.logger)
		registerProductRoutes(v1, prHandler)
	})
}

func registerCategoryRoutes(router chi.Router, catHandler *CategoryHandler) {
	router.Route("/categories", func(cat chi.Router) {
		cat.Get("/", catHandler.listCategories)
		cat.Post("/", catHandler.createCategory)
		cat.Get("/{id}", catHandler.getCategory)
		cat.Put("/{id}", catHandler.updateCategory)
		cat.Delete("/{id}", catHandler.deleteCategory)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Post("/", prHandler.createProduct)
		pr.Get("/{id}", prHandler.getProduct)
		pr.Put("/{id}", prHandler.updateProduct)
		pr.Delete("/{id}", prHandler.deleteProduct)
	})
}

func (r *Router) healthz(health HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if health != nil {
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			if err := health(ctx); err != nil {
				r.logger.Warnf("health check failed: %v", err)
				WriteSuccess(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}

		WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
