package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/shopspring/decimal"
)

type productRow struct {
	product     domain.Product
	categoryIDs []int64
}

// memStore хранит данные в памяти и воспроизводит поведение PostgreSQL-репозиториев:
// e.ErrEntityMissing при записи по несуществующей ссылке и
// e.ErrReferentialIntegrity при удалении категории, на которую ссылается продукт.
type memStore struct {
	categories map[int64]domain.Category
	products   map[int64]productRow
	outbox     []*OutboxEvent
	nextCatID  int64
	nextPrID   int64

	failOutbox error
}

func newMemStore() *memStore {
	return &memStore{
		categories: make(map[int64]domain.Category),
		products:   make(map[int64]productRow),
	}
}

func (s *memStore) snapshot() *memStore {
	cp := &memStore{
		categories: make(map[int64]domain.Category, len(s.categories)),
		products:   make(map[int64]productRow, len(s.products)),
		outbox:     append([]*OutboxEvent(nil), s.outbox...),
		nextCatID:  s.nextCatID,
		nextPrID:   s.nextPrID,
		failOutbox: s.failOutbox,
	}
	for id, c := range s.categories {
		cp.categories[id] = c
	}
	for id, p := range s.products {
		cp.products[id] = productRow{product: p.product, categoryIDs: append([]int64(nil), p.categoryIDs...)}
	}

	return cp
}

func (s *memStore) restore(from *memStore) {
	*s = *from
}

func (s *memStore) addCategory(name string) int64 {
	s.nextCatID++
	s.categories[s.nextCatID] = domain.Category{ID: s.nextCatID, Name: name}
	return s.nextCatID
}

func (s *memStore) addProduct(name string, price string, categoryIDs ...int64) int64 {
	s.nextPrID++
	s.products[s.nextPrID] = productRow{
		product: domain.Product{
			ID:    s.nextPrID,
			Name:  name,
			Price: decimal.RequireFromString(price),
			Date:  time.Date(2020, 7, 13, 20, 50, 7, 0, time.UTC),
		},
		categoryIDs: categoryIDs,
	}
	return s.nextPrID
}

// fakeTx откатывает состояние memStore, если функция вернула ошибку.
type fakeTx struct {
	store         *memStore
	readOnlyCalls int
	writeCalls    int
}

func (t *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.writeCalls++
	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}

	return nil
}

func (t *fakeTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	t.readOnlyCalls++
	return fn(ctx)
}

func paginate[T any](items []T, req domain.PageRequest) []T {
	from := req.Offset()
	if from >= len(items) {
		return []T{}
	}

	to := min(from+req.Size, len(items))
	return items[from:to]
}

type memCategoryRepo struct {
	s *memStore
}

func (r *memCategoryRepo) FindByID(_ context.Context, id int64) (*domain.Category, bool, error) {
	c, ok := r.s.categories[id]
	if !ok {
		return nil, false, nil
	}

	return &c, true, nil
}

func (r *memCategoryRepo) FindAllPaged(_ context.Context, req domain.PageRequest) (*domain.Page[*domain.Category], error) {
	all := make([]*domain.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		all = append(all, &c)
	}

	less := func(i, j int) bool { return all[i].ID < all[j].ID }
	if req.Sort != nil {
		switch strings.ToLower(req.Sort.Field) {
		case "id":
		case "name":
			less = func(i, j int) bool { return all[i].Name < all[j].Name }
		default:
			return nil, e.ErrInvalidSortField
		}
		if req.Sort.Direction == domain.Desc {
			asc := less
			less = func(i, j int) bool { return asc(j, i) }
		}
	}
	sort.SliceStable(all, less)

	return domain.NewPage(paginate(all, req), req, int64(len(all))), nil
}

func (r *memCategoryRepo) Save(_ context.Context, category *domain.Category) (*domain.Category, error) {
	if category.IsNew() {
		r.s.nextCatID++
		category.ID = r.s.nextCatID
	} else if _, ok := r.s.categories[category.ID]; !ok {
		return nil, e.Wrap(fmt.Sprintf("category %d", category.ID), e.ErrEntityMissing)
	}

	r.s.categories[category.ID] = *category
	saved := *category
	return &saved, nil
}

func (r *memCategoryRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.s.categories[id]
	return ok, nil
}

func (r *memCategoryRepo) DeleteByID(_ context.Context, id int64) error {
	for _, p := range r.s.products {
		for _, cid := range p.categoryIDs {
			if cid == id {
				return e.Wrap(fmt.Sprintf("category %d", id), e.ErrReferentialIntegrity)
			}
		}
	}

	delete(r.s.categories, id)
	return nil
}

func (r *memCategoryRepo) GetReference(id int64) *domain.Category {
	return domain.NewCategoryRef(id)
}

type memProductRepo struct {
	s *memStore
}

func (r *memProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, bool, error) {
	row, ok := r.s.products[id]
	if !ok {
		return nil, false, nil
	}

	p := row.product
	cats := make([]*domain.Category, 0, len(row.categoryIDs))
	for _, cid := range row.categoryIDs {
		c := r.s.categories[cid]
		cats = append(cats, &c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })
	p.ReplaceCategories(cats)

	return &p, true, nil
}

func (r *memProductRepo) FindAllPaged(_ context.Context, req domain.PageRequest) (*domain.Page[*domain.Product], error) {
	all := make([]*domain.Product, 0, len(r.s.products))
	for _, row := range r.s.products {
		p := row.product
		all = append(all, &p)
	}

	less := func(i, j int) bool { return all[i].ID < all[j].ID }
	if req.Sort != nil {
		switch strings.ToLower(req.Sort.Field) {
		case "id":
		case "name":
			less = func(i, j int) bool { return all[i].Name < all[j].Name }
		case "price":
			less = func(i, j int) bool { return all[i].Price.LessThan(all[j].Price) }
		default:
			return nil, e.ErrInvalidSortField
		}
		if req.Sort.Direction == domain.Desc {
			asc := less
			less = func(i, j int) bool { return asc(j, i) }
		}
	}
	sort.SliceStable(all, less)

	return domain.NewPage(paginate(all, req), req, int64(len(all))), nil
}

func (r *memProductRepo) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product.IsNew() {
		r.s.nextPrID++
		product.ID = r.s.nextPrID
	} else if _, ok := r.s.products[product.ID]; !ok {
		return nil, e.Wrap(fmt.Sprintf("product %d", product.ID), e.ErrEntityMissing)
	}

	ids := product.CategoryIDs()
	for _, cid := range ids {
		if _, ok := r.s.categories[cid]; !ok {
			return nil, e.Wrap(fmt.Sprintf("category %d", cid), e.ErrEntityMissing)
		}
	}

	stored := *product
	stored.ReplaceCategories(nil)
	r.s.products[product.ID] = productRow{product: stored, categoryIDs: ids}

	saved := *product
	return &saved, nil
}

func (r *memProductRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.s.products[id]
	return ok, nil
}

func (r *memProductRepo) DeleteByID(_ context.Context, id int64) error {
	delete(r.s.products, id)
	return nil
}

func (r *memProductRepo) GetReference(id int64) *domain.Product {
	return domain.NewProductRef(id)
}

type memOutboxRepo struct {
	s *memStore
}

func (r *memOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	if r.s.failOutbox != nil {
		return nil, r.s.failOutbox
	}

	event.ID = int64(len(r.s.outbox) + 1)
	r.s.outbox = append(r.s.outbox, event)
	return event, nil
}

func (r *memOutboxRepo) GetAndMarkAsProcessing(context.Context, int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (r *memOutboxRepo) MarkAsProcessed(context.Context, int64) error {
	return nil
}

func (r *memOutboxRepo) ResetStuck(context.Context, time.Duration) (int64, error) {
	return 0, nil
}
