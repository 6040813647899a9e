package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront-service/models"
	"storefront-service/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// memProductRepo is an in-memory ProductRepo that applies ProductQuery the way Mongo would.
type memProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.Product
	queries  []repository.ProductQuery
	creates  int
	seq      int
	err      error
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[primitive.ObjectID]*models.Product{}}
}

// seed stores p with a creation time that increases with every call.
func (r *memProductRepo) seed(p models.Product) *models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.CreatedAt = baseTime.Add(time.Duration(r.seq) * time.Minute)
	r.seq++
	r.products[p.ID] = &p
	return &p
}

func withoutPhoto(p *models.Product) *models.Product {
	cp := *p
	cp.Photo = nil
	cp.Category = nil
	return &cp
}

func (r *memProductRepo) Find(ctx context.Context, q repository.ProductQuery) ([]*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
	if r.err != nil {
		return nil, r.err
	}

	var out []*models.Product
	for _, p := range r.products {
		if !matches(p, q) {
			continue
		}
		out = append(out, withoutPhoto(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if q.NewestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	if q.Skip > 0 {
		if int(q.Skip) >= len(out) {
			out = nil
		} else {
			out = out[q.Skip:]
		}
	}
	if q.Limit > 0 && int(q.Limit) < len(out) {
		out = out[:q.Limit]
	}
	if out == nil {
		out = []*models.Product{}
	}
	return out, nil
}

func matches(p *models.Product, q repository.ProductQuery) bool {
	if len(q.CategoryIDs) > 0 {
		found := false
		for _, id := range q.CategoryIDs {
			if id == p.CategoryID {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if q.ExcludeID != nil && *q.ExcludeID == p.ID {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	if q.Keyword != "" {
		kw := strings.ToLower(q.Keyword)
		if !strings.Contains(strings.ToLower(p.Name), kw) && !strings.Contains(strings.ToLower(p.Description), kw) {
			return false
		}
	}
	return true
}

func (r *memProductRepo) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Slug == slug {
			return withoutPhoto(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memProductRepo) FindPhoto(ctx context.Context, id primitive.ObjectID) (*models.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p.Photo, nil
}

func (r *memProductRepo) EstimatedCount(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *memProductRepo) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) Create(ctx context.Context, product *models.Product) error {
	if r.err != nil {
		return r.err
	}
	r.creates++
	stored := r.seed(*product)
	product.ID = stored.ID
	product.CreatedAt = stored.CreatedAt
	return nil
}

func (r *memProductRepo) Update(ctx context.Context, id primitive.ObjectID, product *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	photo := existing.Photo
	if product.Photo != nil {
		photo = product.Photo
	}
	updated := *product
	updated.ID = id
	updated.CreatedAt = existing.CreatedAt
	updated.Photo = photo
	r.products[id] = &updated
	return withoutPhoto(&updated), nil
}

func (r *memProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) EnsureIndexes(ctx context.Context) error { return nil }

// memCategoryRepo enforces name uniqueness like the unique index does.
type memCategoryRepo struct {
	mu         sync.Mutex
	categories map[primitive.ObjectID]*models.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: map[primitive.ObjectID]*models.Category{}}
}

func (r *memCategoryRepo) add(name string) *models.Category {
	c := &models.Category{ID: primitive.NewObjectID(), Name: name, Slug: Slugify(name)}
	r.categories[c.ID] = c
	return c
}

func (r *memCategoryRepo) FindAll(ctx context.Context) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Category{}
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCategoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memCategoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memCategoryRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Category
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) nameTaken(name string, except primitive.ObjectID) bool {
	for id, c := range r.categories {
		if c.Name == name && id != except {
			return true
		}
	}
	return false
}

func (r *memCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(category.Name, primitive.NilObjectID) {
		return repository.ErrDuplicate
	}
	category.ID = primitive.NewObjectID()
	cp := *category
	r.categories[cp.ID] = &cp
	return nil
}

func (r *memCategoryRepo) Update(ctx context.Context, id primitive.ObjectID, name, slug string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.nameTaken(name, id) {
		return nil, repository.ErrDuplicate
	}
	c.Name, c.Slug = name, slug
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

func (r *memCategoryRepo) EnsureIndexes(ctx context.Context) error { return nil }

type memOrderRepo struct {
	orders []*models.Order
	err    error
}

func (r *memOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if r.err != nil {
		return r.err
	}
	order.ID = primitive.NewObjectID()
	order.CreatedAt = baseTime.Add(time.Duration(len(r.orders)) * time.Minute)
	r.orders = append(r.orders, order)
	return nil
}

func (r *memOrderRepo) FindByBuyer(ctx context.Context, buyer string) ([]*models.Order, error) {
	return r.newestFirst(func(o *models.Order) bool { return o.Buyer == buyer })
}

func (r *memOrderRepo) FindAll(ctx context.Context) ([]*models.Order, error) {
	return r.newestFirst(func(*models.Order) bool { return true })
}

func (r *memOrderRepo) newestFirst(keep func(*models.Order) bool) ([]*models.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []*models.Order{}
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
			return o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memOrderRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeGateway struct {
	token    string
	tokenErr error
	saleErr  error
	sales    []SaleRequest
}

func (g *fakeGateway) GenerateClientToken(ctx context.Context) (string, error) {
	return g.token, g.tokenErr
}

func (g *fakeGateway) Sale(ctx context.Context, req SaleRequest) (*models.PaymentResult, error) {
	g.sales = append(g.sales, req)
	if g.saleErr != nil {
		return nil, g.saleErr
	}
	return &models.PaymentResult{
		Success:       true,
		TransactionID: "pi_test",
		Status:        "succeeded",
		Amount:        req.Amount,
		Currency:      req.Currency,
	}, nil
}

type fakePublisher struct {
	topics   []string
	messages [][]byte
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, topicArn string, message []byte) error {
	p.topics = append(p.topics, topicArn)
	p.messages = append(p.messages, message)
	return p.err
}
