package controllers

import (
	"context"
	"errors"
	"net"

	"storefront-service/models"
	"storefront-service/services"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProductService struct {
	products    []*models.Product
	product     *models.Product
	photo       *models.Photo
	byCategory  *services.CategoryProducts
	total       int64
	err         error
	lastPage    int
	lastKeyword string
	lastFilter  services.ProductFilter
	lastInput   services.ProductInput
	lastID      primitive.ObjectID
	createCalls int
	deleteCalls int
	listCalls   int
}

func (f *fakeProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	f.listCalls++
	return f.products, f.err
}

func (f *fakeProductService) ListProductsPage(ctx context.Context, page int) ([]*models.Product, error) {
	f.lastPage = page
	return f.products, f.err
}

func (f *fakeProductService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return f.product, f.err
}

func (f *fakeProductService) SearchProducts(ctx context.Context, keyword string) ([]*models.Product, error) {
	f.lastKeyword = keyword
	return f.products, f.err
}

func (f *fakeProductService) FilterProducts(ctx context.Context, filter services.ProductFilter) ([]*models.Product, error) {
	f.lastFilter = filter
	return f.products, f.err
}

func (f *fakeProductService) CountProducts(ctx context.Context) (int64, error) {
	return f.total, f.err
}

func (f *fakeProductService) RelatedProducts(ctx context.Context, pid, cid primitive.ObjectID) ([]*models.Product, error) {
	f.lastID = pid
	return f.products, f.err
}

func (f *fakeProductService) ProductsByCategory(ctx context.Context, categorySlug string) (*services.CategoryProducts, error) {
	return f.byCategory, f.err
}

func (f *fakeProductService) GetPhoto(ctx context.Context, id primitive.ObjectID) (*models.Photo, error) {
	f.lastID = id
	return f.photo, f.err
}

func (f *fakeProductService) CreateProduct(ctx context.Context, in services.ProductInput) (*models.Product, error) {
	f.createCalls++
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Product{ID: primitive.NewObjectID(), Name: in.Name, Slug: services.Slugify(in.Name)}, nil
}

func (f *fakeProductService) UpdateProduct(ctx context.Context, id primitive.ObjectID, in services.ProductInput) (*models.Product, error) {
	f.lastID = id
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Product{ID: id, Name: in.Name}, nil
}

func (f *fakeProductService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	f.deleteCalls++
	f.lastID = id
	return f.err
}

type fakeCategoryService struct {
	category   *models.Category
	categories []models.Category
	err        error
	lastReq    services.CategoryRequest
}

func (f *fakeCategoryService) CreateCategory(ctx context.Context, req services.CategoryRequest) (*models.Category, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Category{ID: primitive.NewObjectID(), Name: req.Name, Slug: services.Slugify(req.Name)}, nil
}

func (f *fakeCategoryService) UpdateCategory(ctx context.Context, id primitive.ObjectID, req services.CategoryRequest) (*models.Category, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Category{ID: id, Name: req.Name, Slug: services.Slugify(req.Name)}, nil
}

func (f *fakeCategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return f.categories, f.err
}

func (f *fakeCategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return f.category, f.err
}

func (f *fakeCategoryService) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	return f.err
}

type fakePaymentService struct {
	token     string
	order     *models.Order
	err       error
	lastBuyer string
	lastReq   services.CheckoutRequest
	calls     int
}

func (f *fakePaymentService) ClientToken(ctx context.Context) (string, error) {
	return f.token, f.err
}

func (f *fakePaymentService) Checkout(ctx context.Context, buyer string, req services.CheckoutRequest) (*models.Order, error) {
	f.calls++
	f.lastBuyer = buyer
	f.lastReq = req
	return f.order, f.err
}

func newTestRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: "localhost:0",
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return nil, errors.New("redis disabled in tests")
		},
		MaxRetries: -1,
	})
}

type fakeOrderService struct {
	orders     []*models.Order
	err        error
	lastBuyer  string
	lastID     primitive.ObjectID
	lastStatus string
}

func (f *fakeOrderService) BuyerOrders(ctx context.Context, buyer string) ([]*models.Order, error) {
	f.lastBuyer = buyer
	return f.orders, f.err
}

func (f *fakeOrderService) AllOrders(ctx context.Context) ([]*models.Order, error) {
	return f.orders, f.err
}

func (f *fakeOrderService) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	f.lastID = id
	f.lastStatus = status
	if f.err != nil {
		return nil, f.err
	}
	return &models.Order{ID: id, Status: status}, nil
}
