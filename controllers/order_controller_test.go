package controllers

import (
	"errors"
	"net/http"
	"testing"

	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newOrderRouter(svc OrderServiceAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewOrderController(svc)

	r := gin.New()
	signedIn := r.Group("", middleware.RequireSignIn(staticTokens{}))
	signedIn.GET("/orders", ctrl.GetOrders)
	signedIn.GET("/all-orders", ctrl.GetAllOrders)
	signedIn.PUT("/order-status/:orderId", ctrl.UpdateOrderStatus)
	return r
}

func TestGetOrdersUsesSignedInBuyer(t *testing.T) {
	svc := &fakeOrderService{orders: []*models.Order{{OrderNumber: "n-1", Buyer: "user-7"}}}
	rec := serve(newOrderRouter(svc), authed(http.MethodGet, "/orders", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-7", svc.lastBuyer)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["orders"], 1)

	rec = serve(newOrderRouter(svc), jsonRequest(http.MethodGet, "/orders", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetAllOrders(t *testing.T) {
	svc := &fakeOrderService{orders: []*models.Order{{Buyer: "a"}, {Buyer: "b"}}}
	rec := serve(newOrderRouter(svc), authed(http.MethodGet, "/all-orders", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["orders"], 2)

	svc = &fakeOrderService{err: errors.New("socket closed")}
	rec = serve(newOrderRouter(svc), authed(http.MethodGet, "/all-orders", ""))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "socket closed")
}

func TestUpdateOrderStatus(t *testing.T) {
	id := primitive.NewObjectID()
	svc := &fakeOrderService{}
	rec := serve(newOrderRouter(svc), authed(http.MethodPut, "/order-status/"+id.Hex(), `{"status":"Shipped"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.lastID)
	assert.Equal(t, "Shipped", svc.lastStatus)
	assert.Equal(t, "Shipped", decodeBody(t, rec)["order"].(map[string]interface{})["status"])
}

func TestUpdateOrderStatusFailures(t *testing.T) {
	target := "/order-status/" + primitive.NewObjectID().Hex()

	rec := serve(newOrderRouter(&fakeOrderService{}), authed(http.MethodPut, "/order-status/xyz", `{"status":"Shipped"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc := &fakeOrderService{}
	rec = serve(newOrderRouter(svc), authed(http.MethodPut, target, `{}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.lastStatus)

	svc = &fakeOrderService{err: &services.ValidationError{Field: "status", Message: "Status must be one of: Shipped"}}
	rec = serve(newOrderRouter(svc), authed(http.MethodPut, target, `{"status":"Lost"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Status must be one of: Shipped", decodeBody(t, rec)["message"])

	svc = &fakeOrderService{err: services.ErrNotFound}
	rec = serve(newOrderRouter(svc), authed(http.MethodPut, target, `{"status":"Shipped"}`))
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Order not found", body["message"])
	assert.Equal(t, "not found", body["error"])
}
