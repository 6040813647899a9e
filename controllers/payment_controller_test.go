package controllers

import (
	"errors"
	"net/http"
	"testing"

	"storefront-service/common/auth"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct{}

func (staticTokens) ParseAndValidateToken(token string) (*auth.Claims, error) {
	if token != "good" {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: "user-7", Role: "customer"}, nil
}

func newPaymentRouter(svc PaymentServiceAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewPaymentController(svc)

	r := gin.New()
	group := r.Group("/payment", middleware.RequireSignIn(staticTokens{}))
	group.GET("/token", ctrl.GetClientToken)
	group.POST("", ctrl.Checkout)
	return r
}

func authed(method, target, body string) *http.Request {
	req := jsonRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer good")
	return req
}

const validCheckout = `{"nonce":"pm_card_visa","cart":[{"_id":"p1","name":"Mug","price":12.5}]}`

func TestGetClientToken(t *testing.T) {
	svc := &fakePaymentService{token: "seti_123_secret"}
	rec := serve(newPaymentRouter(svc), authed(http.MethodGet, "/payment/token", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "seti_123_secret", decodeBody(t, rec)["clientToken"])
}

func TestCheckoutRequiresSignIn(t *testing.T) {
	svc := &fakePaymentService{}
	rec := serve(newPaymentRouter(svc), jsonRequest(http.MethodPost, "/payment", validCheckout))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, svc.calls)
}

func TestCheckoutSuccess(t *testing.T) {
	svc := &fakePaymentService{order: &models.Order{OrderNumber: "ord-1", Status: models.OrderStatusNotProcessed}}
	rec := serve(newPaymentRouter(svc), authed(http.MethodPost, "/payment", validCheckout))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "user-7", svc.lastBuyer)
	require.Len(t, svc.lastReq.Cart, 1)
	assert.Equal(t, 12.5, svc.lastReq.Cart[0].Price)
}

func TestCheckoutGatewayErrorIsSurfaced(t *testing.T) {
	svc := &fakePaymentService{err: &services.GatewayError{Err: errors.New("Your card was declined.")}}
	rec := serve(newPaymentRouter(svc), authed(http.MethodPost, "/payment", validCheckout))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Your card was declined.", body["error"])
}

func TestCheckoutValidation(t *testing.T) {
	svc := &fakePaymentService{}
	r := newPaymentRouter(svc)

	for _, body := range []string{
		`{"nonce":"pm","cart":[]}`,
		`{"cart":[{"_id":"p1","price":1}]}`,
		`{"nonce":"pm","cart":[{"_id":"p1","price":-1}]}`,
		`not json`,
	} {
		rec := serve(r, authed(http.MethodPost, "/payment", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Zero(t, svc.calls)
}
