package controllers

import (
	"net/http"

	"storefront-service/common/logger"
	"storefront-service/middleware"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentController struct {
	service PaymentServiceAPI
}

func NewPaymentController(s PaymentServiceAPI) *PaymentController {
	return &PaymentController{service: s}
}

// GetClientToken returns the token the checkout page needs to collect a payment method.
func (ctrl *PaymentController) GetClientToken(c *gin.Context) {
	token, err := ctrl.service.ClientToken(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "clientToken": token})
}

// Checkout charges the cart and blocks until the gateway has answered.
func (ctrl *PaymentController) Checkout(c *gin.Context) {
	buyer, ok := middleware.GetUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid payment request", err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		badRequest(c, "Cart and nonce are required", err)
		return
	}

	order, err := ctrl.service.Checkout(c.Request.Context(), buyer, req)
	if err != nil {
		handleServiceError(c, err, "")
		return
	}

	logger.Info(c, "Order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("transaction_id", order.Payment.TransactionID),
	)
	c.JSON(http.StatusOK, gin.H{"ok": true, "order": order})
}
