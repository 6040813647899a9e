package controllers

import (
	"net/http"

	"storefront-service/common/logger"
	"storefront-service/middleware"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderController struct {
	service OrderServiceAPI
}

func NewOrderController(s OrderServiceAPI) *OrderController {
	return &OrderController{service: s}
}

// GetOrders lists the signed-in buyer's own orders.
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	buyer, ok := middleware.GetUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	orders, err := ctrl.service.BuyerOrders(c.Request.Context(), buyer)
	if err != nil {
		handleServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := ctrl.service.AllOrders(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := parseObjectID(c, "orderId")
	if err != nil {
		badRequest(c, "Invalid order ID", err)
		return
	}

	var req services.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		badRequest(c, "Status is required", err)
		return
	}

	order, err := ctrl.service.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleServiceError(c, err, "Order not found")
		return
	}

	logger.Info(c, "Order status changed", zap.String("order_id", id.Hex()), zap.String("status", order.Status))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated",
		"order":   order,
	})
}
