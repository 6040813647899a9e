package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"storefront-service/models"
	"storefront-service/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type OrderService struct {
	orders repository.OrderRepo
}

func NewOrderService(orders repository.OrderRepo) *OrderService {
	return &OrderService{orders: orders}
}

// BuyerOrders lists the orders placed by buyer, newest first.
func (s *OrderService) BuyerOrders(ctx context.Context, buyer string) ([]*models.Order, error) {
	if strings.TrimSpace(buyer) == "" {
		return nil, invalid("buyer", "Buyer is required")
	}
	orders, err := s.orders.FindByBuyer(ctx, buyer)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for buyer %s: %w", buyer, err)
	}
	return orders, nil
}

func (s *OrderService) AllOrders(ctx context.Context) ([]*models.Order, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to one of models.OrderStatuses.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	if !slices.Contains(models.OrderStatuses, status) {
		return nil, invalid("status", fmt.Sprintf("Status must be one of: %s", strings.Join(models.OrderStatuses, ", ")))
	}

	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update order %s: %w", id.Hex(), err)
	}

	zap.L().Info("Order status updated",
		zap.String("order_id", id.Hex()),
		zap.String("order_number", order.OrderNumber),
		zap.String("status", status),
	)
	return order, nil
}
