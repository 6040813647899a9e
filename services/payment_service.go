package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storefront-service/models"
	"storefront-service/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentGateway is the provider-agnostic contract for the external payment processor.
type PaymentGateway interface {
	// GenerateClientToken returns a token the storefront client uses to collect a payment method.
	GenerateClientToken(ctx context.Context) (string, error)
	// Sale charges the payment method behind the nonce and blocks until the gateway answers.
	Sale(ctx context.Context, req SaleRequest) (*models.PaymentResult, error)
}

// EventPublisher is a minimal interface for publishing messages to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topicArn string, message []byte) error
}

type PaymentService struct {
	gateway   PaymentGateway
	orders    repository.OrderRepo
	publisher EventPublisher
	topicArn  string
	currency  string
}

// NewPaymentService wires the gateway and order store. publisher may be nil, in which case
// no order events are emitted.
func NewPaymentService(gateway PaymentGateway, orders repository.OrderRepo, publisher EventPublisher, topicArn, currency string) *PaymentService {
	return &PaymentService{
		gateway:   gateway,
		orders:    orders,
		publisher: publisher,
		topicArn:  topicArn,
		currency:  strings.ToLower(currency),
	}
}

func (s *PaymentService) ClientToken(ctx context.Context) (string, error) {
	token, err := s.gateway.GenerateClientToken(ctx)
	if err != nil {
		return "", &GatewayError{Err: err}
	}
	return token, nil
}

// Checkout charges the cart total and records the order once the gateway confirms the sale.
func (s *PaymentService) Checkout(ctx context.Context, buyer string, req CheckoutRequest) (*models.Order, error) {
	if len(req.Cart) == 0 {
		return nil, invalid("cart", "Cart is empty")
	}
	if strings.TrimSpace(req.Nonce) == "" {
		return nil, invalid("nonce", "Payment nonce is required")
	}

	amount, err := CartTotal(req.Cart)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.Sale(ctx, SaleRequest{Amount: amount, Currency: s.currency, Nonce: req.Nonce})
	if err != nil {
		zap.L().Warn("Payment sale failed", zap.String("buyer", buyer), zap.Int64("amount", amount), zap.Error(err))
		return nil, &GatewayError{Err: err}
	}

	order := &models.Order{
		OrderNumber: uuid.NewString(),
		Products:    req.Cart,
		Payment:     *result,
		Buyer:       buyer,
		Status:      models.OrderStatusNotProcessed,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		zap.L().Error("Order not saved after successful payment",
			zap.String("transaction_id", result.TransactionID),
			zap.String("buyer", buyer),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.publishOrderCreated(ctx, order)
	return order, nil
}

// CartTotal sums the line-item prices exactly and returns the amount in minor units.
func CartTotal(cart []models.CartItem) (int64, error) {
	total := decimal.Zero
	for i, item := range cart {
		if item.Price < 0 {
			return 0, invalid("cart", fmt.Sprintf("Cart item %d has a negative price", i))
		}
		total = total.Add(decimal.NewFromFloat(item.Price))
	}
	return total.Shift(2).Round(0).IntPart(), nil
}

func (s *PaymentService) publishOrderCreated(ctx context.Context, order *models.Order) {
	if s.publisher == nil || s.topicArn == "" {
		return
	}
	event := models.OrderEvent{
		Type:        "order.created",
		OrderID:     order.ID.Hex(),
		OrderNumber: order.OrderNumber,
		Buyer:       order.Buyer,
		Amount:      order.Payment.Amount,
		Currency:    order.Payment.Currency,
		Timestamp:   time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("Failed to marshal order event", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, s.topicArn, payload); err != nil {
		zap.L().Error("Failed to publish order event",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err),
		)
		return
	}
	zap.L().Info("Order event published", zap.String("order_number", order.OrderNumber))
}
