package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order fulfilment states, in the order an admin moves through them.
const (
	OrderStatusNotProcessed = "Not Processed"
	OrderStatusProcessing   = "Processing"
	OrderStatusShipped      = "Shipped"
	OrderStatusDelivered    = "Delivered"
	OrderStatusCancelled    = "Cancelled"
)

// OrderStatuses lists every status an order may be set to.
var OrderStatuses = []string{
	OrderStatusNotProcessed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

type Order struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	OrderNumber string             `json:"order_number" bson:"orderNumber"`
	Products    []CartItem         `json:"products" bson:"products"`
	Payment     PaymentResult      `json:"payment" bson:"payment"`
	Buyer       string             `json:"buyer" bson:"buyer"`
	Status      string             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CartItem is a line item exactly as the client submitted it at checkout.
type CartItem struct {
	ProductID string  `json:"_id" bson:"product_id" validate:"required"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity,omitempty" bson:"quantity,omitempty"`
}

// PaymentResult is the gateway's view of a completed sale.
type PaymentResult struct {
	Success       bool   `json:"success" bson:"success"`
	TransactionID string `json:"transaction_id" bson:"transaction_id"`
	Status        string `json:"status" bson:"status"`
	Amount        int64  `json:"amount" bson:"amount"` // minor units
	Currency      string `json:"currency" bson:"currency"`
}

// OrderEvent is published once an order has been persisted.
type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Buyer       string    `json:"buyer"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	Timestamp   time.Time `json:"timestamp"`
}
