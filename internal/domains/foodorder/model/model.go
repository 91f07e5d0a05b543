package model

import (
	"hotelpms/shared/model"
	"hotelpms/shared/policy"
)

const (
	TableName     = "food_orders"
	ItemTableName = "food_order_items"
	EntityName    = "food_order"

	FieldID            = "id"
	FieldBookingID     = "booking_id"
	FieldTotalAmount   = "total_amount"
	FieldAmountPaid    = "amount_paid"
	FieldPaymentStatus = "payment_status"
	FieldFoodOrderID   = "food_order_id"
)

type FoodOrder struct {
	ID            string               `db:"id"`
	BookingID     string               `db:"booking_id"`
	TotalAmount   float64              `db:"total_amount"`
	AmountPaid    float64              `db:"amount_paid"`
	PaymentStatus policy.PaymentStatus `db:"payment_status"`
	Notes         string               `db:"notes"`
	model.Metadata
}

type Item struct {
	ID          string  `db:"id"`
	FoodOrderID string  `db:"food_order_id"`
	Name        string  `db:"name"`
	Quantity    int     `db:"quantity"`
	UnitPrice   float64 `db:"unit_price"`
	Amount      float64 `db:"amount"`
}

// BookingRef is the part of a booking a food order needs.
type BookingRef struct {
	ID        string               `db:"id"`
	Status    policy.BookingStatus `db:"status"`
	GuestName string               `db:"guest_name"`
}
