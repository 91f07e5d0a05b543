package model

import (
	"hotelpms/shared/policy"
	"time"
)

const (
	TableName  = "transactions"
	EntityName = "transaction"

	FieldID          = "id"
	FieldBookingID   = "booking_id"
	FieldFoodOrderID = "food_order_id"
	FieldGuestName   = "guest_name"
	FieldAmount      = "amount"
	FieldPaymentMode = "payment_mode"
	FieldIsRefund    = "is_refund"
	FieldCreatedAt   = "created_at"
)

// Transaction is a single movement of money. Refunds carry a positive amount with IsRefund set.
type Transaction struct {
	ID          string             `db:"id"`
	BookingID   *string            `db:"booking_id"`
	FoodOrderID *string            `db:"food_order_id"`
	GuestName   string             `db:"guest_name"`
	Amount      float64            `db:"amount"`
	PaymentMode policy.PaymentMode `db:"payment_mode"`
	IsRefund    bool               `db:"is_refund"`
	Note        string             `db:"note"`
	CreatedAt   time.Time          `db:"created_at"`
	CreatedBy   string             `db:"created_by"`
}

// ModeTotal aggregates transactions for one payment mode.
type ModeTotal struct {
	PaymentMode policy.PaymentMode `db:"payment_mode"`
	Collected   float64            `db:"collected"`
	Refunded    float64            `db:"refunded"`
	Count       int                `db:"count"`
}

// DayTotal aggregates transactions for one calendar day.
type DayTotal struct {
	Day       time.Time `db:"day"`
	Collected float64   `db:"collected"`
	Refunded  float64   `db:"refunded"`
	Count     int       `db:"count"`
}
