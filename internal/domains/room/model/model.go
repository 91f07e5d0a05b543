package model

import (
	"hotelpms/shared/model"
	"hotelpms/shared/policy"
	"time"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldRoomNumber    = "room_number"
	FieldRoomType      = "room_type"
	FieldPricePerNight = "price_per_night"
	FieldCapacity      = "capacity"
	FieldFloor         = "floor"
	FieldDescription   = "description"
	FieldStatus        = "status"
)

type Room struct {
	ID            string            `db:"id"`
	RoomNumber    string            `db:"room_number"`
	RoomType      string            `db:"room_type"`
	PricePerNight float64           `db:"price_per_night"`
	Capacity      int               `db:"capacity"`
	Floor         int               `db:"floor"`
	Description   string            `db:"description"`
	Status        policy.RoomStatus `db:"status"`
	model.Metadata
}

// Stay is one booking that used a room.
type Stay struct {
	BookingID     string               `db:"booking_id"`
	CustomerID    string               `db:"customer_id"`
	GuestName     string               `db:"guest_name"`
	GuestPhone    string               `db:"guest_phone"`
	CheckinDate   time.Time            `db:"checkin_date"`
	CheckoutDate  time.Time            `db:"checkout_date"`
	Nights        int                  `db:"nights"`
	PricePerNight float64              `db:"price_per_night"`
	Status        policy.BookingStatus `db:"status"`
	PaymentStatus policy.PaymentStatus `db:"payment_status"`
	TotalAmount   float64              `db:"total_amount"`
	AmountPaid    float64              `db:"amount_paid"`
}
