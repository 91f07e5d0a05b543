package model

import (
	"hotelpms/shared/model"
	"hotelpms/shared/policy"
	"time"
)

const (
	TableName      = "bookings"
	RoomTableName  = "booking_rooms"
	GuestTableName = "booking_guests"
	EntityName     = "booking"

	FieldID            = "id"
	FieldCustomerID    = "customer_id"
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
	FieldCheckinDate   = "checkin_date"
	FieldCheckoutDate  = "checkout_date"
	FieldNights        = "nights"
	FieldTotalAmount   = "total_amount"
	FieldAmountPaid    = "amount_paid"
	FieldRefundAmount  = "refund_amount"
	FieldAdults        = "adults"
	FieldChildren      = "children"
	FieldNotes         = "notes"
	FieldCheckedInAt   = "checked_in_at"
	FieldCheckedOutAt  = "checked_out_at"
	FieldCancelledAt   = "cancelled_at"
	FieldCancelReason  = "cancel_reason"
	FieldBookingID     = "booking_id"
	FieldRoomID        = "room_id"
	FieldRoomNumber    = "room_number"
	FieldActive        = "active"
	FieldGuestName     = "name"
	FieldGuestPhone    = "phone"
)

// Booking is a row of bookings joined with the primary guest's name and phone.
type Booking struct {
	ID            string               `db:"id"`
	CustomerID    string               `db:"customer_id"`
	GuestName     string               `db:"guest_name"     table:"customers" column:"name"`
	GuestPhone    string               `db:"guest_phone"    table:"customers" column:"phone"`
	Status        policy.BookingStatus `db:"status"`
	PaymentStatus policy.PaymentStatus `db:"payment_status"`
	CheckinDate   time.Time            `db:"checkin_date"`
	CheckoutDate  time.Time            `db:"checkout_date"`
	Nights        int                  `db:"nights"`
	TotalAmount   float64              `db:"total_amount"`
	AmountPaid    float64              `db:"amount_paid"`
	RefundAmount  float64              `db:"refund_amount"`
	Adults        int                  `db:"adults"`
	Children      int                  `db:"children"`
	Notes         string               `db:"notes"`
	CheckedInAt   *time.Time           `db:"checked_in_at"`
	CheckedOutAt  *time.Time           `db:"checked_out_at"`
	CancelledAt   *time.Time           `db:"cancelled_at"`
	CancelReason  string               `db:"cancel_reason"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN customers ON customers.id = bookings.customer_id"
}

// Room is one room held by a booking. Inactive rows are kept for history.
type Room struct {
	ID            string    `db:"id"`
	BookingID     string    `db:"booking_id"`
	RoomID        string    `db:"room_id"`
	RoomNumber    string    `db:"room_number"`
	PricePerNight float64   `db:"price_per_night"`
	CheckinDate   time.Time `db:"checkin_date"`
	CheckoutDate  time.Time `db:"checkout_date"`
	Active        bool      `db:"active"`
	model.Metadata
}

// Guest is an additional guest staying with the primary guest.
type Guest struct {
	ID            string `db:"id"`
	BookingID     string `db:"booking_id"`
	Name          string `db:"name"`
	Phone         string `db:"phone"`
	Email         string `db:"email"`
	IDProofType   string `db:"id_proof_type"`
	IDProofNumber string `db:"id_proof_number"`
	Age           int    `db:"age"`
	model.Metadata
}

// Hold is a live booking occupying a room.
type Hold struct {
	RoomID string               `db:"room_id"`
	Status policy.BookingStatus `db:"status"`
}
