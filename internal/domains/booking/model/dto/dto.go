package dto

import (
	"hotelpms/internal/domains/booking/model"
	customerModel "hotelpms/internal/domains/customer/model"
	customerDto "hotelpms/internal/domains/customer/model/dto"
	trxModel "hotelpms/internal/domains/transaction/model"
	"hotelpms/shared"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/failure"
	gModel "hotelpms/shared/model"
	"hotelpms/shared/policy"
	"hotelpms/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PrimaryGuest names an existing customer or carries details to upsert by phone.
type PrimaryGuest struct {
	CustomerID string                       `json:"customer_id" validate:"omitempty,uuid"`
	Customer   *customerDto.CustomerRequest `json:"customer"    validate:"omitempty"`
}

type GuestRequest struct {
	Name          string `json:"name"            validate:"required,max=255"`
	Phone         string `json:"phone"           validate:"omitempty,max=20,phone"`
	Email         string `json:"email"           validate:"omitempty,email,max=255"`
	IDProofType   string `json:"id_proof_type"   validate:"omitempty,max=50"`
	IDProofNumber string `json:"id_proof_number" validate:"omitempty,max=100"`
	Age           int    `json:"age"             validate:"gte=0,lte=150"`
}

// BookingRequest is the body of both create and edit. RoomIDs holds one entry per room slot.
type BookingRequest struct {
	CheckinDate      string               `json:"checkin_date"      validate:"required,date"`
	CheckoutDate     string               `json:"checkout_date"     validate:"required,date"`
	RoomIDs          []string             `json:"room_ids"          validate:"required,dive,uuid"`
	PrimaryGuest     PrimaryGuest         `json:"primary_guest"`
	AdditionalGuests []GuestRequest       `json:"additional_guests" validate:"omitempty,dive"`
	Adults           int                  `json:"adults"            validate:"gte=1"`
	Children         int                  `json:"children"          validate:"gte=0"`
	Notes            string               `json:"notes"             validate:"omitempty,max=2000"`
	Payment          *gDto.PaymentRequest `json:"payment"           validate:"omitempty"`
}

// Stay parses the dates and returns the night count.
func (b *BookingRequest) Stay() (checkin, checkout time.Time, nights int, err error) {
	checkin, err = timezone.ParseDate(b.CheckinDate)
	if err != nil {
		return checkin, checkout, 0, failure.BadRequestFromString("checkin_date must be a date in YYYY-MM-DD format")
	}

	checkout, err = timezone.ParseDate(b.CheckoutDate)
	if err != nil {
		return checkin, checkout, 0, failure.BadRequestFromString("checkout_date must be a date in YYYY-MM-DD format")
	}

	nights, err = policy.ValidateStay(checkin, checkout)

	return checkin, checkout, nights, err
}

// Validate runs the checks that need no stored data.
func (b *BookingRequest) Validate() error {
	for i := range b.RoomIDs {
		b.RoomIDs[i] = strings.TrimSpace(b.RoomIDs[i])
	}

	if err := policy.ValidateRoomSelection(b.RoomIDs); err != nil {
		return err
	}

	if b.PrimaryGuest.CustomerID == constant.Empty && b.PrimaryGuest.Customer == nil {
		return failure.BadRequestFromString("primary_guest needs a customer_id or customer details")
	}

	if b.PrimaryGuest.Customer != nil && b.PrimaryGuest.Customer.IDProofFile != constant.Empty {
		return failure.BadRequestFromString("id_proof_file must be uploaded through the customer endpoints")
	}

	if b.Payment != nil && b.Payment.Amount > 0 && b.Payment.PaymentMode == "" {
		return failure.BadRequestFromString("payment_mode is required with a payment")
	}

	return nil
}

func (b *BookingRequest) GuestModels(bookingID string, phones []string, user string) []model.Guest {
	now := timezone.Now()

	guests := make([]model.Guest, len(b.AdditionalGuests))
	for i, guest := range b.AdditionalGuests {
		guests[i] = model.Guest{
			ID:            uuid.NewString(),
			BookingID:     bookingID,
			Name:          strings.TrimSpace(guest.Name),
			Phone:         phones[i],
			Email:         strings.ToLower(strings.TrimSpace(guest.Email)),
			IDProofType:   guest.IDProofType,
			IDProofNumber: guest.IDProofNumber,
			Age:           guest.Age,
			Metadata:      gModel.NewMetadata(now, user),
		}
	}

	return guests
}

type CancelRequest struct {
	RefundAmount float64            `json:"refund_amount" validate:"gte=0"`
	PaymentMode  policy.PaymentMode `json:"payment_mode"`
	Reason       string             `json:"reason"        validate:"omitempty,max=1000"`
}

type RoomResponse struct {
	RoomID        string  `json:"room_id"`
	RoomNumber    string  `json:"room_number"`
	PricePerNight float64 `json:"price_per_night"`
	CheckinDate   string  `json:"checkin_date"`
	CheckoutDate  string  `json:"checkout_date"`
	Active        bool    `json:"active"`
	Amount        float64 `json:"amount"`
}

type GuestResponse struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	IDProofType   string `json:"id_proof_type"`
	IDProofNumber string `json:"id_proof_number"`
	Age           int    `json:"age"`
}

type PrimaryGuestResponse struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}

type BookingResponse struct {
	ID               string                        `json:"booking_id"`
	Status           policy.BookingStatus          `json:"status"`
	PaymentStatus    policy.PaymentStatus          `json:"payment_status"`
	CheckinDate      string                        `json:"checkin_date"`
	CheckoutDate     string                        `json:"checkout_date"`
	Nights           int                           `json:"nights"`
	TotalAmount      float64                       `json:"total_amount"`
	AmountPaid       float64                       `json:"amount_paid"`
	RefundAmount     float64                       `json:"refund_amount"`
	AmountDue        float64                       `json:"amount_due"`
	Adults           int                           `json:"adults"`
	Children         int                           `json:"children"`
	Notes            string                        `json:"notes"`
	CheckedInAt      string                        `json:"checked_in_at,omitempty"`
	CheckedOutAt     string                        `json:"checked_out_at,omitempty"`
	CancelledAt      string                        `json:"cancelled_at,omitempty"`
	CancelReason     string                        `json:"cancel_reason,omitempty"`
	PrimaryGuest     PrimaryGuestResponse          `json:"primary_guest"`
	Customer         *customerDto.CustomerResponse `json:"customer,omitempty"`
	Rooms            []RoomResponse                `json:"rooms"`
	AdditionalGuests []GuestResponse               `json:"additional_guests"`
	gDto.Metadata
}

// FromModel fills the response from the booking and whichever of its rooms are in rooms.
func (r *BookingResponse) FromModel(booking model.Booking, rooms []model.Room, guests []model.Guest) {
	r.ID = booking.ID
	r.Status = booking.Status
	r.PaymentStatus = booking.PaymentStatus
	r.CheckinDate = booking.CheckinDate.Format(constant.DateOnlyFormat)
	r.CheckoutDate = booking.CheckoutDate.Format(constant.DateOnlyFormat)
	r.Nights = booking.Nights
	r.TotalAmount = booking.TotalAmount
	r.AmountPaid = booking.AmountPaid
	r.RefundAmount = booking.RefundAmount
	r.AmountDue = AmountDue(booking)
	r.Adults = booking.Adults
	r.Children = booking.Children
	r.Notes = booking.Notes
	r.CheckedInAt = formatOptional(booking.CheckedInAt)
	r.CheckedOutAt = formatOptional(booking.CheckedOutAt)
	r.CancelledAt = formatOptional(booking.CancelledAt)
	r.CancelReason = booking.CancelReason
	r.PrimaryGuest = PrimaryGuestResponse{CustomerID: booking.CustomerID, Name: booking.GuestName, Phone: booking.GuestPhone}
	r.Metadata.FromModel(booking.Metadata)

	r.Rooms = []RoomResponse{}
	for _, room := range rooms {
		if room.BookingID != booking.ID {
			continue
		}

		nights := policy.Nights(room.CheckinDate, room.CheckoutDate)

		r.Rooms = append(r.Rooms, RoomResponse{
			RoomID:        room.RoomID,
			RoomNumber:    room.RoomNumber,
			PricePerNight: room.PricePerNight,
			CheckinDate:   room.CheckinDate.Format(constant.DateOnlyFormat),
			CheckoutDate:  room.CheckoutDate.Format(constant.DateOnlyFormat),
			Active:        room.Active,
			Amount:        policy.StayTotal([]float64{room.PricePerNight}, nights),
		})
	}

	r.AdditionalGuests = make([]GuestResponse, 0, len(guests))
	for _, guest := range guests {
		r.AdditionalGuests = append(r.AdditionalGuests, GuestResponse{
			Name:          guest.Name,
			Phone:         guest.Phone,
			Email:         guest.Email,
			IDProofType:   guest.IDProofType,
			IDProofNumber: guest.IDProofNumber,
			Age:           guest.Age,
		})
	}
}

func (r *BookingResponse) WithCustomer(customer customerModel.Customer) {
	if customer.ID == constant.Empty {
		return
	}

	res := customerDto.CustomerResponse{}
	res.FromModel(customer)

	r.Customer = &res
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(bookings []model.Booking, rooms []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		r.Bookings[i].FromModel(booking, rooms, nil)
	}
}

type PaymentResponse struct {
	BookingID     string               `json:"booking_id"`
	TransactionID string               `json:"transaction_id"`
	Amount        float64              `json:"amount"`
	AmountPaid    float64              `json:"amount_paid"`
	AmountDue     float64              `json:"amount_due"`
	PaymentStatus policy.PaymentStatus `json:"payment_status"`
}

type TransactionResponse struct {
	ID          string             `json:"transaction_id"`
	BookingID   string             `json:"booking_id"`
	FoodOrderID string             `json:"food_order_id,omitempty"`
	GuestName   string             `json:"guest_name"`
	Amount      float64            `json:"amount_paid"`
	PaymentMode policy.PaymentMode `json:"payment_mode"`
	IsRefund    bool               `json:"is_refund"`
	Note        string             `json:"note"`
	CreatedAt   string             `json:"created_at"`
	CreatedBy   string             `json:"created_by"`
}

func (r *TransactionResponse) FromModel(trx trxModel.Transaction) {
	r.ID = trx.ID
	r.BookingID = deref(trx.BookingID)
	r.FoodOrderID = deref(trx.FoodOrderID)
	r.GuestName = trx.GuestName
	r.Amount = trx.Amount
	r.PaymentMode = trx.PaymentMode
	r.IsRefund = trx.IsRefund
	r.Note = trx.Note
	r.CreatedAt = timezone.Format(trx.CreatedAt, constant.DateFormat)
	r.CreatedBy = trx.CreatedBy
}

func TransactionsFromModels(models []trxModel.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(models))
	for i, trx := range models {
		res[i].FromModel(trx)
	}

	return res
}

// InvoiceData is everything printed on a booking invoice.
type InvoiceData struct {
	Booking      BookingResponse
	Customer     customerDto.CustomerResponse
	FoodOrders   []FoodOrderLine
	Transactions []TransactionResponse
	GeneratedAt  time.Time
}

// FoodOrderLine is one billed food item.
type FoodOrderLine struct {
	Name      string
	Quantity  int
	UnitPrice float64
	Amount    float64
}

// InvoiceResponse is the rendered invoice and, when the upload succeeded, its public URL.
type InvoiceResponse struct {
	PDF []byte
	URL string
}

// AmountDue is what the guest still owes for the stay. Cancelled bookings owe nothing.
func AmountDue(booking model.Booking) float64 {
	if booking.Status == policy.BookingCancelled {
		return 0
	}

	return policy.AmountDue(booking.TotalAmount, booking.AmountPaid)
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return constant.Empty
	}

	return timezone.Format(*t, constant.DateFormat)
}

func deref(value *string) string {
	if value == nil {
		return constant.Empty
	}

	return *value
}
