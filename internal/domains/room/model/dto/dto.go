package dto

import (
	"hotelpms/internal/domains/room/model"
	"hotelpms/shared"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	gModel "hotelpms/shared/model"
	"hotelpms/shared/policy"
	"hotelpms/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	RoomNumber    string            `json:"room_number"     validate:"required,max=20"`
	RoomType      string            `json:"room_type"       validate:"required,max=50"`
	PricePerNight float64           `json:"price_per_night" validate:"gte=0"`
	Capacity      int               `json:"capacity"        validate:"required,gte=1"`
	Floor         int               `json:"floor"           validate:"gte=0"`
	Description   string            `json:"description"     validate:"omitempty,max=1000"`
	Status        policy.RoomStatus `json:"status"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := c.Status
	if status == "" {
		status = policy.RoomAvailable
	}

	return model.Room{
		ID:            uuid.NewString(),
		RoomNumber:    c.RoomNumber,
		RoomType:      c.RoomType,
		PricePerNight: policy.Round(c.PricePerNight),
		Capacity:      c.Capacity,
		Floor:         c.Floor,
		Description:   c.Description,
		Status:        status,
		Metadata:      gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateRoomRequest struct {
	RoomNumber    string            `db:"room_number"     json:"room_number"     validate:"omitempty,max=20"`
	RoomType      string            `db:"room_type"       json:"room_type"       validate:"omitempty,max=50"`
	PricePerNight *float64          `db:"price_per_night" json:"price_per_night" validate:"omitempty,gte=0"`
	Capacity      *int              `db:"capacity"        json:"capacity"        validate:"omitempty,gte=1"`
	Floor         *int              `db:"floor"           json:"floor"           validate:"omitempty,gte=0"`
	Description   *string           `db:"description"     json:"description"     validate:"omitempty,max=1000"`
	Status        policy.RoomStatus `db:"status"          json:"status"`
}

type AvailabilityRequest struct {
	CheckinDate      string `json:"checkin_date"       validate:"required,date"`
	CheckoutDate     string `json:"checkout_date"      validate:"required,date"`
	RoomType         string `json:"room_type"          validate:"omitempty,max=50"`
	Capacity         int    `json:"capacity"           validate:"gte=0"`
	ExcludeBookingID string `json:"exclude_booking_id" validate:"omitempty,uuid"`
}

// Stay parses the requested dates and checks that they form a stay.
func (a *AvailabilityRequest) Stay() (checkin, checkout time.Time, err error) {
	checkin, err = timezone.ParseDate(a.CheckinDate)
	if err != nil {
		return checkin, checkout, err
	}

	checkout, err = timezone.ParseDate(a.CheckoutDate)
	if err != nil {
		return checkin, checkout, err
	}

	_, err = policy.ValidateStay(checkin, checkout)

	return checkin, checkout, err
}

type HistoryRequest struct {
	gDto.DateRange
	PaymentStatus policy.PaymentStatus
}

type RoomResponse struct {
	ID            string            `json:"id"`
	RoomNumber    string            `json:"room_number"`
	RoomType      string            `json:"room_type"`
	PricePerNight float64           `json:"price_per_night"`
	Capacity      int               `json:"capacity"`
	Floor         int               `json:"floor"`
	Description   string            `json:"description"`
	Status        policy.RoomStatus `json:"status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.PricePerNight = model.PricePerNight
	r.Capacity = model.Capacity
	r.Floor = model.Floor
	r.Description = model.Description
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type AvailableRoomsResponse struct {
	CheckinDate  string         `json:"checkin_date"`
	CheckoutDate string         `json:"checkout_date"`
	Nights       int            `json:"nights"`
	Rooms        []RoomResponse `json:"rooms"`
}

func (r *AvailableRoomsResponse) FromModels(models []model.Room, checkin, checkout time.Time) {
	r.CheckinDate = checkin.Format(constant.DateOnlyFormat)
	r.CheckoutDate = checkout.Format(constant.DateOnlyFormat)
	r.Nights = policy.Nights(checkin, checkout)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type StayResponse struct {
	BookingID     string               `json:"booking_id"`
	CustomerID    string               `json:"customer_id"`
	GuestName     string               `json:"guest_name"`
	GuestPhone    string               `json:"guest_phone"`
	CheckinDate   string               `json:"checkin_date"`
	CheckoutDate  string               `json:"checkout_date"`
	Nights        int                  `json:"nights"`
	PricePerNight float64              `json:"price_per_night"`
	Status        policy.BookingStatus `json:"status"`
	PaymentStatus policy.PaymentStatus `json:"payment_status"`
	TotalAmount   float64              `json:"total_amount"`
	AmountPaid    float64              `json:"amount_paid"`
	AmountDue     float64              `json:"amount_due"`
}

type RoomHistoryResponse struct {
	Room  RoomResponse   `json:"room"`
	From  string         `json:"from"`
	To    string         `json:"to"`
	Stays []StayResponse `json:"stays"`
}

func (r *RoomHistoryResponse) FromModels(room model.Room, req HistoryRequest, stays []model.Stay) {
	r.Room.FromModel(room)
	r.From = req.From.Format(constant.DateOnlyFormat)
	r.To = req.To.Format(constant.DateOnlyFormat)

	r.Stays = make([]StayResponse, len(stays))
	for i, stay := range stays {
		r.Stays[i] = StayResponse{
			BookingID:     stay.BookingID,
			CustomerID:    stay.CustomerID,
			GuestName:     stay.GuestName,
			GuestPhone:    stay.GuestPhone,
			CheckinDate:   stay.CheckinDate.Format(constant.DateOnlyFormat),
			CheckoutDate:  stay.CheckoutDate.Format(constant.DateOnlyFormat),
			Nights:        stay.Nights,
			PricePerNight: stay.PricePerNight,
			Status:        stay.Status,
			PaymentStatus: stay.PaymentStatus,
			TotalAmount:   stay.TotalAmount,
			AmountPaid:    stay.AmountPaid,
			AmountDue:     policy.AmountDue(stay.TotalAmount, stay.AmountPaid),
		}
	}
}
