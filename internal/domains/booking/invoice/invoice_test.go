package invoice_test

import (
	"bytes"
	"hotelpms/internal/domains/booking/invoice"
	"hotelpms/internal/domains/booking/model/dto"
	customerDto "hotelpms/internal/domains/customer/model/dto"
	"hotelpms/shared/policy"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	renderer := invoice.New(invoice.Hotel{Name: "Hotel Sagar", Address: "MG Road, Bengaluru", GSTNumber: "29ABCDE1234F1Z5"})

	data := dto.InvoiceData{
		Booking: dto.BookingResponse{
			ID:            "7f7c8a2e-8d39-4a53-9a36-5d1f0c9d9b10",
			Status:        policy.BookingCheckedOut,
			PaymentStatus: policy.PaymentPaid,
			CheckinDate:   "2024-08-14",
			CheckoutDate:  "2024-08-16",
			Nights:        2,
			TotalAmount:   5000,
			AmountPaid:    5000,
			Adults:        2,
			Rooms: []dto.RoomResponse{
				{RoomNumber: "101", CheckinDate: "2024-08-14", CheckoutDate: "2024-08-16", PricePerNight: 2500, Amount: 5000},
			},
		},
		Customer:   customerDto.CustomerResponse{Name: "Ravi Kumar", Phone: "+919876543210", City: "Mysuru"},
		FoodOrders: []dto.FoodOrderLine{{Name: "Masala Dosa", Quantity: 2, UnitPrice: 120, Amount: 240}},
		Transactions: []dto.TransactionResponse{
			{Amount: 5000, PaymentMode: policy.PaymentModeUPI, CreatedAt: "2024-08-14T10:00:00+05:30"},
			{Amount: 240, PaymentMode: policy.PaymentModeCash, FoodOrderID: "order-1", CreatedAt: "2024-08-15T20:00:00+05:30"},
		},
		GeneratedAt: time.Date(2024, 8, 16, 11, 0, 0, 0, time.UTC),
	}

	pdf, err := renderer.Render(data)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestRenderer_RenderWithoutExtras(t *testing.T) {
	renderer := invoice.New(invoice.Hotel{Name: "Hotel Sagar"})

	pdf, err := renderer.Render(dto.InvoiceData{Booking: dto.BookingResponse{ID: "booking-1"}})

	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
