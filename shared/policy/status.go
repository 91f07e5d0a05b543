// Package policy holds the booking, payment and room rules shared by every domain.
//
// Status values have a single canonical spelling on the wire. Input is accepted in any
// casing or punctuation ("checkin", "checked in", "CHECKED_IN") and normalized on parse.
package policy

import (
	"fmt"
	"strings"
	"unicode"
)

type BookingStatus string

const (
	BookingUpcoming   BookingStatus = "Upcoming"
	BookingCheckedIn  BookingStatus = "Checked-in"
	BookingCheckedOut BookingStatus = "Checked-out"
	BookingCancelled  BookingStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentRefund  PaymentStatus = "REFUND"
)

type RoomStatus string

const (
	RoomAvailable        RoomStatus = "Available"
	RoomBooked           RoomStatus = "Booked"
	RoomOccupied         RoomStatus = "Occupied"
	RoomUnderMaintenance RoomStatus = "UnderMaintenance"
)

type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "CASH"
	PaymentModeCard         PaymentMode = "CARD"
	PaymentModeUPI          PaymentMode = "UPI"
	PaymentModeBankTransfer PaymentMode = "BANK_TRANSFER"
	PaymentModeOnline       PaymentMode = "ONLINE"
)

var (
	bookingStatusAliases = map[string]BookingStatus{
		"upcoming":   BookingUpcoming,
		"confirmed":  BookingUpcoming,
		"reserved":   BookingUpcoming,
		"checkedin":  BookingCheckedIn,
		"checkin":    BookingCheckedIn,
		"inhouse":    BookingCheckedIn,
		"checkedout": BookingCheckedOut,
		"checkout":   BookingCheckedOut,
		"cancelled":  BookingCancelled,
		"canceled":   BookingCancelled,
		"cancel":     BookingCancelled,
	}

	paymentStatusAliases = map[string]PaymentStatus{
		"unpaid":        PaymentUnpaid,
		"pending":       PaymentUnpaid,
		"partial":       PaymentPartial,
		"partiallypaid": PaymentPartial,
		"paid":          PaymentPaid,
		"fullypaid":     PaymentPaid,
		"refund":        PaymentRefund,
		"refunded":      PaymentRefund,
	}

	roomStatusAliases = map[string]RoomStatus{
		"available":        RoomAvailable,
		"vacant":           RoomAvailable,
		"booked":           RoomBooked,
		"reserved":         RoomBooked,
		"occupied":         RoomOccupied,
		"undermaintenance": RoomUnderMaintenance,
		"maintenance":      RoomUnderMaintenance,
	}

	paymentModeAliases = map[string]PaymentMode{
		"cash":         PaymentModeCash,
		"card":         PaymentModeCard,
		"creditcard":   PaymentModeCard,
		"debitcard":    PaymentModeCard,
		"upi":          PaymentModeUPI,
		"banktransfer": PaymentModeBankTransfer,
		"bank":         PaymentModeBankTransfer,
		"neft":         PaymentModeBankTransfer,
		"online":       PaymentModeOnline,
	}
)

// normalize lowercases s and drops everything that is not a letter.
func normalize(s string) string {
	var builder strings.Builder

	for _, r := range s {
		if unicode.IsLetter(r) {
			builder.WriteRune(unicode.ToLower(r))
		}
	}

	return builder.String()
}

func parse[T ~string](kind, value string, aliases map[string]T) (T, error) {
	if status, ok := aliases[normalize(value)]; ok {
		return status, nil
	}

	var zero T

	return zero, fmt.Errorf("unknown %s %q", kind, value)
}

func ParseBookingStatus(value string) (BookingStatus, error) {
	return parse("booking status", value, bookingStatusAliases)
}

func ParsePaymentStatus(value string) (PaymentStatus, error) {
	return parse("payment status", value, paymentStatusAliases)
}

func ParseRoomStatus(value string) (RoomStatus, error) {
	return parse("room status", value, roomStatusAliases)
}

func ParsePaymentMode(value string) (PaymentMode, error) {
	return parse("payment mode", value, paymentModeAliases)
}

func (s *BookingStatus) UnmarshalText(text []byte) (err error) {
	*s, err = ParseBookingStatus(string(text))

	return err
}

func (s *PaymentStatus) UnmarshalText(text []byte) (err error) {
	*s, err = ParsePaymentStatus(string(text))

	return err
}

func (s *RoomStatus) UnmarshalText(text []byte) (err error) {
	*s, err = ParseRoomStatus(string(text))

	return err
}

func (m *PaymentMode) UnmarshalText(text []byte) (err error) {
	*m, err = ParsePaymentMode(string(text))

	return err
}

func (s BookingStatus) String() string { return string(s) }
func (s PaymentStatus) String() string { return string(s) }
func (s RoomStatus) String() string    { return string(s) }
func (m PaymentMode) String() string   { return string(m) }

// PaymentModes lists every accepted payment mode in display order.
func PaymentModes() []PaymentMode {
	return []PaymentMode{PaymentModeCash, PaymentModeCard, PaymentModeUPI, PaymentModeBankTransfer, PaymentModeOnline}
}
