package policy

import (
	"math"
	"time"
)

const centsPerUnit = 100

// ToCents converts an amount to integer cents, rounding half away from zero.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * centsPerUnit))
}

func FromCents(cents int64) float64 {
	return float64(cents) / centsPerUnit
}

// Round rounds an amount to two decimals.
func Round(amount float64) float64 {
	return FromCents(ToCents(amount))
}

// Nights counts calendar nights between two dates, ignoring time of day.
func Nights(checkin, checkout time.Time) int {
	in := time.Date(checkin.Year(), checkin.Month(), checkin.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkout.Year(), checkout.Month(), checkout.Day(), 0, 0, 0, 0, time.UTC)

	return int(out.Sub(in).Hours() / 24)
}

// StayTotal is the sum of price_per_night x nights over every booked room.
func StayTotal(pricesPerNight []float64, nights int) float64 {
	var total int64

	for _, price := range pricesPerNight {
		total += ToCents(price) * int64(nights)
	}

	return FromCents(total)
}

// ItemsTotal is the sum of quantity x unit price.
func ItemsTotal(quantities []int, unitPrices []float64) float64 {
	var total int64

	for idx := range min(len(quantities), len(unitPrices)) {
		total += ToCents(unitPrices[idx]) * int64(quantities[idx])
	}

	return FromCents(total)
}

// AmountDue is what remains to be collected, never negative.
func AmountDue(total, paid float64) float64 {
	return FromCents(max(0, ToCents(total)-ToCents(paid)))
}

// DerivePaymentStatus computes the payment status from the running totals.
// A booking that ever refunded money reports REFUND.
func DerivePaymentStatus(total, paid, refunded float64) PaymentStatus {
	switch {
	case ToCents(refunded) > 0:
		return PaymentRefund
	case ToCents(total) > 0 && ToCents(paid) >= ToCents(total):
		return PaymentPaid
	case ToCents(paid) > 0:
		return PaymentPartial
	default:
		return PaymentUnpaid
	}
}
