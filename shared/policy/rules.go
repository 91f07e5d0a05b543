package policy

import (
	"fmt"
	"hotelpms/shared/failure"
	"strings"
	"time"
)

// ValidateStay checks the requested dates. Check-out must fall on a later day than check-in.
func ValidateStay(checkin, checkout time.Time) (int, error) {
	nights := Nights(checkin, checkout)
	if nights <= 0 {
		return 0, failure.BadRequestFromString("checkout_date must be after checkin_date")
	}

	return nights, nil
}

// ValidateRoomSelection rejects an empty selection, blank slots and duplicated rooms.
func ValidateRoomSelection(roomIDs []string) error {
	if len(roomIDs) == 0 {
		return failure.BadRequestFromString("at least one room must be selected")
	}

	seen := make(map[string]struct{}, len(roomIDs))

	for idx, roomID := range roomIDs {
		roomID = strings.TrimSpace(roomID)
		if roomID == "" {
			return failure.BadRequestFromString(fmt.Sprintf("room slot %d has no room selected", idx+1))
		}

		if _, ok := seen[roomID]; ok {
			return failure.BadRequestFromString(fmt.Sprintf("room %s is selected more than once", roomID))
		}

		seen[roomID] = struct{}{}
	}

	return nil
}

// ValidateOccupancy checks the party size against the combined room capacity.
func ValidateOccupancy(adults, children, capacity int) error {
	if adults < 1 {
		return failure.BadRequestFromString("at least one adult is required")
	}

	if capacity > 0 && adults+children > capacity {
		return failure.BadRequestFromString(fmt.Sprintf("selected rooms hold %d guests but %d were requested", capacity, adults+children))
	}

	return nil
}

// ValidatePayment enforces amount > 0 and amount <= amount due.
func ValidatePayment(amount, total, paid float64) error {
	if ToCents(amount) <= 0 {
		return failure.BadRequestFromString("payment amount must be greater than zero")
	}

	due := ToCents(total) - ToCents(paid)
	if due <= 0 {
		return failure.BadRequestFromString("nothing is due on this bill")
	}

	if ToCents(amount) > due {
		return failure.BadRequestFromString(fmt.Sprintf("payment amount %.2f exceeds amount due %.2f", Round(amount), FromCents(due)))
	}

	return nil
}

// ValidateRefund caps a refund at what was actually collected and not yet refunded.
func ValidateRefund(refund, paid, alreadyRefunded float64) error {
	if ToCents(refund) < 0 {
		return failure.BadRequestFromString("refund amount cannot be negative")
	}

	refundable := ToCents(paid) - ToCents(alreadyRefunded)
	if ToCents(refund) > refundable {
		return failure.BadRequestFromString(fmt.Sprintf("refund amount %.2f exceeds amount paid %.2f", Round(refund), FromCents(max(0, refundable))))
	}

	return nil
}

// ValidateRetotal rejects an edit that would leave the guest overpaid.
func ValidateRetotal(newTotal, paid float64) error {
	if ToCents(newTotal) < ToCents(paid) {
		return failure.BadRequestFromString(fmt.Sprintf("new total %.2f is below amount already paid %.2f", Round(newTotal), Round(paid)))
	}

	return nil
}

func CanEdit(status BookingStatus) error {
	if status != BookingUpcoming {
		return failure.BadRequestFromString(fmt.Sprintf("only upcoming bookings can be edited, booking is %s", status))
	}

	return nil
}

func CanAcceptPayment(status BookingStatus) error {
	if status == BookingCancelled || status == BookingCheckedOut {
		return failure.BadRequestFromString(fmt.Sprintf("cannot take payment for a %s booking", status))
	}

	return nil
}

func CanCheckIn(status BookingStatus) error {
	if status != BookingUpcoming {
		return failure.BadRequestFromString(fmt.Sprintf("only upcoming bookings can be checked in, booking is %s", status))
	}

	return nil
}

// CanCheckOut requires the stay to be fully paid and every food bill settled.
func CanCheckOut(status BookingStatus, paymentStatus PaymentStatus, foodDue float64) error {
	if status != BookingCheckedIn {
		return failure.BadRequestFromString(fmt.Sprintf("only checked-in bookings can be checked out, booking is %s", status))
	}

	if paymentStatus != PaymentPaid {
		return failure.BadRequestFromString(fmt.Sprintf("checkout requires payment status %s, booking is %s", PaymentPaid, paymentStatus))
	}

	if ToCents(foodDue) > 0 {
		return failure.BadRequestFromString(fmt.Sprintf("food orders still have %.2f due", Round(foodDue)))
	}

	return nil
}

func CanCancel(status BookingStatus) error {
	if status != BookingUpcoming {
		return failure.BadRequestFromString(fmt.Sprintf("only upcoming bookings can be cancelled, booking is %s", status))
	}

	return nil
}

func CanDelete(status BookingStatus) error {
	if status == BookingCheckedIn {
		return failure.BadRequestFromString("a checked-in booking cannot be deleted, check it out first")
	}

	return nil
}

// CanOrderFood allows food orders for guests that are booked or in house.
func CanOrderFood(status BookingStatus) error {
	if status != BookingUpcoming && status != BookingCheckedIn {
		return failure.BadRequestFromString(fmt.Sprintf("cannot order food for a %s booking", status))
	}

	return nil
}

// CanModifyRoom blocks edits and deletes of rooms that are held by a guest.
func CanModifyRoom(status RoomStatus) error {
	if status == RoomOccupied || status == RoomBooked {
		return failure.Conflict(fmt.Sprintf("room is %s and cannot be modified", status))
	}

	return nil
}

// CanSetRoomStatus only allows the statuses a person may set by hand.
func CanSetRoomStatus(status RoomStatus) error {
	if status != RoomAvailable && status != RoomUnderMaintenance {
		return failure.BadRequestFromString(fmt.Sprintf("room status %s is derived from bookings and cannot be set manually", status))
	}

	return nil
}

func CanBookRoom(status RoomStatus) error {
	if status == RoomUnderMaintenance {
		return failure.BadRequestFromString("room is under maintenance")
	}

	return nil
}

// ResolveRoomStatus derives a room's status from the bookings that still hold it.
func ResolveRoomStatus(current RoomStatus, holding []BookingStatus) RoomStatus {
	if current == RoomUnderMaintenance {
		return current
	}

	status := RoomAvailable

	for _, booking := range holding {
		switch booking {
		case BookingCheckedIn:
			return RoomOccupied
		case BookingUpcoming:
			status = RoomBooked
		}
	}

	return status
}
