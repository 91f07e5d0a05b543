package service

import (
	"context"
	"fmt"
	"hotelpms/internal/domains/booking/model"
	"hotelpms/internal/domains/booking/model/dto"
	roomModel "hotelpms/internal/domains/room/model"
	trxModel "hotelpms/internal/domains/transaction/model"
	"hotelpms/internal/events"
	"hotelpms/shared"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/policy"
	"hotelpms/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Pay records a payment against the stay under a row lock on the booking.
func (s *serviceImpl) Pay(ctx context.Context, id string, req gDto.PaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pay")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.PaymentMode == constant.Empty {
		return res, failure.BadRequestFromString("payment_mode is required")
	}

	user := shared.UserFromContext(ctx)
	amount := policy.Round(req.Amount)
	trx := trxModel.Transaction{}

	var booking model.Booking

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		booking = current

		if err := policy.CanAcceptPayment(booking.Status); err != nil {
			return err
		}

		if err := policy.ValidatePayment(amount, booking.TotalAmount, booking.AmountPaid); err != nil {
			return err
		}

		now := timezone.Now()

		booking.AmountPaid = policy.Round(booking.AmountPaid + amount)
		booking.PaymentStatus = policy.DerivePaymentStatus(booking.TotalAmount, booking.AmountPaid, booking.RefundAmount)

		err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldAmountPaid:    booking.AmountPaid,
			model.FieldPaymentStatus: booking.PaymentStatus,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}, byID(id))
		if err != nil {
			return fmt.Errorf("failed to update booking payment: %w", err)
		}

		trx = newTransaction(booking, amount, req.PaymentMode, req.Note, false, user, now)

		return s.trxRepo.InsertTx(ctx, tx, trx)
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Float64("amount", amount).Msg("failed to record booking payment")

		return res, failure.FromPostgres(err, errBookingConflict)
	}

	s.invalidate(ctx, id)

	return dto.PaymentResponse{
		BookingID:     booking.ID,
		TransactionID: trx.ID,
		Amount:        amount,
		AmountPaid:    booking.AmountPaid,
		AmountDue:     dto.AmountDue(booking),
		PaymentStatus: booking.PaymentStatus,
	}, nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.transition(ctx, id, func(ctx context.Context, tx *sqlx.Tx, booking *model.Booking, now time.Time) (map[string]any, error) {
		if err := policy.CanCheckIn(booking.Status); err != nil {
			return nil, err
		}

		booking.Status = policy.BookingCheckedIn
		booking.CheckedInAt = &now

		return map[string]any{
			model.FieldStatus:      booking.Status,
			model.FieldCheckedInAt: now,
		}, nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to check in booking")

		return res, err
	}

	return s.detail(ctx, booking)
}

// CheckOut requires the stay and its food orders to be settled and releases every room.
func (s *serviceImpl) CheckOut(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.transition(ctx, id, func(ctx context.Context, tx *sqlx.Tx, booking *model.Booking, now time.Time) (map[string]any, error) {
		foodDue, err := s.foodRepo.DueByBookingTx(ctx, tx, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get food order dues: %w", err)
		}

		if err := policy.CanCheckOut(booking.Status, booking.PaymentStatus, foodDue); err != nil {
			return nil, err
		}

		if err := s.releaseRooms(ctx, tx, booking.ID, now); err != nil {
			return nil, err
		}

		booking.Status = policy.BookingCheckedOut
		booking.CheckedOutAt = &now

		return map[string]any{
			model.FieldStatus:       booking.Status,
			model.FieldCheckedOutAt: now,
		}, nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to check out booking")

		return res, err
	}

	return s.detail(ctx, booking)
}

// Cancel releases the rooms of an upcoming booking and records an optional refund.
func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	refund := policy.Round(req.RefundAmount)

	if refund > 0 && req.PaymentMode == constant.Empty {
		return res, failure.BadRequestFromString("payment_mode is required with a refund")
	}

	user := shared.UserFromContext(ctx)

	booking, err := s.transition(ctx, id, func(ctx context.Context, tx *sqlx.Tx, booking *model.Booking, now time.Time) (map[string]any, error) {
		if err := policy.CanCancel(booking.Status); err != nil {
			return nil, err
		}

		if err := policy.ValidateRefund(refund, booking.AmountPaid, booking.RefundAmount); err != nil {
			return nil, err
		}

		if err := s.releaseRooms(ctx, tx, booking.ID, now); err != nil {
			return nil, err
		}

		booking.Status = policy.BookingCancelled
		booking.CancelledAt = &now
		booking.CancelReason = strings.TrimSpace(req.Reason)
		booking.RefundAmount = policy.Round(booking.RefundAmount + refund)
		booking.PaymentStatus = policy.DerivePaymentStatus(booking.TotalAmount, booking.AmountPaid, booking.RefundAmount)

		if refund > 0 {
			err := s.trxRepo.InsertTx(ctx, tx, newTransaction(*booking, refund, req.PaymentMode, booking.CancelReason, true, user, now))
			if err != nil {
				return nil, fmt.Errorf("failed to record refund: %w", err)
			}
		}

		return map[string]any{
			model.FieldStatus:        booking.Status,
			model.FieldCancelledAt:   now,
			model.FieldCancelReason:  booking.CancelReason,
			model.FieldRefundAmount:  booking.RefundAmount,
			model.FieldPaymentStatus: booking.PaymentStatus,
		}, nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to cancel booking")

		return res, err
	}

	return s.detail(ctx, booking)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user := shared.UserFromContext(ctx)

	var changes []events.RoomStatusChanged

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		booking, err := s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := policy.CanDelete(booking.Status); err != nil {
			return err
		}

		rooms, err := s.lockHeldRooms(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := s.repo.DeleteTx(ctx, tx, byID(id)); err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}

		changes, err = s.syncRooms(ctx, tx, rooms, id, user)

		return err
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to delete booking")

		return failure.FromPostgres(err, errBookingConflict)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, changes)

	return nil
}

// transitionFunc applies a status change to the locked booking and returns the columns to write.
type transitionFunc func(ctx context.Context, tx *sqlx.Tx, booking *model.Booking, now time.Time) (map[string]any, error)

// transition locks the booking and its held rooms, applies fn, then re-derives the room statuses.
func (s *serviceImpl) transition(ctx context.Context, id string, fn transitionFunc) (model.Booking, error) {
	user := shared.UserFromContext(ctx)

	var (
		booking model.Booking
		changes []events.RoomStatusChanged
	)

	err := s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		booking = current

		rooms, err := s.lockHeldRooms(ctx, tx, id)
		if err != nil {
			return err
		}

		now := timezone.Now()

		fields, err := fn(ctx, tx, &booking, now)
		if err != nil {
			return err
		}

		booking.ModifiedAt = now
		booking.ModifiedBy = user
		fields[constant.FieldModifiedAt] = now
		fields[constant.FieldModifiedBy] = user

		if err := s.repo.UpdateTx(ctx, tx, fields, byID(id)); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		changes, err = s.syncRooms(ctx, tx, rooms, id, user)

		return err
	})
	if err != nil {
		return booking, failure.FromPostgres(err, errBookingConflict)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, changes)

	return booking, nil
}

// lockHeldRooms locks the rooms the booking still holds.
func (s *serviceImpl) lockHeldRooms(ctx context.Context, tx *sqlx.Tx, bookingID string) ([]roomModel.Room, error) {
	active, err := s.repo.GetActiveRoomsTx(ctx, tx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking rooms: %w", err)
	}

	ids := make([]string, len(active))
	for idx, room := range active {
		ids[idx] = room.RoomID
	}

	rooms, err := s.roomRepo.LockTx(ctx, tx, unique(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to lock rooms: %w", err)
	}

	return rooms, nil
}

// releaseRooms deactivates the booking's room rows so they no longer hold their dates.
func (s *serviceImpl) releaseRooms(ctx context.Context, tx *sqlx.Tx, bookingID string, now time.Time) error {
	err := s.repo.UpdateRoomsTx(ctx, tx, map[string]any{
		model.FieldActive:        false,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: shared.UserFromContext(ctx),
	}, activeRoomsOf(bookingID))
	if err != nil {
		return fmt.Errorf("failed to release booking rooms: %w", err)
	}

	return nil
}

func newTransaction(booking model.Booking, amount float64, mode policy.PaymentMode, note string, refund bool,
	user string, now time.Time,
) trxModel.Transaction {
	bookingID := booking.ID

	return trxModel.Transaction{
		ID:          uuid.NewString(),
		BookingID:   &bookingID,
		GuestName:   booking.GuestName,
		Amount:      amount,
		PaymentMode: mode,
		IsRefund:    refund,
		Note:        strings.TrimSpace(note),
		CreatedAt:   now,
		CreatedBy:   user,
	}
}
