package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelpms/infras/otel"
	"hotelpms/infras/postgres"
	"hotelpms/internal/domains/room/model"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/policy"
	gRepo "hotelpms/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

// activeOverlap matches live booking rooms that share at least one night with [:checkin, :checkout).
const activeOverlap = `booking_rooms.active
	AND booking_rooms.checkin_date < :checkout
	AND booking_rooms.checkout_date > :checkin`

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
	GetForUpdate(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Room, error)
	LockTx(ctx context.Context, tx *sqlx.Tx, ids []string) ([]model.Room, error)
	GetAvailable(ctx context.Context, filter AvailabilityFilter) ([]model.Room, error)
	GetConflictsTx(ctx context.Context, tx *sqlx.Tx, ids []string, checkin, checkout time.Time, excludeBookingID string) ([]string, error)
	GetHistory(ctx context.Context, roomID string, from, to time.Time, paymentStatus policy.PaymentStatus) ([]model.Stay, error)
}

// AvailabilityFilter narrows the free room search.
type AvailabilityFilter struct {
	Checkin          time.Time
	Checkout         time.Time
	RoomType         string
	MinCapacity      int
	ExcludeBookingID string
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// LockTx reads the rooms with a row lock, ordered by id so concurrent bookings lock in the same order.
func (r *repositoryImpl) LockTx(ctx context.Context, tx *sqlx.Tx, ids []string) ([]model.Room, error) {
	rooms := []model.Room{}
	if len(ids) == 0 {
		return rooms, nil
	}

	where, args := r.BuildWhereClause(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	})

	query := fmt.Sprintf("SELECT * FROM %s %s ORDER BY %s.%s FOR UPDATE", model.TableName, where, model.TableName, model.FieldID)

	if err := r.QueryTx(ctx, tx, &rooms, query, args); err != nil {
		return nil, err
	}

	return rooms, nil
}

func (r *repositoryImpl) GetAvailable(ctx context.Context, filter AvailabilityFilter) ([]model.Room, error) {
	group := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: policy.RoomUnderMaintenance, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value: gDto.PlainQuery{
					SQL: `NOT EXISTS (SELECT 1 FROM booking_rooms WHERE booking_rooms.room_id = rooms.id AND ` + activeOverlap + `
						AND CAST(booking_rooms.booking_id AS TEXT) <> :exclude_booking_id)`,
					Args: map[string]any{
						"checkin":            filter.Checkin,
						"checkout":           filter.Checkout,
						"exclude_booking_id": filter.ExcludeBookingID,
					},
				},
			},
		},
	}

	if filter.RoomType != "" {
		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldRoomType, Value: filter.RoomType, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if filter.MinCapacity > 0 {
		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldCapacity, Value: filter.MinCapacity, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldRoomNumber, SortDir: gDto.SortDirAsc}

	return r.GetAll(ctx, params, group)
}

// GetConflictsTx returns the numbers of the given rooms that are already held for an overlapping stay.
func (r *repositoryImpl) GetConflictsTx(ctx context.Context, tx *sqlx.Tx, ids []string, checkin, checkout time.Time, excludeBookingID string) ([]string, error) {
	conflicts := []string{}
	if len(ids) == 0 {
		return conflicts, nil
	}

	where, args := r.BuildWhereClause(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: "room_id", Value: ids, Operator: gDto.FilterOperatorIn, Table: "booking_rooms"},
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value: gDto.PlainQuery{
					SQL: activeOverlap + " AND CAST(booking_rooms.booking_id AS TEXT) <> :exclude_booking_id",
					Args: map[string]any{
						"checkin":            checkin,
						"checkout":           checkout,
						"exclude_booking_id": excludeBookingID,
					},
				},
			},
		},
	})

	query := "SELECT DISTINCT booking_rooms.room_number FROM booking_rooms " + where + " ORDER BY booking_rooms.room_number"

	if err := r.QueryTx(ctx, tx, &conflicts, query, args); err != nil {
		return nil, err
	}

	return conflicts, nil
}

func (r *repositoryImpl) GetHistory(ctx context.Context, roomID string, from, to time.Time, paymentStatus policy.PaymentStatus) ([]model.Stay, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetHistory")
	defer scope.End()

	group := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: "room_id", Value: roomID, Operator: gDto.FilterOperatorEq, Table: "booking_rooms"},
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value: gDto.PlainQuery{
					SQL:  "booking_rooms.checkin_date <= :to AND booking_rooms.checkout_date >= :from",
					Args: map[string]any{"from": from, "to": to},
				},
			},
		},
	}

	if paymentStatus != "" {
		group.Filters = append(group.Filters, gDto.Filter{Field: "payment_status", Value: paymentStatus, Operator: gDto.FilterOperatorEq, Table: "bookings"})
	}

	where, args := group.GetWhereClause()

	query := `SELECT
			bookings.id AS booking_id,
			bookings.customer_id,
			customers.name AS guest_name,
			customers.phone AS guest_phone,
			booking_rooms.checkin_date,
			booking_rooms.checkout_date,
			bookings.nights,
			booking_rooms.price_per_night,
			bookings.status,
			bookings.payment_status,
			bookings.total_amount,
			bookings.amount_paid
		FROM booking_rooms
		JOIN bookings ON bookings.id = booking_rooms.booking_id
		JOIN customers ON customers.id = bookings.customer_id
		WHERE ` + where + `
		ORDER BY booking_rooms.checkin_date DESC`

	stays := []model.Stay{}

	if err := r.Query(ctx, &stays, query, args); err != nil {
		scope.TraceError(err)

		return nil, err
	}

	return stays, nil
}
