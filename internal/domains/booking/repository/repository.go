package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotelpms/infras/otel"
	"hotelpms/infras/postgres"
	"hotelpms/internal/domains/booking/model"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/policy"
	gRepo "hotelpms/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking, rooms []model.Room, guests []model.Guest) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetForUpdate(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
	InsertRoomsTx(ctx context.Context, tx *sqlx.Tx, rooms []model.Room) error
	GetRooms(ctx context.Context, bookingIDs []string) ([]model.Room, error)
	GetActiveRoomsTx(ctx context.Context, tx *sqlx.Tx, bookingID string) ([]model.Room, error)
	UpdateRoomsTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteRoomsTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
	ReplaceGuestsTx(ctx context.Context, tx *sqlx.Tx, bookingID string, guests []model.Guest) error
	GetGuests(ctx context.Context, bookingID string) ([]model.Guest, error)
	GetHoldsTx(ctx context.Context, tx *sqlx.Tx, roomIDs []string) ([]model.Hold, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	rooms  gRepo.Repository[model.Room]
	guests gRepo.Repository[model.Guest]
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		rooms:      gRepo.NewRepository[model.Room](model.EntityName+"_room", model.RoomTableName, model.FieldID, db, otel),
		guests:     gRepo.NewRepository[model.Guest](model.EntityName+"_guest", model.GuestTableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking, rooms []model.Room, guests []model.Guest) error {
	if err := r.Repository.InsertTx(ctx, tx, booking); err != nil {
		return err
	}

	if err := r.InsertRoomsTx(ctx, tx, rooms); err != nil {
		return err
	}

	if len(guests) == 0 {
		return nil
	}

	return r.guests.InsertBulkTx(ctx, tx, guests)
}

func (r *repositoryImpl) InsertRoomsTx(ctx context.Context, tx *sqlx.Tx, rooms []model.Room) error {
	if len(rooms) == 0 {
		return nil
	}

	return r.rooms.InsertBulkTx(ctx, tx, rooms)
}

// GetRooms returns every room row of the bookings, inactive ones included.
func (r *repositoryImpl) GetRooms(ctx context.Context, bookingIDs []string) ([]model.Room, error) {
	if len(bookingIDs) == 0 {
		return []model.Room{}, nil
	}

	return r.rooms.GetAll(ctx, r.roomOrder(), gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Value: bookingIDs, Operator: gDto.FilterOperatorIn, Table: model.RoomTableName},
		},
	})
}

func (r *repositoryImpl) GetActiveRoomsTx(ctx context.Context, tx *sqlx.Tx, bookingID string) ([]model.Room, error) {
	return r.rooms.GetAllTx(ctx, tx, r.roomOrder(), gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: model.RoomTableName},
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.RoomTableName},
		},
	})
}

func (r *repositoryImpl) UpdateRoomsTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error {
	return r.rooms.UpdateTx(ctx, tx, req, filter)
}

func (r *repositoryImpl) DeleteRoomsTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error {
	return r.rooms.DeleteTx(ctx, tx, filter)
}

// ReplaceGuestsTx swaps the additional guests of a booking for the given list.
func (r *repositoryImpl) ReplaceGuestsTx(ctx context.Context, tx *sqlx.Tx, bookingID string, guests []model.Guest) error {
	err := r.guests.DeleteTx(ctx, tx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: model.GuestTableName},
		},
	})
	if err != nil {
		return err
	}

	if len(guests) == 0 {
		return nil
	}

	return r.guests.InsertBulkTx(ctx, tx, guests)
}

func (r *repositoryImpl) GetGuests(ctx context.Context, bookingID string) ([]model.Guest, error) {
	return r.guests.GetAll(ctx, gDto.QueryParams{SortBy: model.GuestTableName + "." + constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: model.GuestTableName},
		},
	})
}

// GetHoldsTx lists the live bookings that hold each of the rooms. Rooms with no hold are absent.
func (r *repositoryImpl) GetHoldsTx(ctx context.Context, tx *sqlx.Tx, roomIDs []string) ([]model.Hold, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetHoldsTx")
	defer scope.End()

	holds := []model.Hold{}
	if len(roomIDs) == 0 {
		return holds, nil
	}

	where, args := r.BuildWhereClause(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Value: roomIDs, Operator: gDto.FilterOperatorIn, Table: model.RoomTableName},
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.RoomTableName},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    []policy.BookingStatus{policy.BookingUpcoming, policy.BookingCheckedIn},
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	})

	query := `SELECT booking_rooms.room_id, bookings.status
		FROM booking_rooms
		JOIN bookings ON bookings.id = booking_rooms.booking_id` + where

	if err := r.QueryTx(ctx, tx, &holds, query, args); err != nil {
		scope.TraceError(err)

		return nil, err
	}

	return holds, nil
}

func (r *repositoryImpl) roomOrder() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.RoomTableName + "." + model.FieldRoomNumber, SortDir: gDto.SortDirAsc}
}
