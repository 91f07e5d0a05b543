package repository_test

import (
	"context"
	"database/sql/driver"
	"hotelpms/infras/otel/mocks"
	pgMocks "hotelpms/infras/postgres/mocks"
	"hotelpms/internal/domains/booking/model"
	"hotelpms/internal/domains/booking/repository"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/policy"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compact(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

func TestBookingRepository_GetHoldsTx(t *testing.T) {
	ctx := context.Background()
	conn, rec := pgMocks.NewConnection()
	repo := repository.New(conn, mocks.NewOtel())

	tx, err := conn.Write.BeginTxx(ctx, nil)
	require.NoError(t, err)

	rec.QueueRows([]string{"room_id", "status"}, []driver.Value{"room-1", "Checked-in"})

	holds, err := repo.GetHoldsTx(ctx, tx, []string{"room-1", "room-2"})
	require.NoError(t, err)

	statement := rec.Last()

	assert.Equal(t, []model.Hold{{RoomID: "room-1", Status: policy.BookingCheckedIn}}, holds)
	assert.Equal(t,
		"SELECT booking_rooms.room_id, bookings.status FROM booking_rooms JOIN bookings ON bookings.id = booking_rooms.booking_id "+
			"WHERE (booking_rooms.room_id IN ($1, $2) AND booking_rooms.active = $3 AND bookings.status IN ($4, $5) )",
		compact(statement.Query))
	assert.Equal(t, []any{"room-1", "room-2", true, "Upcoming", "Checked-in"}, statement.Args)
}

func TestBookingRepository_UpdateRoomsTx(t *testing.T) {
	ctx := context.Background()
	conn, rec := pgMocks.NewConnection()
	repo := repository.New(conn, mocks.NewOtel())

	tx, err := conn.Write.BeginTxx(ctx, nil)
	require.NoError(t, err)

	active := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Value: "booking-1", Operator: gDto.FilterOperatorEq, Table: model.RoomTableName},
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.RoomTableName},
		},
	}

	err = repo.UpdateRoomsTx(ctx, tx, map[string]any{model.FieldActive: false, constant.FieldModifiedBy: "user-frontdesk"}, active)
	require.NoError(t, err)

	statement := rec.Last()

	assert.Equal(t,
		"UPDATE booking_rooms SET active = $1, modified_by = $2 WHERE (booking_rooms.booking_id = $3 AND booking_rooms.active = $4)",
		compact(statement.Query))
	assert.Equal(t, []any{false, "user-frontdesk", "booking-1", true}, statement.Args)
}
