package repository_test

import (
	"context"
	"database/sql/driver"
	"hotelpms/infras/otel/mocks"
	pgMocks "hotelpms/infras/postgres/mocks"
	"hotelpms/internal/domains/room/repository"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	checkin  = time.Date(2024, 8, 14, 0, 0, 0, 0, time.UTC)
	checkout = time.Date(2024, 8, 16, 0, 0, 0, 0, time.UTC)
)

func compact(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

func TestRoomRepository_GetConflictsTx(t *testing.T) {
	ctx := context.Background()
	conn, rec := pgMocks.NewConnection()
	repo := repository.New(conn, mocks.NewOtel())

	tx, err := conn.Write.BeginTxx(ctx, nil)
	require.NoError(t, err)

	rec.QueueRows([]string{"room_number"}, []driver.Value{"102"})

	conflicts, err := repo.GetConflictsTx(ctx, tx, []string{"room-1", "room-2"}, checkin, checkout, "booking-1")
	require.NoError(t, err)

	statement := rec.Last()

	assert.Equal(t, []string{"102"}, conflicts)
	assert.Equal(t,
		"SELECT DISTINCT booking_rooms.room_number FROM booking_rooms WHERE (booking_rooms.room_id IN ($1, $2) AND "+
			"(booking_rooms.active AND booking_rooms.checkin_date < $3 AND booking_rooms.checkout_date > $4 "+
			"AND CAST(booking_rooms.booking_id AS TEXT) <> $5)) ORDER BY booking_rooms.room_number",
		compact(statement.Query))
	assert.Equal(t, []any{"room-1", "room-2", checkout, checkin, "booking-1"}, statement.Args)
}

func TestRoomRepository_GetConflictsTxWithoutRooms(t *testing.T) {
	conn, rec := pgMocks.NewConnection()
	repo := repository.New(conn, mocks.NewOtel())

	conflicts, err := repo.GetConflictsTx(context.Background(), nil, nil, checkin, checkout, "")

	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Empty(t, rec.Statements())
}

func TestRoomRepository_GetAvailable(t *testing.T) {
	conn, rec := pgMocks.NewConnection()
	repo := repository.New(conn, mocks.NewOtel())

	_, err := repo.GetAvailable(context.Background(), repository.AvailabilityFilter{
		Checkin:     checkin,
		Checkout:    checkout,
		RoomType:    "Deluxe",
		MinCapacity: 3,
	})
	require.NoError(t, err)

	statement := rec.Last()
	query := compact(statement.Query)

	assert.Contains(t, query, "WHERE (rooms.status != $1 AND (NOT EXISTS (SELECT 1 FROM booking_rooms "+
		"WHERE booking_rooms.room_id = rooms.id AND booking_rooms.active AND booking_rooms.checkin_date < $2 "+
		"AND booking_rooms.checkout_date > $3 AND CAST(booking_rooms.booking_id AS TEXT) <> $4)) "+
		"AND rooms.room_type = $5 AND rooms.capacity >= $6)")
	assert.True(t, strings.HasSuffix(query, "ORDER BY rooms.room_number ASC"))
	assert.Equal(t, []any{"UnderMaintenance", checkout, checkin, "", "Deluxe", int64(3)}, statement.Args)
}

func TestRoomRepository_LockTx(t *testing.T) {
	ctx := context.Background()
	conn, rec := pgMocks.NewConnection()
	repo := repository.New(conn, mocks.NewOtel())

	tx, err := conn.Write.BeginTxx(ctx, nil)
	require.NoError(t, err)

	_, err = repo.LockTx(ctx, tx, []string{"room-2", "room-1"})
	require.NoError(t, err)

	statement := rec.Last()

	assert.Equal(t, "SELECT * FROM rooms WHERE (rooms.id IN ($1, $2) ) ORDER BY rooms.id FOR UPDATE", compact(statement.Query))
	assert.Equal(t, []any{"room-2", "room-1"}, statement.Args)
}
