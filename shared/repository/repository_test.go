package repository_test

import (
	"context"
	"database/sql/driver"
	"hotelpms/infras/otel/mocks"
	pgMocks "hotelpms/infras/postgres/mocks"
	"hotelpms/shared/dto"
	"hotelpms/shared/repository"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingRoom struct {
	ID         string `db:"id"`
	BookingID  string `db:"booking_id"`
	RoomNumber string `db:"room_number"`
	Active     bool   `db:"active"`
}

func newRepository(t *testing.T) (repository.Repository[bookingRoom], *pgMocks.Recorder) {
	t.Helper()

	db, rec := pgMocks.NewConnection()

	return repository.NewRepository[bookingRoom]("booking_room", "booking_rooms", "id", db, mocks.NewOtel()), rec
}

func compact(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

func activeRoomsOf(bookingID string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "booking_id", Value: bookingID, Operator: dto.FilterOperatorEq, Table: "booking_rooms"},
			dto.Filter{Field: "active", Value: true, Operator: dto.FilterOperatorEq, Table: "booking_rooms"},
		},
	}
}

func TestRepository_UpdateKeepsSetAndFilterArgsApart(t *testing.T) {
	ctx := context.Background()
	repo, rec := newRepository(t)

	err := repo.Update(ctx, map[string]any{"active": false, "modified_by": "frontdesk"}, activeRoomsOf("b1"))
	require.NoError(t, err)

	statement := rec.Last()

	assert.Equal(t,
		"UPDATE booking_rooms SET active = $1, modified_by = $2 WHERE (booking_rooms.booking_id = $3 AND booking_rooms.active = $4)",
		compact(statement.Query))
	assert.Equal(t, []any{false, "frontdesk", "b1", true}, statement.Args)
}

func TestRepository_UpdateTx(t *testing.T) {
	ctx := context.Background()
	db, rec := pgMocks.NewConnection()
	repo := repository.NewRepository[bookingRoom]("booking_room", "booking_rooms", "id", db, mocks.NewOtel())

	tx, err := db.Write.BeginTxx(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateTx(ctx, tx, map[string]any{"active": false}, activeRoomsOf("b1")))
	require.NoError(t, tx.Commit())

	assert.Equal(t, []any{false, "b1", true}, rec.Last().Args)
}

func TestRepository_UpdateRequiresFilter(t *testing.T) {
	repo, rec := newRepository(t)

	err := repo.Update(context.Background(), map[string]any{"active": false}, dto.FilterGroup{})

	assert.Error(t, err)
	assert.Empty(t, rec.Statements())
}

func TestRepository_DeleteRequiresFilter(t *testing.T) {
	repo, rec := newRepository(t)

	err := repo.Delete(context.Background(), dto.FilterGroup{})

	assert.Error(t, err)
	assert.Empty(t, rec.Statements())
}

func TestRepository_GetForUpdate(t *testing.T) {
	ctx := context.Background()
	db, rec := pgMocks.NewConnection()
	repo := repository.NewRepository[bookingRoom]("booking_room", "booking_rooms", "id", db, mocks.NewOtel())

	tx, err := db.Write.BeginTxx(ctx, nil)
	require.NoError(t, err)

	rec.QueueRows([]string{"id", "booking_id", "room_number", "active"}, []driver.Value{"br1", "b1", "101", true})

	room, err := repo.GetForUpdate(ctx, tx, activeRoomsOf("b1"))
	require.NoError(t, err)

	assert.Equal(t, bookingRoom{ID: "br1", BookingID: "b1", RoomNumber: "101", Active: true}, room)
	assert.Equal(t,
		"SELECT booking_rooms.id, booking_rooms.booking_id, booking_rooms.room_number, booking_rooms.active FROM booking_rooms WHERE (booking_rooms.booking_id = $1 AND booking_rooms.active = $2) FOR UPDATE OF booking_rooms",
		compact(rec.Last().Query))

	_, err = repo.GetForUpdate(ctx, tx, dto.FilterGroup{})
	assert.Error(t, err)
}

func TestRepository_GetMissingRowReturnsZeroValue(t *testing.T) {
	repo, _ := newRepository(t)

	room, err := repo.Get(context.Background(), activeRoomsOf("missing"))

	require.NoError(t, err)
	assert.Equal(t, bookingRoom{}, room)
}

func TestRepository_GetAllPaginates(t *testing.T) {
	repo, rec := newRepository(t)

	_, err := repo.GetAll(context.Background(),
		dto.QueryParams{Page: 3, Limit: 20, SortBy: "booking_rooms.room_number", SortDir: dto.SortDirAsc},
		dto.FilterGroup{Filters: []any{dto.Filter{Field: "room_number", Value: []string{"101", "102"}, Operator: dto.FilterOperatorIn, Table: "booking_rooms"}}})
	require.NoError(t, err)

	statement := rec.Last()

	assert.Contains(t, compact(statement.Query), "WHERE (booking_rooms.room_number IN ($1, $2) ) ORDER BY booking_rooms.room_number ASC LIMIT $3 OFFSET $4")
	assert.Equal(t, []any{"101", "102", int64(20), int64(40)}, statement.Args)
}

func TestRepository_InsertBulk(t *testing.T) {
	repo, rec := newRepository(t)

	err := repo.InsertBulk(context.Background(), []bookingRoom{
		{ID: "br1", BookingID: "b1", RoomNumber: "101", Active: true},
		{ID: "br2", BookingID: "b1", RoomNumber: "102", Active: true},
	})
	require.NoError(t, err)

	statement := rec.Last()

	assert.Equal(t,
		"INSERT INTO booking_rooms (id, booking_id, room_number, active) VALUES ($1, $2, $3, $4),($5, $6, $7, $8)",
		compact(statement.Query))
	assert.Len(t, statement.Args, 8)
}
