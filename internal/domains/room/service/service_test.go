package service_test

import (
	"context"
	"errors"
	"hotelpms/config"
	"hotelpms/infras/otel/mocks"
	"hotelpms/infras/postgres"
	postgresMocks "hotelpms/infras/postgres/mocks"
	roomMocks "hotelpms/internal/domains/room/mocks"
	"hotelpms/internal/domains/room/model"
	"hotelpms/internal/domains/room/model/dto"
	"hotelpms/internal/domains/room/service"
	eventMocks "hotelpms/internal/events/mocks"
	cacheMocks "hotelpms/shared/cache/mocks"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/policy"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo       *roomMocks.MockRoom
	transactor *postgresMocks.MockTransactor
	cache      *cacheMocks.MockRedisCache
	publisher  *eventMocks.MockPublisher
	svc        service.Room
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:       roomMocks.NewMockRoom(ctrl),
		transactor: postgresMocks.NewMockTransactor(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		publisher:  eventMocks.NewMockPublisher(ctrl),
	}
	f.svc = service.New(f.repo, f.transactor, cfg, f.cache, mocks.NewOtel(), f.publisher)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "user-frontdesk")
}

func room(status policy.RoomStatus) model.Room {
	return model.Room{
		ID:            "room-1",
		RoomNumber:    "101",
		RoomType:      "Deluxe",
		PricePerNight: 2500,
		Capacity:      2,
		Floor:         1,
		Status:        status,
	}
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  dto.CreateRoomRequest{RoomNumber: "101", RoomType: "Deluxe", PricePerNight: 2500.456, Capacity: 2},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, policy.RoomAvailable, room.Status)
						assert.Equal(t, 2500.46, room.PricePerNight)
						assert.Equal(t, "user-frontdesk", room.CreatedBy)

						return nil
					})
			},
		},
		{
			name:      "derived status rejected",
			req:       dto.CreateRoomRequest{RoomNumber: "101", RoomType: "Deluxe", Capacity: 2, Status: policy.RoomOccupied},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "duplicate room number",
			req:  dto.CreateRoomRequest{RoomNumber: "101", RoomType: "Deluxe", Capacity: 2},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(userContext(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, "101", res.RoomNumber)
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Room, error) {
			assert.Equal(t, "rooms.room_number", params.SortBy)

			return []model.Room{room(policy.RoomAvailable), room(policy.RoomBooked)}, nil
		})

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 2, SortBy: "password"}, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Len(t, res.Rooms, 2)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestRoomService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room(policy.RoomAvailable), nil)

		res, err := f.svc.Get(context.Background(), "room-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, policy.RoomAvailable, res.Status)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Update(t *testing.T) {
	price := 3000.0

	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		current   policy.RoomStatus
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:    "price change on free room",
			req:     dto.UpdateRoomRequest{PricePerNight: &price},
			current: policy.RoomAvailable,
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, 3000.0, fields[model.FieldPricePerNight])
						assert.NotContains(t, fields, model.FieldStatus)

						return nil
					})
			},
		},
		{
			name:    "maintenance publishes status event",
			req:     dto.UpdateRoomRequest{Status: policy.RoomUnderMaintenance},
			current: policy.RoomAvailable,
			setupMock: func(f fixture) {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.publisher.EXPECT().
					PublishRoomStatus(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:      "booked room is locked",
			req:       dto.UpdateRoomRequest{PricePerNight: &price},
			current:   policy.RoomBooked,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusConflict,
		},
		{
			name:      "occupied room is locked",
			req:       dto.UpdateRoomRequest{Status: policy.RoomAvailable},
			current:   policy.RoomOccupied,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusConflict,
		},
		{
			name:      "derived status cannot be set",
			req:       dto.UpdateRoomRequest{Status: policy.RoomBooked},
			current:   policy.RoomAvailable,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			postgresMocks.Passthrough(f.transactor)
			f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(tt.current), nil)
			tt.setupMock(f)

			err := f.svc.Update(userContext(), tt.req, "room-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRoomService_UpdateLocksTheRoom(t *testing.T) {
	f := newFixture(t)
	tx := &sqlx.Tx{}
	price := 3000.0

	f.transactor.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn postgres.TxFunc) error {
			return fn(ctx, tx)
		})
	f.repo.EXPECT().
		GetForUpdate(gomock.Any(), tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) (model.Room, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, map[string]any{model.FieldID: "room-1"}, args)

			return room(policy.RoomAvailable), nil
		})
	f.repo.EXPECT().UpdateTx(gomock.Any(), tx, gomock.Any(), gomock.Any()).Return(nil)

	err := f.svc.Update(userContext(), dto.UpdateRoomRequest{PricePerNight: &price}, "room-1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestRoomService_UpdateMissingRoom(t *testing.T) {
	f := newFixture(t)
	postgresMocks.Passthrough(f.transactor)
	f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

	price := 3000.0
	err := f.svc.Update(userContext(), dto.UpdateRoomRequest{PricePerNight: &price}, "missing")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestRoomService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		current   policy.RoomStatus
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:    "free room",
			current: policy.RoomAvailable,
			setupMock: func(f fixture) {
				f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "occupied room",
			current:   policy.RoomOccupied,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusConflict,
		},
		{
			name:      "booked room",
			current:   policy.RoomBooked,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusConflict,
		},
		{
			name:    "room with history",
			current: policy.RoomUnderMaintenance,
			setupMock: func(f fixture) {
				f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			postgresMocks.Passthrough(f.transactor)
			f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(tt.current), nil)
			tt.setupMock(f)

			err := f.svc.Delete(userContext(), "room-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRoomService_Available(t *testing.T) {
	t.Run("returns free rooms", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().
			GetAvailable(gomock.Any(), gomock.Any()).
			Return([]model.Room{room(policy.RoomAvailable)}, nil)

		res, err := f.svc.Available(context.Background(), dto.AvailabilityRequest{
			CheckinDate:  "2024-08-14",
			CheckoutDate: "2024-08-17",
		})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 3, res.Nights)
		assert.Len(t, res.Rooms, 1)
	})

	t.Run("checkout before checkin", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Available(context.Background(), dto.AvailabilityRequest{
			CheckinDate:  "2024-08-17",
			CheckoutDate: "2024-08-14",
		})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestRoomService_History(t *testing.T) {
	f := newFixture(t)

	from := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room(policy.RoomAvailable), nil)
	f.repo.EXPECT().
		GetHistory(gomock.Any(), "room-1", from, to, policy.PaymentPartial).
		Return([]model.Stay{{
			BookingID:    "booking-1",
			GuestName:    "Ravi Kumar",
			CheckinDate:  time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC),
			CheckoutDate: time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC),
			TotalAmount:  5000,
			AmountPaid:   2000,
		}}, nil)

	res, err := f.svc.History(context.Background(), "room-1", dto.HistoryRequest{
		DateRange:     gDto.DateRange{From: from, To: to},
		PaymentStatus: policy.PaymentPartial,
	})

	assert.NoError(t, err)
	assert.Equal(t, "2024-08-01", res.From)
	assert.Len(t, res.Stays, 1)
	assert.Equal(t, "2024-08-10", res.Stays[0].CheckinDate)
	assert.Equal(t, 3000.0, res.Stays[0].AmountDue)
}
