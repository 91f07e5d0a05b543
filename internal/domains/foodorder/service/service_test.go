package service_test

import (
	"context"
	"errors"
	"hotelpms/config"
	"hotelpms/infras/otel/mocks"
	postgresMocks "hotelpms/infras/postgres/mocks"
	foodMocks "hotelpms/internal/domains/foodorder/mocks"
	"hotelpms/internal/domains/foodorder/model"
	"hotelpms/internal/domains/foodorder/model/dto"
	"hotelpms/internal/domains/foodorder/service"
	trxMocks "hotelpms/internal/domains/transaction/mocks"
	trxModel "hotelpms/internal/domains/transaction/model"
	cacheMocks "hotelpms/shared/cache/mocks"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/policy"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo    *foodMocks.MockFoodOrder
	trxRepo *trxMocks.MockTransaction
	svc     service.FoodOrder
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	mockTx := postgresMocks.NewMockTransactor(ctrl)
	postgresMocks.Passthrough(mockTx).AnyTimes()

	f := fixture{
		repo:    foodMocks.NewMockFoodOrder(ctrl),
		trxRepo: trxMocks.NewMockTransaction(ctrl),
	}
	f.svc = service.New(f.repo, f.trxRepo, mockTx, cfg, mockCache, mocks.NewOtel())

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "user-cashier")
}

func order(paid float64) model.FoodOrder {
	return model.FoodOrder{
		ID:            "order-1",
		BookingID:     "booking-1",
		TotalAmount:   450,
		AmountPaid:    paid,
		PaymentStatus: policy.DerivePaymentStatus(450, paid, 0),
	}
}

func TestFoodOrderService_Create(t *testing.T) {
	req := dto.CreateFoodOrderRequest{
		BookingID: "booking-1",
		Items: []dto.ItemRequest{
			{Name: "Masala Dosa", Quantity: 2, UnitPrice: 120},
			{Name: "Filter Coffee", Quantity: 3, UnitPrice: 70.01},
		},
	}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "checked-in guest",
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetBookingTx(gomock.Any(), gomock.Any(), "booking-1").
					Return(model.BookingRef{ID: "booking-1", Status: policy.BookingCheckedIn, GuestName: "Ravi"}, nil)
				f.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, o model.FoodOrder, items []model.Item) error {
						assert.Equal(t, 450.03, o.TotalAmount)
						assert.Equal(t, policy.PaymentUnpaid, o.PaymentStatus)
						assert.Len(t, items, 2)
						assert.Equal(t, 240.0, items[0].Amount)
						assert.Equal(t, o.ID, items[1].FoodOrderID)

						return nil
					})
			},
		},
		{
			name: "booking missing",
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetBookingTx(gomock.Any(), gomock.Any(), "booking-1").Return(model.BookingRef{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "checked-out guest",
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetBookingTx(gomock.Any(), gomock.Any(), "booking-1").
					Return(model.BookingRef{ID: "booking-1", Status: policy.BookingCheckedOut}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(userContext(), req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, 450.03, res.AmountDue)
			assert.Len(t, res.Items, 2)
		})
	}
}

func TestFoodOrderService_Pay(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		current    model.FoodOrder
		booking    policy.BookingStatus
		wantStatus policy.PaymentStatus
		wantCode   int
	}{
		{name: "partial payment", amount: 200, current: order(0), booking: policy.BookingCheckedIn, wantStatus: policy.PaymentPartial},
		{name: "settles the bill", amount: 250, current: order(200), booking: policy.BookingCheckedIn, wantStatus: policy.PaymentPaid},
		{name: "more than due", amount: 300, current: order(200), wantCode: http.StatusBadRequest},
		{name: "already paid", amount: 1, current: order(450), wantCode: http.StatusBadRequest},
		{name: "not found", amount: 10, current: model.FoodOrder{}, wantCode: http.StatusNotFound},
		{name: "cancelled booking", amount: 200, current: order(0), booking: policy.BookingCancelled, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.current, nil)

			if tt.booking != "" {
				f.repo.EXPECT().GetBookingTx(gomock.Any(), gomock.Any(), "booking-1").
					Return(model.BookingRef{ID: "booking-1", Status: tt.booking, GuestName: "Ravi"}, nil)
			}

			if tt.wantCode == 0 {
				f.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, tt.wantStatus, fields[model.FieldPaymentStatus])

						return nil
					})
				f.trxRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, trx trxModel.Transaction) error {
						assert.Equal(t, tt.amount, trx.Amount)
						assert.Equal(t, "order-1", *trx.FoodOrderID)
						assert.Equal(t, "booking-1", *trx.BookingID)
						assert.Equal(t, "Ravi", trx.GuestName)
						assert.False(t, trx.IsRefund)

						return nil
					})
				f.repo.EXPECT().GetItems(gomock.Any(), []string{"order-1"}).Return([]model.Item{}, nil)
			}

			res, err := f.svc.Pay(userContext(), "order-1", gDto.PaymentRequest{Amount: tt.amount, PaymentMode: policy.PaymentModeUPI})

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.PaymentStatus)
		})
	}
}

func TestFoodOrderService_Delete(t *testing.T) {
	t.Run("unpaid order", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(order(0), nil)
		f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Delete(userContext(), "order-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("paid order", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(order(100), nil)

		err := f.svc.Delete(userContext(), "order-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestFoodOrderService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.FoodOrder{order(0)}, nil)
	f.repo.EXPECT().GetItems(gomock.Any(), []string{"order-1"}).Return([]model.Item{
		{FoodOrderID: "order-1", Name: "Idli", Quantity: 3, UnitPrice: 150, Amount: 450},
		{FoodOrderID: "order-2", Name: "Vada", Quantity: 1, UnitPrice: 60, Amount: 60},
	}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Len(t, res.FoodOrders, 1)
	assert.Len(t, res.FoodOrders[0].Items, 1)
	assert.Equal(t, 450.0, res.FoodOrders[0].AmountDue)
}
