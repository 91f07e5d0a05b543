package service_test

import (
	"context"
	"encoding/csv"
	"errors"
	"hotelpms/config"
	"hotelpms/infras/otel/mocks"
	"hotelpms/internal/domains/cashier/model/dto"
	"hotelpms/internal/domains/cashier/service"
	trxMocks "hotelpms/internal/domains/transaction/mocks"
	trxModel "hotelpms/internal/domains/transaction/model"
	cacheMocks "hotelpms/shared/cache/mocks"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/policy"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*trxMocks.MockTransaction, service.Cashier) {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	repo := trxMocks.NewMockTransaction(ctrl)

	return repo, service.New(repo, cfg, mockCache, mocks.NewOtel())
}

func bookingID(id string) *string {
	return &id
}

func TestCashierService_Summary(t *testing.T) {
	repo, svc := newService(t)

	repo.EXPECT().TotalsByMode(gomock.Any(), gomock.Any()).Return([]trxModel.ModeTotal{
		{PaymentMode: policy.PaymentModeCash, Collected: 4500, Refunded: 500, Count: 4},
		{PaymentMode: policy.PaymentModeUPI, Collected: 2000.5, Count: 1},
	}, nil)

	res, err := svc.Summary(context.Background(), dto.RangeRequest{From: "2024-08-01", To: "2024-08-31"})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, "2024-08-01", res.From)
	assert.Equal(t, "2024-08-31", res.To)
	assert.Equal(t, 6500.5, res.Collected)
	assert.Equal(t, 500.0, res.Refunded)
	assert.Equal(t, 6000.5, res.Net)
	assert.Equal(t, 5, res.Count)
	assert.Len(t, res.ByMode, 2)
	assert.Equal(t, 4000.0, res.ByMode[0].Net)
}

func TestCashierService_SummaryRejectsInvertedRange(t *testing.T) {
	_, svc := newService(t)

	_, err := svc.Summary(context.Background(), dto.RangeRequest{From: "2024-08-10", To: "2024-08-01"})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestCashierService_PaymentTrends(t *testing.T) {
	t.Run("fills days without transactions", func(t *testing.T) {
		repo, svc := newService(t)

		repo.EXPECT().TotalsByDay(gomock.Any(), gomock.Any(), gomock.Any()).Return([]trxModel.DayTotal{
			{Day: time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC), Collected: 1200, Refunded: 200, Count: 3},
		}, nil)

		res, err := svc.PaymentTrends(context.Background(), dto.RangeRequest{From: "2024-08-01", To: "2024-08-03"})

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		require.Len(t, res.Days, 3)
		assert.Equal(t, "2024-08-01", res.Days[0].Date)
		assert.Equal(t, 0, res.Days[0].Count)
		assert.Equal(t, 1000.0, res.Days[1].Net)
		assert.Equal(t, "2024-08-03", res.Days[2].Date)
	})

	t.Run("range too wide", func(t *testing.T) {
		_, svc := newService(t)

		_, err := svc.PaymentTrends(context.Background(), dto.RangeRequest{From: "2023-01-01", To: "2024-12-31"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestCashierService_Transactions(t *testing.T) {
	repo, svc := newService(t)
	refunds := true

	repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			assert.Len(t, filter.Filters, 3)

			return 12, nil
		})
	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]trxModel.Transaction, error) {
			assert.Equal(t, "transactions.created_at", params.SortBy)

			return []trxModel.Transaction{{ID: "trx-1", BookingID: bookingID("booking-1"), Amount: 500, IsRefund: true}}, nil
		})

	res, err := svc.Transactions(context.Background(), gDto.QueryParams{Page: 1, Limit: 5, SortBy: "note"}, dto.TransactionQuery{
		RangeRequest: dto.RangeRequest{From: "2024-08-01", To: "2024-08-31"},
		PaymentMode:  policy.PaymentModeCash,
		IsRefund:     &refunds,
	})

	require.NoError(t, err)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, "booking-1", res.Transactions[0].BookingID)
}

func TestCashierService_Export(t *testing.T) {
	repo, svc := newService(t)

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]trxModel.Transaction{
		{ID: "trx-1", BookingID: bookingID("booking-1"), GuestName: "Sharma, Anil", Amount: 2500, PaymentMode: policy.PaymentModeCard},
		{ID: "trx-2", BookingID: bookingID("booking-2"), GuestName: "Ravi", Amount: 300, PaymentMode: policy.PaymentModeCash, IsRefund: true, Note: `said "sorry"`},
		{ID: "trx-3", GuestName: "Walk-in", Amount: 120.5, PaymentMode: policy.PaymentModeUPI},
	}, nil)

	res, err := svc.Export(context.Background(), dto.TransactionQuery{RangeRequest: dto.RangeRequest{From: "2024-08-01", To: "2024-08-02"}})

	require.NoError(t, err)
	assert.Equal(t, "transactions-2024-08-01-2024-08-02.csv", res.FileName)

	records, err := csv.NewReader(strings.NewReader(string(res.Data))).ReadAll()

	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "transaction_id", records[0][0])
	assert.Equal(t, "Sharma, Anil", records[1][3])
	assert.Equal(t, "2500.00", records[1][4])
	assert.Equal(t, `said "sorry"`, records[2][7])
	assert.Equal(t, "true", records[2][6])
	assert.Equal(t, "", records[3][1])
}

func TestCashierService_ExportEmpty(t *testing.T) {
	repo, svc := newService(t)

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]trxModel.Transaction{}, nil)

	res, err := svc.Export(context.Background(), dto.TransactionQuery{})

	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(res.Data))).ReadAll()

	require.NoError(t, err)
	assert.Len(t, records, 1)
}
