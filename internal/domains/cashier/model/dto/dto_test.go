package dto_test

import (
	"hotelpms/internal/domains/cashier/model/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/timezone"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeRequest_Range(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.RangeRequest
		wantFrom string
		wantEnd  string
		wantCode int
	}{
		{name: "single day", req: dto.RangeRequest{From: "2024-08-14", To: "2024-08-14"}, wantFrom: "2024-08-14", wantEnd: "2024-08-15"},
		{name: "month", req: dto.RangeRequest{From: "2024-02-01", To: "2024-02-29"}, wantFrom: "2024-02-01", wantEnd: "2024-03-01"},
		{name: "inverted", req: dto.RangeRequest{From: "2024-08-14", To: "2024-08-13"}, wantCode: http.StatusBadRequest},
		{name: "bad from", req: dto.RangeRequest{From: "14/08/2024"}, wantCode: http.StatusBadRequest},
		{name: "bad to", req: dto.RangeRequest{To: "tomorrow"}, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, end, err := tt.req.Range()

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantFrom, timezone.FormatDate(from))
			assert.Equal(t, tt.wantEnd, timezone.FormatDate(end))
		})
	}
}

func TestRangeRequest_DefaultsToToday(t *testing.T) {
	from, end, err := dto.RangeRequest{}.Range()

	assert.NoError(t, err)
	assert.Equal(t, timezone.Today(), from)
	assert.Equal(t, timezone.Today().AddDate(0, 0, 1), end)
}

func TestTransactionQuery_Filter(t *testing.T) {
	refund := false
	query := dto.TransactionQuery{PaymentMode: "Cash", IsRefund: &refund}

	from, end, _ := query.Range()

	assert.Len(t, query.Filter(from, end).Filters, 3)
	assert.Len(t, dto.TransactionQuery{}.Filter(from, end).Filters, 1)
}
