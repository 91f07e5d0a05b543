package dto

import (
	bookingDto "hotelpms/internal/domains/booking/model/dto"
	trxModel "hotelpms/internal/domains/transaction/model"
	"hotelpms/shared"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/policy"
	"hotelpms/shared/timezone"
	"time"
)

// MaxTrendDays bounds the per-day series.
const MaxTrendDays = 366

const createdBetweenQuery = "transactions.created_at >= :created_from AND transactions.created_at < :created_to"

// RangeRequest is an inclusive range of calendar days. Both ends default to today.
type RangeRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Range returns midnight of From and midnight of the day after To.
func (r RangeRequest) Range() (from, end time.Time, err error) {
	from = timezone.Today()
	to := from

	if r.From != constant.Empty {
		if from, err = timezone.ParseDate(r.From); err != nil {
			return from, end, failure.BadRequestFromString("from must be a date in YYYY-MM-DD format")
		}
	}

	if r.To != constant.Empty {
		if to, err = timezone.ParseDate(r.To); err != nil {
			return from, end, failure.BadRequestFromString("to must be a date in YYYY-MM-DD format")
		}
	}

	if to.Before(from) {
		return from, end, failure.BadRequestFromString("from must not be after to")
	}

	return from, to.AddDate(0, 0, 1), nil
}

func (r RangeRequest) Filter(from, end time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value: gDto.PlainQuery{
					SQL:  createdBetweenQuery,
					Args: map[string]any{"created_from": from, "created_to": end},
				},
			},
		},
	}
}

// TransactionQuery narrows a range to one payment mode and to payments or refunds.
type TransactionQuery struct {
	RangeRequest
	PaymentMode policy.PaymentMode `json:"payment_mode"`
	IsRefund    *bool              `json:"is_refund"`
}

func (q TransactionQuery) Filter(from, end time.Time) gDto.FilterGroup {
	group := q.RangeRequest.Filter(from, end)

	if q.PaymentMode != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    trxModel.FieldPaymentMode,
			Operator: gDto.FilterOperatorEq,
			Value:    q.PaymentMode,
			Table:    trxModel.TableName,
		})
	}

	if q.IsRefund != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    trxModel.FieldIsRefund,
			Operator: gDto.FilterOperatorEq,
			Value:    *q.IsRefund,
			Table:    trxModel.TableName,
		})
	}

	return group
}

type Totals struct {
	Collected float64 `json:"collected"`
	Refunded  float64 `json:"refunded"`
	Net       float64 `json:"net"`
	Count     int     `json:"count"`
}

func (t *Totals) add(collected, refunded float64, count int) {
	t.Collected = policy.Round(t.Collected + collected)
	t.Refunded = policy.Round(t.Refunded + refunded)
	t.Net = policy.Round(t.Collected - t.Refunded)
	t.Count += count
}

type ModeSummary struct {
	PaymentMode policy.PaymentMode `json:"payment_mode"`
	Totals
}

type SummaryResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
	Totals
	ByMode []ModeSummary `json:"by_mode"`
}

func (r *SummaryResponse) FromModels(from, end time.Time, totals []trxModel.ModeTotal) {
	r.From = timezone.FormatDate(from)
	r.To = timezone.FormatDate(end.AddDate(0, 0, -1))

	r.ByMode = make([]ModeSummary, len(totals))
	for idx, total := range totals {
		r.ByMode[idx].PaymentMode = total.PaymentMode
		r.ByMode[idx].add(total.Collected, total.Refunded, total.Count)
		r.add(total.Collected, total.Refunded, total.Count)
	}
}

type DayTrend struct {
	Date string `json:"date"`
	Totals
}

type TrendResponse struct {
	From string     `json:"from"`
	To   string     `json:"to"`
	Days []DayTrend `json:"days"`
}

// FromModels lists every day of the range, with zero totals on days without transactions.
func (r *TrendResponse) FromModels(from, end time.Time, totals []trxModel.DayTotal) {
	r.From = timezone.FormatDate(from)
	r.To = timezone.FormatDate(end.AddDate(0, 0, -1))

	byDay := make(map[string]trxModel.DayTotal, len(totals))
	for _, total := range totals {
		byDay[total.Day.Format(constant.DateOnlyFormat)] = total
	}

	r.Days = []DayTrend{}

	for day := from; day.Before(end); day = day.AddDate(0, 0, 1) {
		trend := DayTrend{Date: timezone.FormatDate(day)}

		if total, ok := byDay[trend.Date]; ok {
			trend.add(total.Collected, total.Refunded, total.Count)
		}

		r.Days = append(r.Days, trend)
	}
}

type GetTransactionsResponse struct {
	Transactions []bookingDto.TransactionResponse `json:"transactions"`
	TotalPage    int                              `json:"total_page"`
	TotalData    int                              `json:"total_data"`
}

func (r *GetTransactionsResponse) FromModels(models []trxModel.Transaction, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Transactions = bookingDto.TransactionsFromModels(models)
}

// Export is a rendered CSV file.
type Export struct {
	FileName string
	Data     []byte
}
