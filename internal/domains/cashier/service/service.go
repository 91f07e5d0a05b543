package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"hotelpms/config"
	"hotelpms/infras/otel"
	bookingDto "hotelpms/internal/domains/booking/model/dto"
	"hotelpms/internal/domains/cashier/model/dto"
	trxModel "hotelpms/internal/domains/transaction/model"
	trxRepo "hotelpms/internal/domains/transaction/repository"
	"hotelpms/shared"
	"hotelpms/shared/cache"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/timezone"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	cacheSummary = constant.CachePrefixCashier + ":summary"
	cacheTrends  = constant.CachePrefixCashier + ":trends"
)

var exportHeader = []string{
	"transaction_id", "booking_id", "food_order_id", "guest_name", "amount",
	"payment_mode", "is_refund", "note", "created_at", "created_by",
}

type Cashier interface {
	Summary(ctx context.Context, req dto.RangeRequest) (dto.SummaryResponse, error)
	PaymentTrends(ctx context.Context, req dto.RangeRequest) (dto.TrendResponse, error)
	Transactions(ctx context.Context, params gDto.QueryParams, req dto.TransactionQuery) (dto.GetTransactionsResponse, error)
	Export(ctx context.Context, req dto.TransactionQuery) (dto.Export, error)
}

type serviceImpl struct {
	repo  trxRepo.Transaction
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo trxRepo.Transaction, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Cashier {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Summary(ctx context.Context, req dto.RangeRequest) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, end, err := req.Range()
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheSummary, timezone.FormatDate(from), timezone.FormatDate(end))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for cashier summary")

		return res, nil
	}

	totals, err := s.repo.TotalsByMode(ctx, req.Filter(from, end))
	if err != nil {
		log.Error().Err(err).Msg("failed to get totals by payment mode")

		return res, fmt.Errorf("failed to get totals by payment mode: %w", err)
	}

	res.FromModels(from, end, totals)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) PaymentTrends(ctx context.Context, req dto.RangeRequest) (res dto.TrendResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PaymentTrends")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, end, err := req.Range()
	if err != nil {
		return res, err
	}

	if end.After(from.AddDate(0, 0, dto.MaxTrendDays)) {
		return res, failure.BadRequestFromString(fmt.Sprintf("payment trends cover at most %d days", dto.MaxTrendDays))
	}

	cacheKey := shared.BuildCacheKey(cacheTrends, timezone.FormatDate(from), timezone.FormatDate(end))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payment trends")

		return res, nil
	}

	totals, err := s.repo.TotalsByDay(ctx, timezone.GetLocation().String(), req.Filter(from, end))
	if err != nil {
		log.Error().Err(err).Msg("failed to get totals by day")

		return res, fmt.Errorf("failed to get totals by day: %w", err)
	}

	res.FromModels(from, end, totals)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Transactions(ctx context.Context, params gDto.QueryParams, req dto.TransactionQuery) (res dto.GetTransactionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transactions")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, end, err := req.Range()
	if err != nil {
		return res, err
	}

	params.AllowSort(trxModel.TableName, trxModel.FieldCreatedAt,
		trxModel.FieldCreatedAt, trxModel.FieldAmount, trxModel.FieldPaymentMode, trxModel.FieldGuestName)

	filter := req.Filter(from, end)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count transactions")

		return res, fmt.Errorf("failed to count transactions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get transactions")

		return res, fmt.Errorf("failed to get transactions: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

// Export writes every transaction matching the query as CSV, oldest first.
func (s *serviceImpl) Export(ctx context.Context, req dto.TransactionQuery) (res dto.Export, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, end, err := req.Range()
	if err != nil {
		return res, err
	}

	params := gDto.QueryParams{SortBy: trxModel.TableName + "." + trxModel.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, req.Filter(from, end))
	if err != nil {
		log.Error().Err(err).Msg("failed to get transactions for export")

		return res, fmt.Errorf("failed to get transactions for export: %w", err)
	}

	data, err := writeCSV(bookingDto.TransactionsFromModels(models))
	if err != nil {
		log.Error().Err(err).Msg("failed to write transactions csv")

		return res, fmt.Errorf("failed to write transactions csv: %w", err)
	}

	res.Data = data
	res.FileName = fmt.Sprintf("transactions-%s-%s.csv", timezone.FormatDate(from), timezone.FormatDate(end.AddDate(0, 0, -1)))

	return res, nil
}

func writeCSV(rows []bookingDto.TransactionResponse) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	if err := writer.Write(exportHeader); err != nil {
		return nil, err
	}

	for _, row := range rows {
		record := []string{
			row.ID,
			row.BookingID,
			row.FoodOrderID,
			row.GuestName,
			strconv.FormatFloat(row.Amount, 'f', 2, 64),
			string(row.PaymentMode),
			strconv.FormatBool(row.IsRefund),
			row.Note,
			row.CreatedAt,
			row.CreatedBy,
		}

		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save cashier report to cache")
		}
	}()
}
