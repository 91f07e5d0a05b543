package cashier

import (
	"hotelpms/infras/otel"
	"hotelpms/internal/domains/cashier/model/dto"
	"hotelpms/internal/domains/cashier/service"
	trxModel "hotelpms/internal/domains/transaction/model"
	"hotelpms/shared"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/policy"
	"hotelpms/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Cashier
	otel    otel.Otel
}

func New(service service.Cashier, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/cashier", func(routerGroup chi.Router) {
		routerGroup.Get("/summary", handler.GetSummary)
		routerGroup.Get("/payment-trends", handler.GetPaymentTrends)
		routerGroup.Get("/transactions", handler.GetTransactions)
		routerGroup.Get("/export", handler.ExportTransactions)
	})
}

// GetSummary reports collections and refunds per payment mode.
// @Summary Cashier summary
// @Tags Cashier
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD), defaults to today"
// @Param to query string false "To date (YYYY-MM-DD), inclusive, defaults to today"
// @Success 200 {object} response.Data[dto.SummaryResponse] "Totals for the range"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/cashier/summary [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	summary, err := handler.service.Summary(ctx, rangeFromRequest(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cashier summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}

// GetPaymentTrends reports collections and refunds per day.
// @Summary Payment trends
// @Tags Cashier
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD), defaults to today"
// @Param to query string false "To date (YYYY-MM-DD), inclusive, defaults to today"
// @Success 200 {object} response.Data[dto.TrendResponse] "One entry per day"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/cashier/payment-trends [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentTrends(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentTrends")
	defer scope.End()

	trends, err := handler.service.PaymentTrends(ctx, rangeFromRequest(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment trends")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, trends)
}

// GetTransactions lists the transactions of a range.
// @Summary Cashier transactions
// @Tags Cashier
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param from query string false "From date (YYYY-MM-DD), defaults to today"
// @Param to query string false "To date (YYYY-MM-DD), inclusive, defaults to today"
// @Param payment_mode query string false "Filter by payment mode"
// @Param is_refund query bool false "Only refunds or only payments"
// @Success 200 {object} response.Data[dto.GetTransactionsResponse] "List of transactions"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/cashier/transactions [get]
// @Security BearerAuth
func (handler *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransactions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query, err := transactionQueryFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	transactions, err := handler.service.Transactions(ctx, queryParams, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cashier transactions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, transactions)
}

// ExportTransactions downloads the filtered transactions as CSV.
// @Summary Export cashier transactions
// @Tags Cashier
// @Produce text/csv
// @Param from query string false "From date (YYYY-MM-DD), defaults to today"
// @Param to query string false "To date (YYYY-MM-DD), inclusive, defaults to today"
// @Param payment_mode query string false "Filter by payment mode"
// @Param is_refund query bool false "Only refunds or only payments"
// @Success 200 {file} file "CSV with a header row and one row per transaction"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/cashier/export [get]
// @Security BearerAuth
func (handler *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportTransactions")
	defer scope.End()

	query, err := transactionQueryFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	export, err := handler.service.Export(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export cashier transactions")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Cashier transactions exported by user " + shared.UserFromContext(ctx))

	response.WithFile(w, constant.ContentTypeCSV, export.FileName, export.Data)
}

func rangeFromRequest(r *http.Request) dto.RangeRequest {
	query := r.URL.Query()

	return dto.RangeRequest{
		From: query.Get(constant.RequestParamFrom),
		To:   query.Get(constant.RequestParamTo),
	}
}

func transactionQueryFromRequest(r *http.Request) (dto.TransactionQuery, error) {
	query := r.URL.Query()

	req := dto.TransactionQuery{RangeRequest: rangeFromRequest(r)}

	if rawMode := query.Get(trxModel.FieldPaymentMode); rawMode != "" {
		mode, err := policy.ParsePaymentMode(rawMode)
		if err != nil {
			return req, failure.BadRequest(err)
		}

		req.PaymentMode = mode
	}

	if rawRefund := query.Get(trxModel.FieldIsRefund); rawRefund != "" {
		req.IsRefund = shared.ConvertStringToBool(rawRefund)
		if req.IsRefund == nil {
			return req, failure.BadRequestFromString("is_refund must be true or false")
		}
	}

	return req, nil
}
