package foodorder

import (
	"hotelpms/infras/otel"
	"hotelpms/internal/domains/foodorder/model"
	"hotelpms/internal/domains/foodorder/model/dto"
	"hotelpms/internal/domains/foodorder/service"
	"hotelpms/shared"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/policy"
	"hotelpms/shared/validator"
	"hotelpms/transport/http/middleware"
	"hotelpms/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.FoodOrder
	otel    otel.Otel
}

func New(service service.FoodOrder, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/food-orders", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateFoodOrder)
		routerGroup.Get("/", handler.GetFoodOrders)
		byID := routerGroup.With(middleware.UUIDParams(constant.RequestParamID))
		byID.Get("/{id}", handler.GetFoodOrderByID)
		byID.Post("/{id}/payment", handler.PayFoodOrder)
		byID.Delete("/{id}", handler.DeleteFoodOrder)
	})
}

// CreateFoodOrder bills food to a booking.
// @Summary Create a food order
// @Description Bill food to an upcoming or checked-in booking. Line amounts and the total are computed server-side.
// @Tags FoodOrder
// @Accept json
// @Produce json
// @Param request body dto.CreateFoodOrderRequest true "Order"
// @Success 201 {object} response.Data[dto.FoodOrderResponse] "Food order created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/food-orders [post]
// @Security BearerAuth
func (handler *Handler) CreateFoodOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFoodOrder")
	defer scope.End()

	req := dto.CreateFoodOrderRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	order, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create food order")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Food order created successfully by user " + shared.UserFromContext(ctx))

	response.WithJSON(w, http.StatusCreated, order)
}

// GetFoodOrders lists food orders.
// @Summary Get all food orders
// @Tags FoodOrder
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Filter by booking"
// @Param payment_status query string false "Filter by payment status"
// @Success 200 {object} response.Data[dto.GetFoodOrdersResponse] "List of food orders"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/food-orders [get]
// @Security BearerAuth
func (handler *Handler) GetFoodOrders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFoodOrders")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if bookingID := query.Get(model.FieldBookingID); bookingID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBookingID,
			Operator: gDto.FilterOperatorEq,
			Value:    bookingID,
			Table:    model.TableName,
		})
	}

	if rawStatus := query.Get(model.FieldPaymentStatus); rawStatus != "" {
		status, err := policy.ParsePaymentStatus(rawStatus)
		if err != nil {
			scope.TraceError(err)
			response.WithError(w, failure.BadRequest(err))

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPaymentStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	orders, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get food orders")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, orders)
}

// GetFoodOrderByID retrieves a food order.
// @Summary Get a food order by ID
// @Tags FoodOrder
// @Produce json
// @Param id path string true "Food order ID"
// @Success 200 {object} response.Data[dto.FoodOrderResponse] "Food order details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/food-orders/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetFoodOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFoodOrderByID")
	defer scope.End()

	order, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get food order by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, order)
}

// PayFoodOrder records a payment on a food order.
// @Summary Pay a food order
// @Description The amount must be positive and not exceed the amount due.
// @Tags FoodOrder
// @Accept json
// @Produce json
// @Param id path string true "Food order ID"
// @Param Idempotency-Key header string false "Rejects a repeated submit"
// @Param request body gDto.PaymentRequest true "Payment"
// @Success 200 {object} response.Data[dto.FoodOrderResponse] "Payment recorded"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/food-orders/{id}/payment [post]
// @Security BearerAuth
func (handler *Handler) PayFoodOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PayFoodOrder")
	defer scope.End()

	req := gDto.PaymentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	order, err := handler.service.Pay(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to pay food order")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Food order payment recorded by user " + shared.UserFromContext(ctx))

	response.WithJSON(w, http.StatusOK, order)
}

// DeleteFoodOrder removes an unpaid food order.
// @Summary Delete a food order by ID
// @Tags FoodOrder
// @Produce json
// @Param id path string true "Food order ID"
// @Success 200 {object} response.Message "Food order deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/food-orders/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteFoodOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFoodOrder")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete food order")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Food order deleted successfully by user " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Food order deleted successfully")
}
