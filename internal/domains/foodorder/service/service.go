package service

import (
	"context"
	"fmt"
	"hotelpms/config"
	"hotelpms/infras/otel"
	"hotelpms/infras/postgres"
	"hotelpms/internal/domains/foodorder/model"
	"hotelpms/internal/domains/foodorder/model/dto"
	"hotelpms/internal/domains/foodorder/repository"
	trxModel "hotelpms/internal/domains/transaction/model"
	trxRepo "hotelpms/internal/domains/transaction/repository"
	"hotelpms/shared"
	"hotelpms/shared/cache"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/policy"
	"hotelpms/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetFoodOrder    = constant.CachePrefixFoodOrder + ":get"
	cacheGetAllFoodOrder = constant.CachePrefixFoodOrder + ":gets"
)

const (
	errFoodOrderNotFound = "food order not found"
	errBookingNotFound   = "booking not found"
	errOrderConflict     = "food order conflicts with a concurrent change, retry the request"
)

type FoodOrder interface {
	Create(ctx context.Context, req dto.CreateFoodOrderRequest) (dto.FoodOrderResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFoodOrdersResponse, error)
	Get(ctx context.Context, id string) (dto.FoodOrderResponse, error)
	Pay(ctx context.Context, id string, req gDto.PaymentRequest) (dto.FoodOrderResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.FoodOrder
	trxRepo    trxRepo.Transaction
	transactor postgres.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.FoodOrder, trxRepo trxRepo.Transaction, transactor postgres.Transactor, cfg *config.Config,
	cache cache.RedisCache, otel otel.Otel,
) FoodOrder {
	return &serviceImpl{
		repo:       repo,
		trxRepo:    trxRepo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFoodOrderRequest) (res dto.FoodOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	order, items := req.ToModel(shared.UserFromContext(ctx))

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		booking, err := s.repo.GetBookingTx(ctx, tx, req.BookingID)
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound(errBookingNotFound)
		}

		if err := policy.CanOrderFood(booking.Status); err != nil {
			return err
		}

		return s.repo.InsertTx(ctx, tx, order, items)
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to create food order")

		return res, failure.FromPostgres(err, errOrderConflict)
	}

	res.FromModel(order, items)

	s.invalidate(ctx, constant.Empty)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFoodOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.AllowSort(model.TableName, constant.FieldCreatedAt,
		model.FieldTotalAmount, model.FieldAmountPaid, model.FieldPaymentStatus, constant.FieldCreatedAt)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllFoodOrder, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for food orders")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count food orders")

		return res, fmt.Errorf("failed to count food orders: %w", err)
	}

	orders, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get food orders")

		return res, fmt.Errorf("failed to get food orders: %w", err)
	}

	ids := make([]string, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}

	items, err := s.repo.GetItems(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("failed to get food order items")

		return res, fmt.Errorf("failed to get food order items: %w", err)
	}

	res.FromModels(orders, items, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save food orders to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FoodOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetFoodOrder, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	order, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("food_order_id", id).Msg("failed to get food order")

		return res, fmt.Errorf("failed to get food order: %w", err)
	}

	if order.ID == constant.Empty {
		return res, failure.NotFound(errFoodOrderNotFound)
	}

	items, err := s.repo.GetItems(ctx, []string{order.ID})
	if err != nil {
		log.Error().Err(err).Str("food_order_id", id).Msg("failed to get food order items")

		return res, fmt.Errorf("failed to get food order items: %w", err)
	}

	res.FromModel(order, items)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save food order to cache")
		}
	}()

	return res, nil
}

// Pay records a payment against the order under a row lock and returns the updated order.
func (s *serviceImpl) Pay(ctx context.Context, id string, req gDto.PaymentRequest) (res dto.FoodOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pay")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user := shared.UserFromContext(ctx)
	amount := policy.Round(req.Amount)

	var order model.FoodOrder

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		locked, err := s.repo.GetForUpdate(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock food order: %w", err)
		}

		order = locked

		if order.ID == constant.Empty {
			return failure.NotFound(errFoodOrderNotFound)
		}

		if err := policy.ValidatePayment(amount, order.TotalAmount, order.AmountPaid); err != nil {
			return err
		}

		booking, err := s.repo.GetBookingTx(ctx, tx, order.BookingID)
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if err := policy.CanAcceptPayment(booking.Status); err != nil {
			return err
		}

		order.AmountPaid = policy.Round(order.AmountPaid + amount)
		order.PaymentStatus = policy.DerivePaymentStatus(order.TotalAmount, order.AmountPaid, 0)
		order.ModifiedAt = timezone.Now()
		order.ModifiedBy = user

		err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldAmountPaid:    order.AmountPaid,
			model.FieldPaymentStatus: order.PaymentStatus,
			constant.FieldModifiedAt: order.ModifiedAt,
			constant.FieldModifiedBy: user,
		}, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to update food order: %w", err)
		}

		return s.trxRepo.InsertTx(ctx, tx, trxModel.Transaction{
			ID:          uuid.NewString(),
			BookingID:   &order.BookingID,
			FoodOrderID: &order.ID,
			GuestName:   booking.GuestName,
			Amount:      amount,
			PaymentMode: req.PaymentMode,
			Note:        req.Note,
			CreatedAt:   order.ModifiedAt,
			CreatedBy:   user,
		})
	})
	if err != nil {
		log.Error().Err(err).Str("food_order_id", id).Msg("failed to pay food order")

		return res, failure.FromPostgres(err, errOrderConflict)
	}

	items, err := s.repo.GetItems(ctx, []string{order.ID})
	if err != nil {
		log.Error().Err(err).Str("food_order_id", id).Msg("failed to get food order items")

		return res, fmt.Errorf("failed to get food order items: %w", err)
	}

	res.FromModel(order, items)

	s.invalidate(ctx, id)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		order, err := s.repo.GetForUpdate(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock food order: %w", err)
		}

		if order.ID == constant.Empty {
			return failure.NotFound(errFoodOrderNotFound)
		}

		if policy.ToCents(order.AmountPaid) > 0 {
			return failure.Conflict("food order has payments and cannot be deleted")
		}

		return s.repo.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	})
	if err != nil {
		log.Error().Err(err).Str("food_order_id", id).Msg("failed to delete food order")

		return err
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetFoodOrder, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete food order cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllFoodOrder)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixCashier)
	}()
}
