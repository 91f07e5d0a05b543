package service

import (
	"context"
	"fmt"
	"hotelpms/config"
	"hotelpms/infras/otel"
	"hotelpms/infras/postgres"
	"hotelpms/internal/domains/room/model"
	"hotelpms/internal/domains/room/model/dto"
	"hotelpms/internal/domains/room/repository"
	"hotelpms/internal/events"
	"hotelpms/shared"
	"hotelpms/shared/cache"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/policy"
	"hotelpms/shared/timezone"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom       = constant.CachePrefixRoom + ":get"
	cacheGetAllRoom    = constant.CachePrefixRoom + ":gets"
	cacheCountRoom     = constant.CachePrefixRoom + ":count"
	cacheAvailableRoom = constant.CachePrefixRoom + ":available"
)

const errRoomNotFound = "room not found"

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
	Available(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailableRoomsResponse, error)
	History(ctx context.Context, id string, req dto.HistoryRequest) (dto.RoomHistoryResponse, error)
}

type serviceImpl struct {
	repo       repository.Room
	transactor postgres.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	publisher  events.Publisher
}

func New(repo repository.Room, transactor postgres.Transactor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel,
	publisher events.Publisher,
) Room {
	return &serviceImpl{
		repo:       repo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		publisher:  publisher,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Status != "" {
		if err = policy.CanSetRoomStatus(req.Status); err != nil {
			return res, err
		}
	}

	room := req.ToModel(shared.UserFromContext(ctx))

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Str("room_number", room.RoomNumber).Msg("failed to create room")

		return res, failure.FromPostgres(err, fmt.Sprintf("room %s already exists", room.RoomNumber))
	}

	res.FromModel(room)

	s.invalidate(ctx, constant.Empty)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.AllowSort(model.TableName, model.FieldRoomNumber,
		model.FieldRoomNumber, model.FieldRoomType, model.FieldPricePerNight, model.FieldCapacity, model.FieldFloor, model.FieldStatus, constant.FieldCreatedAt)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.PricePerNight != nil {
		price := policy.Round(*req.PricePerNight)
		req.PricePerNight = &price
	}

	var current model.Room

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		var err error

		current, err = s.lock(ctx, tx, id)
		if err != nil {
			return err
		}

		if err = policy.CanModifyRoom(current.Status); err != nil {
			log.Warn().Str("room_id", id).Str("status", current.Status.String()).Msg("room is held and cannot be updated")

			return err
		}

		if req.Status != "" {
			if err = policy.CanSetRoomStatus(req.Status); err != nil {
				return err
			}
		}

		updatedFields := shared.TransformFields(req, shared.UserFromContext(ctx))

		if err = s.repo.UpdateTx(ctx, tx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Str("room_id", id).Msg("failed to update room")

			return failure.FromPostgres(err, fmt.Sprintf("room %s already exists", req.RoomNumber))
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)

	if req.Status != "" && req.Status != current.Status {
		go func() {
			_ = s.publisher.PublishRoomStatus(context.WithoutCancel(ctx), events.RoomStatusChanged{
				RoomID:         current.ID,
				RoomNumber:     current.RoomNumber,
				Status:         req.Status,
				PreviousStatus: current.Status,
				ChangedAt:      timezone.Now(),
			})
		}()
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.lock(ctx, tx, id)
		if err != nil {
			return err
		}

		if err = policy.CanModifyRoom(current.Status); err != nil {
			log.Warn().Str("room_id", id).Str("status", current.Status.String()).Msg("room is held and cannot be deleted")

			return err
		}

		if err = s.repo.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Str("room_id", id).Msg("failed to delete room")

			if failure.IsFailure(failure.FromPostgres(err, constant.Empty), http.StatusBadRequest) {
				return failure.Conflict(fmt.Sprintf("room %s has booking history and cannot be deleted", current.RoomNumber))
			}

			return fmt.Errorf("failed to delete room: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Available(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailableRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Available")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkin, checkout, err := req.Stay()
	if err != nil {
		return res, failure.BadRequest(err)
	}

	cacheKey := shared.BuildCacheKey(cacheAvailableRoom, req.CheckinDate, req.CheckoutDate, req.RoomType,
		fmt.Sprint(req.Capacity), req.ExcludeBookingID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for available rooms")

		return res, nil
	}

	rooms, err := s.repo.GetAvailable(ctx, repository.AvailabilityFilter{
		Checkin:          checkin,
		Checkout:         checkout,
		RoomType:         req.RoomType,
		MinCapacity:      req.Capacity,
		ExcludeBookingID: req.ExcludeBookingID,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get available rooms")

		return res, fmt.Errorf("failed to get available rooms: %w", err)
	}

	res.FromModels(rooms, checkin, checkout)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save available rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) History(ctx context.Context, id string, req dto.HistoryRequest) (res dto.RoomHistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".History")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	stays, err := s.repo.GetHistory(ctx, id, req.From, req.To, req.PaymentStatus)
	if err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("failed to get room history")

		return res, fmt.Errorf("failed to get room history: %w", err)
	}

	res.FromModels(room, req, stays)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound(errRoomNotFound)
	}

	return room, nil
}

// lock reads the room with a row lock held until tx ends. Bookings take the same lock before they
// change the room status.
func (s *serviceImpl) lock(ctx context.Context, tx *sqlx.Tx, id string) (model.Room, error) {
	room, err := s.repo.GetForUpdate(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("failed to lock room")

		return room, fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound(errRoomNotFound)
	}

	return room, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete room cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
		shared.InvalidateCaches(c, s.cache, cacheAvailableRoom)
	}()
}
