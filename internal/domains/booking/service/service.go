package service

import (
	"context"
	"errors"
	"fmt"
	"hotelpms/config"
	"hotelpms/infras/otel"
	"hotelpms/infras/postgres"
	"hotelpms/infras/s3"
	"hotelpms/internal/domains/booking/invoice"
	"hotelpms/internal/domains/booking/model"
	"hotelpms/internal/domains/booking/model/dto"
	"hotelpms/internal/domains/booking/repository"
	customerModel "hotelpms/internal/domains/customer/model"
	customerRepo "hotelpms/internal/domains/customer/repository"
	foodRepo "hotelpms/internal/domains/foodorder/repository"
	roomModel "hotelpms/internal/domains/room/model"
	roomRepo "hotelpms/internal/domains/room/repository"
	trxRepo "hotelpms/internal/domains/transaction/repository"
	"hotelpms/internal/events"
	"hotelpms/shared"
	"hotelpms/shared/cache"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/failure"
	gModel "hotelpms/shared/model"
	"hotelpms/shared/phone"
	"hotelpms/shared/policy"
	"hotelpms/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = constant.CachePrefixBooking + ":get"
	cacheGetAllBooking = constant.CachePrefixBooking + ":gets"
)

const (
	errBookingNotFound = "booking not found"
	errRoomsBooked     = "selected rooms are already booked for these dates"
	errBookingConflict = "booking conflicts with a concurrent change, retry the request"
)

type Booking interface {
	Create(ctx context.Context, req dto.BookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.BookingRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	Pay(ctx context.Context, id string, req gDto.PaymentRequest) (dto.PaymentResponse, error)
	CheckIn(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckOut(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string, req dto.CancelRequest) (dto.BookingResponse, error)
	Transactions(ctx context.Context, id string) ([]dto.TransactionResponse, error)
	Invoice(ctx context.Context, id string) (dto.InvoiceResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	customerRepo customerRepo.Customer
	foodRepo     foodRepo.FoodOrder
	trxRepo      trxRepo.Transaction
	transactor   postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	publisher    events.Publisher
	s3           s3.S3
	renderer     invoice.Renderer
}

// Repositories groups the stores the booking service reads and writes.
type Repositories struct {
	Booking  repository.Booking
	Room     roomRepo.Room
	Customer customerRepo.Customer
	Food     foodRepo.FoodOrder
	Trx      trxRepo.Transaction
}

func New(repos Repositories, transactor postgres.Transactor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel,
	publisher events.Publisher, s3 s3.S3, renderer invoice.Renderer,
) Booking {
	return &serviceImpl{
		repo:         repos.Booking,
		roomRepo:     repos.Room,
		customerRepo: repos.Customer,
		foodRepo:     repos.Food,
		trxRepo:      repos.Trx,
		transactor:   transactor,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		publisher:    publisher,
		s3:           s3,
		renderer:     renderer,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.BookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.Validate(); err != nil {
		return res, err
	}

	checkin, checkout, nights, err := req.Stay()
	if err != nil {
		return res, err
	}

	primaryPhone, guestPhones, err := s.phones(req)
	if err != nil {
		return res, err
	}

	user := shared.UserFromContext(ctx)
	now := timezone.Now()

	booking := model.Booking{
		ID:           uuid.NewString(),
		Status:       policy.BookingUpcoming,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		Nights:       nights,
		Adults:       req.Adults,
		Children:     req.Children,
		Notes:        strings.TrimSpace(req.Notes),
		Metadata:     gModel.NewMetadata(now, user),
	}

	var (
		rooms   []model.Room
		guests  []model.Guest
		changes []events.RoomStatusChanged
	)

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		locked, err := s.lockRooms(ctx, tx, req.RoomIDs)
		if err != nil {
			return err
		}

		prices := make([]float64, len(req.RoomIDs))
		capacity := 0

		for idx, roomID := range req.RoomIDs {
			room := locked[roomID]

			if err := policy.CanBookRoom(room.Status); err != nil {
				return failure.BadRequestFromString(fmt.Sprintf("room %s is under maintenance", room.RoomNumber))
			}

			prices[idx] = room.PricePerNight
			capacity += room.Capacity
		}

		if err := policy.ValidateOccupancy(req.Adults, req.Children, capacity); err != nil {
			return err
		}

		if err := s.checkConflicts(ctx, tx, req.RoomIDs, checkin, checkout, constant.Empty); err != nil {
			return err
		}

		booking.TotalAmount = policy.StayTotal(prices, nights)

		if req.Payment != nil {
			amount := policy.Round(req.Payment.Amount)

			if err := policy.ValidatePayment(amount, booking.TotalAmount, 0); err != nil {
				return err
			}

			booking.AmountPaid = amount
		}

		booking.PaymentStatus = policy.DerivePaymentStatus(booking.TotalAmount, booking.AmountPaid, 0)

		customer, err := s.resolveCustomer(ctx, tx, req.PrimaryGuest, primaryPhone, user)
		if err != nil {
			return err
		}

		booking.CustomerID = customer.ID
		booking.GuestName = customer.Name
		booking.GuestPhone = customer.Phone

		rooms = make([]model.Room, len(req.RoomIDs))
		for idx, roomID := range req.RoomIDs {
			rooms[idx] = newRoom(booking, locked[roomID], user, now)
		}

		guests = req.GuestModels(booking.ID, guestPhones, user)

		if err := s.repo.InsertTx(ctx, tx, booking, rooms, guests); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		if booking.AmountPaid > 0 {
			err := s.trxRepo.InsertTx(ctx, tx, newTransaction(booking, booking.AmountPaid, req.Payment.PaymentMode, req.Payment.Note, false, user, now))
			if err != nil {
				return fmt.Errorf("failed to record payment: %w", err)
			}
		}

		changes, err = s.syncRooms(ctx, tx, values(locked), booking.ID, user)

		return err
	})
	if err != nil {
		log.Error().Err(err).Strs("room_ids", req.RoomIDs).Msg("failed to create booking")

		return res, failure.FromPostgres(err, errRoomsBooked)
	}

	res.FromModel(booking, rooms, guests)

	s.invalidate(ctx, booking.ID)
	s.publish(ctx, changes)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.AllowSort(model.TableName, model.FieldCheckinDate,
		model.FieldCheckinDate, model.FieldCheckoutDate, model.FieldStatus, model.FieldPaymentStatus,
		model.FieldTotalAmount, constant.FieldCreatedAt)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	ids := make([]string, len(bookings))
	for idx, booking := range bookings {
		ids[idx] = booking.ID
	}

	rooms, err := s.repo.GetRooms(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking rooms")

		return res, fmt.Errorf("failed to get booking rooms: %w", err)
	}

	res.FromModels(bookings, rooms, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res, err = s.detail(ctx, booking)
	if err != nil {
		return res, err
	}

	customer, err := s.customerRepo.Get(ctx, shared.FilterByID(booking.CustomerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking customer")

		return res, fmt.Errorf("failed to get booking customer: %w", err)
	}

	res.WithCustomer(customer)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update edits an upcoming booking. Rooms kept from the booking keep their booked price,
// removed rooms are dropped and new rooms are priced at today's rate.
func (s *serviceImpl) Update(ctx context.Context, req dto.BookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.Validate(); err != nil {
		return res, err
	}

	checkin, checkout, nights, err := req.Stay()
	if err != nil {
		return res, err
	}

	primaryPhone, guestPhones, err := s.phones(req)
	if err != nil {
		return res, err
	}

	user := shared.UserFromContext(ctx)
	now := timezone.Now()

	var (
		booking model.Booking
		changes []events.RoomStatusChanged
	)

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		booking = current

		if err := policy.CanEdit(booking.Status); err != nil {
			return err
		}

		active, err := s.repo.GetActiveRoomsTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to get booking rooms: %w", err)
		}

		kept := make(map[string]model.Room, len(active))
		union := append([]string{}, req.RoomIDs...)

		for _, room := range active {
			kept[room.RoomID] = room
			union = append(union, room.RoomID)
		}

		locked, err := s.lockRooms(ctx, tx, unique(union))
		if err != nil {
			return err
		}

		requested := make(map[string]struct{}, len(req.RoomIDs))
		prices := make([]float64, len(req.RoomIDs))
		capacity := 0
		added := []roomModel.Room{}

		for idx, roomID := range req.RoomIDs {
			room := locked[roomID]
			requested[roomID] = struct{}{}
			capacity += room.Capacity

			if existing, ok := kept[roomID]; ok {
				prices[idx] = existing.PricePerNight

				continue
			}

			if err := policy.CanBookRoom(room.Status); err != nil {
				return failure.BadRequestFromString(fmt.Sprintf("room %s is under maintenance", room.RoomNumber))
			}

			prices[idx] = room.PricePerNight
			added = append(added, room)
		}

		if err := policy.ValidateOccupancy(req.Adults, req.Children, capacity); err != nil {
			return err
		}

		if err := s.checkConflicts(ctx, tx, req.RoomIDs, checkin, checkout, id); err != nil {
			return err
		}

		total := policy.StayTotal(prices, nights)

		if err := policy.ValidateRetotal(total, booking.AmountPaid); err != nil {
			return err
		}

		removed := []string{}
		for roomID := range kept {
			if _, ok := requested[roomID]; !ok {
				removed = append(removed, roomID)
			}
		}

		if len(removed) > 0 {
			err := s.repo.DeleteRoomsTx(ctx, tx, roomsOf(id, removed))
			if err != nil {
				return fmt.Errorf("failed to drop booking rooms: %w", err)
			}
		}

		booking.CheckinDate = checkin
		booking.CheckoutDate = checkout
		booking.Nights = nights

		err = s.repo.UpdateRoomsTx(ctx, tx, map[string]any{
			model.FieldCheckinDate:   checkin,
			model.FieldCheckoutDate:  checkout,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}, activeRoomsOf(id))
		if err != nil {
			return fmt.Errorf("failed to update booking rooms: %w", err)
		}

		rows := make([]model.Room, len(added))
		for idx, room := range added {
			rows[idx] = newRoom(booking, room, user, now)
		}

		if err := s.repo.InsertRoomsTx(ctx, tx, rows); err != nil {
			return fmt.Errorf("failed to add booking rooms: %w", err)
		}

		customer, err := s.resolveCustomer(ctx, tx, req.PrimaryGuest, primaryPhone, user)
		if err != nil {
			return err
		}

		if err := s.repo.ReplaceGuestsTx(ctx, tx, id, req.GuestModels(id, guestPhones, user)); err != nil {
			return fmt.Errorf("failed to replace guests: %w", err)
		}

		booking.CustomerID = customer.ID
		booking.GuestName = customer.Name
		booking.GuestPhone = customer.Phone
		booking.TotalAmount = total
		booking.PaymentStatus = policy.DerivePaymentStatus(total, booking.AmountPaid, booking.RefundAmount)
		booking.Adults = req.Adults
		booking.Children = req.Children
		booking.Notes = strings.TrimSpace(req.Notes)
		booking.ModifiedAt = now
		booking.ModifiedBy = user

		err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldCustomerID:    booking.CustomerID,
			model.FieldCheckinDate:   checkin,
			model.FieldCheckoutDate:  checkout,
			model.FieldNights:        nights,
			model.FieldTotalAmount:   total,
			model.FieldPaymentStatus: booking.PaymentStatus,
			model.FieldAdults:        booking.Adults,
			model.FieldChildren:      booking.Children,
			model.FieldNotes:         booking.Notes,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}, byID(id))
		if err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		changes, err = s.syncRooms(ctx, tx, values(locked), id, user)

		return err
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking")

		return res, failure.FromPostgres(err, errRoomsBooked)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, changes)

	return s.detail(ctx, booking)
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(errBookingNotFound)
	}

	return booking, nil
}

func (s *serviceImpl) lockBooking(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error) {
	booking, err := s.repo.GetForUpdate(ctx, tx, byID(id))
	if err != nil {
		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(errBookingNotFound)
	}

	return booking, nil
}

// detail loads the rooms and guests of a booking into a response.
func (s *serviceImpl) detail(ctx context.Context, booking model.Booking) (res dto.BookingResponse, err error) {
	rooms, err := s.repo.GetRooms(ctx, []string{booking.ID})
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to get booking rooms")

		return res, fmt.Errorf("failed to get booking rooms: %w", err)
	}

	guests, err := s.repo.GetGuests(ctx, booking.ID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to get booking guests")

		return res, fmt.Errorf("failed to get booking guests: %w", err)
	}

	res.FromModel(booking, rooms, guests)

	return res, nil
}

// lockRooms locks the rooms and returns them by id. Any unknown id is rejected.
func (s *serviceImpl) lockRooms(ctx context.Context, tx *sqlx.Tx, ids []string) (map[string]roomModel.Room, error) {
	rooms, err := s.roomRepo.LockTx(ctx, tx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock rooms: %w", err)
	}

	locked := make(map[string]roomModel.Room, len(rooms))
	for _, room := range rooms {
		locked[room.ID] = room
	}

	for _, id := range ids {
		if _, ok := locked[id]; !ok {
			return nil, failure.BadRequestFromString(fmt.Sprintf("room %s not found", id))
		}
	}

	return locked, nil
}

func (s *serviceImpl) checkConflicts(ctx context.Context, tx *sqlx.Tx, ids []string, checkin, checkout time.Time, excludeBookingID string) error {
	conflicts, err := s.roomRepo.GetConflictsTx(ctx, tx, ids, checkin, checkout, excludeBookingID)
	if err != nil {
		return fmt.Errorf("failed to check room availability: %w", err)
	}

	if len(conflicts) > 0 {
		return failure.Conflict(fmt.Sprintf("rooms %s are already booked for these dates", strings.Join(conflicts, ", ")))
	}

	return nil
}

// syncRooms re-derives the status of each room from the live bookings that hold it and
// returns the changes to publish once the transaction commits.
func (s *serviceImpl) syncRooms(ctx context.Context, tx *sqlx.Tx, rooms []roomModel.Room, bookingID, user string) ([]events.RoomStatusChanged, error) {
	if len(rooms) == 0 {
		return nil, nil
	}

	ids := make([]string, len(rooms))
	for idx, room := range rooms {
		ids[idx] = room.ID
	}

	holds, err := s.repo.GetHoldsTx(ctx, tx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get room holds: %w", err)
	}

	holding := make(map[string][]policy.BookingStatus, len(rooms))
	for _, hold := range holds {
		holding[hold.RoomID] = append(holding[hold.RoomID], hold.Status)
	}

	now := timezone.Now()
	changes := []events.RoomStatusChanged{}

	for _, room := range rooms {
		next := policy.ResolveRoomStatus(room.Status, holding[room.ID])
		if next == room.Status {
			continue
		}

		err := s.roomRepo.UpdateTx(ctx, tx, map[string]any{
			roomModel.FieldStatus:    next,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}, shared.FilterByID(room.ID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return nil, fmt.Errorf("failed to update room %s status: %w", room.RoomNumber, err)
		}

		changes = append(changes, events.RoomStatusChanged{
			RoomID:         room.ID,
			RoomNumber:     room.RoomNumber,
			Status:         next,
			PreviousStatus: room.Status,
			BookingID:      bookingID,
			ChangedAt:      now,
		})
	}

	return changes, nil
}

// resolveCustomer returns the primary guest. Inline details are upserted by phone.
func (s *serviceImpl) resolveCustomer(ctx context.Context, tx *sqlx.Tx, guest dto.PrimaryGuest, phoneNumber, user string) (customerModel.Customer, error) {
	if guest.Customer == nil {
		customer, err := s.customerRepo.GetTx(ctx, tx, shared.FilterByID(guest.CustomerID, customerModel.FieldID, customerModel.TableName))
		if err != nil {
			return customer, fmt.Errorf("failed to get customer: %w", err)
		}

		if customer.ID == constant.Empty {
			return customer, failure.BadRequestFromString(fmt.Sprintf("customer %s not found", guest.CustomerID))
		}

		return customer, nil
	}

	existing, err := s.customerRepo.GetForUpdate(ctx, tx, shared.FilterByID(phoneNumber, customerModel.FieldPhone, customerModel.TableName))
	if err != nil {
		return existing, fmt.Errorf("failed to get customer by phone: %w", err)
	}

	customer := guest.Customer.ToModel(phoneNumber, existing.IDProofImage, user)

	if existing.ID == constant.Empty {
		if err := s.customerRepo.InsertTx(ctx, tx, customer); err != nil {
			return customer, fmt.Errorf("failed to create customer: %w", err)
		}

		return customer, nil
	}

	customer.ID = existing.ID
	customer.CreatedAt = existing.CreatedAt
	customer.CreatedBy = existing.CreatedBy

	err = s.customerRepo.UpdateTx(ctx, tx, guest.Customer.ToUpdateFields(phoneNumber, constant.Empty, user),
		shared.FilterByID(existing.ID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		return customer, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}

// phones normalizes the primary guest's phone and every additional guest phone.
func (s *serviceImpl) phones(req dto.BookingRequest) (string, []string, error) {
	primary := constant.Empty

	if req.PrimaryGuest.Customer != nil {
		normalized, err := s.normalizePhone(req.PrimaryGuest.Customer.Phone)
		if err != nil {
			return constant.Empty, nil, err
		}

		primary = normalized
	}

	guests := make([]string, len(req.AdditionalGuests))

	for idx, guest := range req.AdditionalGuests {
		if strings.TrimSpace(guest.Phone) == constant.Empty {
			continue
		}

		normalized, err := s.normalizePhone(guest.Phone)
		if err != nil {
			return constant.Empty, nil, err
		}

		guests[idx] = normalized
	}

	return primary, guests, nil
}

func (s *serviceImpl) normalizePhone(raw string) (string, error) {
	normalized, err := phone.Normalize(raw, s.cfg.Hotel.PhoneRegions)
	if err != nil {
		if errors.Is(err, phone.ErrInvalidPhone) {
			return constant.Empty, failure.BadRequestFromString(fmt.Sprintf("invalid phone number %q", raw))
		}

		return constant.Empty, err
	}

	return normalized, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixRoom)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixCustomer)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixFoodOrder)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixCashier)
	}()
}

func (s *serviceImpl) publish(ctx context.Context, changes []events.RoomStatusChanged) {
	if len(changes) == 0 {
		return
	}

	go func() {
		_ = s.publisher.PublishRoomStatus(context.WithoutCancel(ctx), changes...)
	}()
}

func newRoom(booking model.Booking, room roomModel.Room, user string, now time.Time) model.Room {
	return model.Room{
		ID:            uuid.NewString(),
		BookingID:     booking.ID,
		RoomID:        room.ID,
		RoomNumber:    room.RoomNumber,
		PricePerNight: room.PricePerNight,
		CheckinDate:   booking.CheckinDate,
		CheckoutDate:  booking.CheckoutDate,
		Active:        true,
		Metadata:      gModel.NewMetadata(now, user),
	}
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func activeRoomsOf(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: model.RoomTableName},
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.RoomTableName},
		},
	}
}

func roomsOf(bookingID string, roomIDs []string) gDto.FilterGroup {
	group := activeRoomsOf(bookingID)
	group.Filters = append(group.Filters,
		gDto.Filter{Field: model.FieldRoomID, Value: roomIDs, Operator: gDto.FilterOperatorIn, Table: model.RoomTableName})

	return group
}

func values(rooms map[string]roomModel.Room) []roomModel.Room {
	res := make([]roomModel.Room, 0, len(rooms))
	for _, room := range rooms {
		res = append(res, room)
	}

	return res
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	res := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		res = append(res, id)
	}

	return res
}
