package service

import (
	"context"
	"errors"
	"fmt"
	"hotelpms/config"
	"hotelpms/infras/otel"
	"hotelpms/infras/s3"
	"hotelpms/internal/domains/customer/model"
	"hotelpms/internal/domains/customer/model/dto"
	"hotelpms/internal/domains/customer/repository"
	"hotelpms/shared"
	"hotelpms/shared/base64"
	"hotelpms/shared/cache"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/phone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetCustomer    = constant.CachePrefixCustomer + ":get"
	cacheGetAllCustomer = constant.CachePrefixCustomer + ":gets"
	cacheCountCustomer  = constant.CachePrefixCustomer + ":count"
)

const errCustomerNotFound = "customer not found"

type Customer interface {
	Create(ctx context.Context, req dto.CustomerRequest) (dto.CustomerResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCustomersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.CustomerResponse, error)
	Update(ctx context.Context, req dto.CustomerRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Customer
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Customer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Customer {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CustomerRequest) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	normalized, err := s.normalizePhone(req.Phone)
	if err != nil {
		return res, err
	}

	imageURL, err := s.uploadIDProof(ctx, req.IDProofFile)
	if err != nil {
		return res, err
	}

	customer := req.ToModel(normalized, imageURL, shared.UserFromContext(ctx))

	if err = s.repo.Insert(ctx, customer); err != nil {
		log.Error().Err(err).Str("phone", normalized).Msg("failed to create customer")

		s.deleteIDProof(ctx, imageURL)

		return res, failure.FromPostgres(err, fmt.Sprintf("customer with phone %s already exists", normalized))
	}

	res.FromModel(customer)

	s.invalidate(ctx, constant.Empty)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.AllowSort(model.TableName, constant.FieldCreatedAt,
		model.FieldName, model.FieldPhone, model.FieldEmail, constant.FieldCreatedAt)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCustomer, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for customers")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customers")

		return res, fmt.Errorf("failed to get customers: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCustomer, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetCustomer, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for customer")

		return res, nil
	}

	customer, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(customer)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.CustomerRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	normalized, err := s.normalizePhone(req.Phone)
	if err != nil {
		return err
	}

	imageURL, err := s.uploadIDProof(ctx, req.IDProofFile)
	if err != nil {
		return err
	}

	updatedFields := req.ToUpdateFields(normalized, imageURL, shared.UserFromContext(ctx))

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("customer_id", id).Msg("failed to update customer")

		s.deleteIDProof(ctx, imageURL)

		return failure.FromPostgres(err, fmt.Sprintf("customer with phone %s already exists", normalized))
	}

	if imageURL != constant.Empty {
		s.deleteIDProof(ctx, current.IDProofImage)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	hasBookings, err := s.repo.HasBookings(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("customer_id", id).Msg("failed to check customer bookings")

		return fmt.Errorf("failed to check customer bookings: %w", err)
	}

	if hasBookings {
		return failure.Conflict(fmt.Sprintf("customer %s has bookings and cannot be deleted", current.Name))
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("customer_id", id).Msg("failed to delete customer")

		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.deleteIDProof(ctx, current.IDProofImage)

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Customer, error) {
	customer, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("customer_id", id).Msg("failed to get customer")

		return customer, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return customer, failure.NotFound(errCustomerNotFound)
	}

	return customer, nil
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

// uploadIDProof stores the scan and returns its public URL, or "" when no file was sent.
func (s *serviceImpl) uploadIDProof(ctx context.Context, file string) (string, error) {
	if file == constant.Empty {
		return constant.Empty, nil
	}

	data, contentType, err := base64.Decode(file)
	if err != nil {
		return constant.Empty, failure.BadRequest(err)
	}

	url, err := s.s3.UploadFileBytes(ctx, s.cfg.Hotel.IDProofFolder, uuid.NewString()+base64.Extension(contentType), contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload id proof")

		return constant.Empty, fmt.Errorf("failed to upload id proof: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) deleteIDProof(ctx context.Context, url string) {
	if url == constant.Empty {
		return
	}

	objectName := s.s3.GetObjectNameFromURL(url)
	if objectName == constant.Empty {
		return
	}

	go func() {
		if err := s.s3.DeleteFile(context.WithoutCancel(ctx), objectName); err != nil {
			log.Error().Err(err).Str("object", objectName).Msg("failed to delete id proof")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCustomer, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete customer cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCustomer)
		shared.InvalidateCaches(c, s.cache, cacheCountCustomer)
	}()
}
