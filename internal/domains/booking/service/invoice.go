package service

import (
	"context"
	"fmt"
	"hotelpms/internal/domains/booking/model/dto"
	customerModel "hotelpms/internal/domains/customer/model"
	foodModel "hotelpms/internal/domains/foodorder/model"
	trxModel "hotelpms/internal/domains/transaction/model"
	"hotelpms/shared"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Transactions lists every payment and refund recorded against the booking, oldest first.
func (s *serviceImpl) Transactions(ctx context.Context, id string) (res []dto.TransactionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transactions")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return res, err
	}

	return s.transactions(ctx, id)
}

// Invoice renders the booking invoice and stores a copy. A failed upload leaves the URL empty.
func (s *serviceImpl) Invoice(ctx context.Context, id string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Invoice")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	detail, err := s.detail(ctx, booking)
	if err != nil {
		return res, err
	}

	customer, err := s.customerRepo.Get(ctx, shared.FilterByID(booking.CustomerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking customer")

		return res, fmt.Errorf("failed to get booking customer: %w", err)
	}

	food, err := s.foodLines(ctx, id)
	if err != nil {
		return res, err
	}

	transactions, err := s.transactions(ctx, id)
	if err != nil {
		return res, err
	}

	data := dto.InvoiceData{
		Booking:      detail,
		FoodOrders:   food,
		Transactions: transactions,
		GeneratedAt:  timezone.Now(),
	}
	data.Customer.FromModel(customer)

	pdf, err := s.renderer.Render(data)
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to render invoice")

		return res, err
	}

	res.PDF = pdf

	fileName := fmt.Sprintf("%s-%d.pdf", id, data.GeneratedAt.Unix())

	url, err := s.s3.UploadFileBytes(ctx, s.cfg.Hotel.InvoiceFolder, fileName, constant.ContentTypePDF, pdf)
	if err != nil {
		log.Warn().Err(err).Str("booking_id", id).Msg("failed to store invoice copy")

		return res, nil
	}

	res.URL = url

	return res, nil
}

func (s *serviceImpl) transactions(ctx context.Context, bookingID string) ([]dto.TransactionResponse, error) {
	params := gDto.QueryParams{SortBy: trxModel.TableName + "." + trxModel.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	models, err := s.trxRepo.GetAll(ctx, params, shared.FilterByID(bookingID, trxModel.FieldBookingID, trxModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking transactions")

		return nil, fmt.Errorf("failed to get booking transactions: %w", err)
	}

	return dto.TransactionsFromModels(models), nil
}

func (s *serviceImpl) foodLines(ctx context.Context, bookingID string) ([]dto.FoodOrderLine, error) {
	orders, err := s.foodRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(bookingID, foodModel.FieldBookingID, foodModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking food orders")

		return nil, fmt.Errorf("failed to get booking food orders: %w", err)
	}

	ids := make([]string, len(orders))
	for idx, order := range orders {
		ids[idx] = order.ID
	}

	items, err := s.foodRepo.GetItems(ctx, ids)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get food order items")

		return nil, fmt.Errorf("failed to get food order items: %w", err)
	}

	lines := make([]dto.FoodOrderLine, len(items))
	for idx, item := range items {
		lines[idx] = dto.FoodOrderLine{Name: item.Name, Quantity: item.Quantity, UnitPrice: item.UnitPrice, Amount: item.Amount}
	}

	return lines, nil
}
