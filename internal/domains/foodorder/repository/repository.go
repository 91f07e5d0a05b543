package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotelpms/infras/otel"
	"hotelpms/infras/postgres"
	"hotelpms/internal/domains/foodorder/model"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	gRepo "hotelpms/shared/repository"

	"github.com/jmoiron/sqlx"
)

type FoodOrder interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, order model.FoodOrder, items []model.Item) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.FoodOrder, error)
	GetForUpdate(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.FoodOrder, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.FoodOrder, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
	GetItems(ctx context.Context, orderIDs []string) ([]model.Item, error)
	GetBookingTx(ctx context.Context, tx *sqlx.Tx, bookingID string) (model.BookingRef, error)
	DueByBookingTx(ctx context.Context, tx *sqlx.Tx, bookingID string) (float64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.FoodOrder]
	items gRepo.Repository[model.Item]
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) FoodOrder {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.FoodOrder](model.EntityName, model.TableName, model.FieldID, db, otel),
		items:      gRepo.NewRepository[model.Item](model.EntityName+"_item", model.ItemTableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, order model.FoodOrder, items []model.Item) error {
	if err := r.Repository.InsertTx(ctx, tx, order); err != nil {
		return err
	}

	return r.items.InsertBulkTx(ctx, tx, items)
}

func (r *repositoryImpl) GetItems(ctx context.Context, orderIDs []string) ([]model.Item, error) {
	if len(orderIDs) == 0 {
		return []model.Item{}, nil
	}

	return r.items.GetAll(ctx, gDto.QueryParams{SortBy: model.ItemTableName + "." + model.FieldID, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldFoodOrderID, Value: orderIDs, Operator: gDto.FilterOperatorIn, Table: model.ItemTableName},
		},
	})
}

// GetBookingTx locks the booking the order is billed to. A missing booking yields an empty ID.
func (r *repositoryImpl) GetBookingTx(ctx context.Context, tx *sqlx.Tx, bookingID string) (model.BookingRef, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".food_order.GetBookingTx")
	defer scope.End()

	query := `SELECT bookings.id, bookings.status, customers.name AS guest_name
		FROM bookings
		JOIN customers ON customers.id = bookings.customer_id
		WHERE bookings.id = :booking_id
		FOR UPDATE OF bookings`

	refs := []model.BookingRef{}

	if err := r.QueryTx(ctx, tx, &refs, query, map[string]any{"booking_id": bookingID}); err != nil {
		scope.TraceError(err)

		return model.BookingRef{}, err
	}

	if len(refs) == 0 {
		return model.BookingRef{}, nil
	}

	return refs[0], nil
}

// DueByBookingTx sums what is still owed on the booking's food orders.
func (r *repositoryImpl) DueByBookingTx(ctx context.Context, tx *sqlx.Tx, bookingID string) (float64, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".food_order.DueByBookingTx")
	defer scope.End()

	query := "SELECT COALESCE(SUM(total_amount - amount_paid), 0) FROM " + model.TableName + " WHERE booking_id = :booking_id"

	due := []float64{}

	if err := r.QueryTx(ctx, tx, &due, query, map[string]any{"booking_id": bookingID}); err != nil {
		scope.TraceError(err)

		return 0, err
	}

	if len(due) == 0 {
		return 0, nil
	}

	return due[0], nil
}
