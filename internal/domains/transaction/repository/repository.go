package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotelpms/infras/otel"
	"hotelpms/infras/postgres"
	"hotelpms/internal/domains/transaction/model"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	gRepo "hotelpms/shared/repository"

	"github.com/jmoiron/sqlx"
)

const totalsColumns = `COALESCE(SUM(amount) FILTER (WHERE NOT is_refund), 0) AS collected,
	COALESCE(SUM(amount) FILTER (WHERE is_refund), 0) AS refunded,
	COUNT(*) AS count`

type Transaction interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Transaction) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Transaction, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	TotalsByMode(ctx context.Context, filter gDto.FilterGroup) ([]model.ModeTotal, error)
	TotalsByDay(ctx context.Context, location string, filter gDto.FilterGroup) ([]model.DayTotal, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Transaction]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Transaction {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Transaction](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) TotalsByMode(ctx context.Context, filter gDto.FilterGroup) ([]model.ModeTotal, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".transaction.TotalsByMode")
	defer scope.End()

	where, args := r.BuildWhereClause(ctx, filter)

	query := "SELECT payment_mode, " + totalsColumns + " FROM " + model.TableName + where +
		" GROUP BY payment_mode ORDER BY payment_mode"

	totals := []model.ModeTotal{}

	if err := r.Query(ctx, &totals, query, args); err != nil {
		scope.TraceError(err)

		return nil, err
	}

	return totals, nil
}

// TotalsByDay groups by calendar day in the given IANA location.
func (r *repositoryImpl) TotalsByDay(ctx context.Context, location string, filter gDto.FilterGroup) ([]model.DayTotal, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".transaction.TotalsByDay")
	defer scope.End()

	where, args := r.BuildWhereClause(ctx, filter)
	args["location"] = location

	query := "SELECT CAST(created_at AT TIME ZONE :location AS DATE) AS day, " + totalsColumns + " FROM " + model.TableName + where +
		" GROUP BY day ORDER BY day"

	totals := []model.DayTotal{}

	if err := r.Query(ctx, &totals, query, args); err != nil {
		scope.TraceError(err)

		return nil, err
	}

	return totals, nil
}
