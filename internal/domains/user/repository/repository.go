package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelpms/infras/otel"
	"hotelpms/infras/postgres"
	"hotelpms/internal/domains/user/model"
	"hotelpms/shared"
	gDto "hotelpms/shared/dto"
	gRepo "hotelpms/shared/repository"
	"strings"
	"time"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	RecordLogin(ctx context.Context, id string, at time.Time, rehashedPassword string) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// GetByEmail looks the account up by its normalized email. A zero User means no account.
func (r *repositoryImpl) GetByEmail(ctx context.Context, email string) (model.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return model.User{}, nil
	}

	user, err := r.Get(ctx, shared.FilterByID(normalized, model.FieldEmail, model.TableName))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// RecordLogin stamps last_login. A non-empty rehashedPassword replaces the stored hash in the same write.
func (r *repositoryImpl) RecordLogin(ctx context.Context, id string, at time.Time, rehashedPassword string) error {
	fields := map[string]any{
		model.FieldLastLogin: at,
	}

	if rehashedPassword != "" {
		fields[model.FieldPassword] = rehashedPassword
	}

	return r.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
}
