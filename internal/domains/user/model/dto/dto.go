package dto

import (
	"hotelpms/internal/domains/user/model"
	"hotelpms/shared"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	gModel "hotelpms/shared/model"
	"hotelpms/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string  `json:"email"               validate:"required,email,max=255"`
	Password string  `json:"password"            validate:"required,min=8,max=72"`
	Level    string  `json:"level"               validate:"required,role"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
}

func (r *CreateUserRequest) ToModel(hashedPassword, user string, now time.Time) model.User {
	return model.User{
		ID:       uuid.NewString(),
		Email:    NormalizeEmail(r.Email),
		Password: hashedPassword,
		Level:    r.Level,
		FullName: r.FullName,
		Active:   true,
		Metadata: gModel.NewMetadata(now, user),
	}
}

// UpdateUserRequest changes the role, name or active flag of an account. Nil fields are left as they are.
type UpdateUserRequest struct {
	Level    *string `db:"level"     json:"level,omitempty"     validate:"omitempty,role"`
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,max=255"`
	Active   *bool   `db:"active"    json:"active,omitempty"`
}

func (r UpdateUserRequest) IsEmpty() bool {
	return r.Level == nil && r.FullName == nil && r.Active == nil
}

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Level     string  `json:"level"`
	FullName  *string `json:"full_name,omitempty"`
	Active    bool    `json:"active"`
	LastLogin string  `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Level = model.Level
	r.FullName = model.FullName
	r.Active = model.Active
	r.LastLogin = constant.Empty

	if model.LastLogin != nil {
		r.LastLogin = timezone.Format(*model.LastLogin, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
