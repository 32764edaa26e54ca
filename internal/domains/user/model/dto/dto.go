package dto

import (
	"folio/internal/domains/user/model"
	"folio/shared"
	gDto "folio/shared/dto"
	gModel "folio/shared/model"
	"folio/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NormalizeEmail lowercases and trims an address so that lookups and the unique index agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type CreateUserRequest struct {
	Email    string  `json:"email"     validate:"required,email"`
	Password string  `json:"password"  validate:"required,min=8"`
	Level    string  `json:"level"     validate:"required,oneof=admin user"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
	Active   *bool   `json:"active"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return model.User{
		ID:       uuid.NewString(),
		Email:    NormalizeEmail(r.Email),
		Password: hashedPassword,
		Level:    r.Level,
		FullName: r.FullName,
		Active:   active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

// UpdateUserRequest carries the patchable columns. Password is hashed by the service before it is
// written, so it has no db tag here.
type UpdateUserRequest struct {
	Email    *string `db:"email"     json:"email"     validate:"omitempty,email"`
	Level    *string `db:"level"     json:"level"     validate:"omitempty,oneof=admin user"`
	FullName *string `db:"full_name" json:"full_name" validate:"omitempty,max=255"`
	Active   *bool   `db:"active"    json:"active"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Level     string     `json:"level"`
	FullName  *string    `json:"full_name,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	Active    bool       `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Level = model.Level
	r.FullName = model.FullName
	r.LastLogin = model.LastLogin
	r.Active = model.Active
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
