package user

import "cityportal/internal/pkg/pagination"

// CreateUserRequest provisions an account without a password: the
// response carries a generated one-time password to hand over out of
// band.
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone"`
	Role      string `json:"role" validate:"required,oneof=admin member"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin member"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type SearchQuery struct {
	pagination.Query
	Role string `form:"role"`
}

type CreatedResponse struct {
	User            *User  `json:"user"`
	InitialPassword string `json:"initial_password"`
}
