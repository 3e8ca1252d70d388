package domain

import (
	"context"
	"errors"

	authdomain "github.com/menuku/menuku/internal/auth/domain"
)

type Service interface {
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Get(ctx context.Context, id string) (*authdomain.User, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*authdomain.User, error)
	Delete(ctx context.Context, id string) error
}

type ListRequest struct {
	Page    string
	Limit   string
	Search  string
	Status  string
	RoleID  string
	SortBy  string
	OrderBy string
}

type ListResult struct {
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Data  []*authdomain.User `json:"data"`
}

type UpdateRequest struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
	Status   *string `json:"status"`
	RoleID   *string `json:"roleId"`
}

var (
	ErrInvalidID     = errors.New("invalid_user_id")
	ErrInvalidRoleID = errors.New("invalid_user_role_id")
	ErrInvalidStatus = errors.New("invalid_user_status")
	ErrForbidden     = errors.New("user_access_denied")
)
