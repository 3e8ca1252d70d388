package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Role, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Get(ctx context.Context, id string) (*Role, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Role, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type ListRequest struct {
	Page    string
	Limit   string
	Search  string
	Status  string
	SortBy  string
	OrderBy string
}

type ListResult struct {
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
	Data  []*Role `json:"data"`
}

var (
	ErrInvalidID     = errors.New("invalid_role_id")
	ErrInvalidName   = errors.New("invalid_role_name")
	ErrInvalidStatus = errors.New("invalid_role_status")
	ErrNameTaken     = errors.New("role_name_taken")
	ErrNotFound      = errors.New("role_not_found")
)
