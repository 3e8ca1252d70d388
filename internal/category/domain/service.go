package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Category, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Get(ctx context.Context, id string) (*Category, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Category, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	BusinessID  string `json:"businessId"`
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
	Page       string
	Limit      string
	Search     string
	Status     string
	BusinessID string
	SortBy     string
	OrderBy    string
}

type ListResult struct {
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Data  []*Category `json:"data"`
}

var (
	ErrInvalidID         = errors.New("invalid_category_id")
	ErrInvalidBusinessID = errors.New("invalid_category_business_id")
	ErrInvalidName       = errors.New("invalid_category_name")
	ErrInvalidStatus     = errors.New("invalid_category_status")
	ErrNameTaken         = errors.New("category_name_taken")
	ErrNotFound          = errors.New("category_not_found")
	ErrForbidden         = errors.New("category_access_denied")
)
