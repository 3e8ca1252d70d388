package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Get(ctx context.Context, id string) (*Item, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	CategoryID  string         `json:"categoryId"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       *float64       `json:"price"`
	Image       string         `json:"image"`
	Meta        map[string]any `json:"meta"`
	Tags        []string       `json:"tags"`
	Status      string         `json:"status"`
}

type UpdateRequest struct {
	CategoryID  *string        `json:"categoryId"`
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Price       *float64       `json:"price"`
	Image       *string        `json:"image"`
	Meta        map[string]any `json:"meta"`
	Tags        []string       `json:"tags"`
	Status      *string        `json:"status"`
}

type ListRequest struct {
	Page       string
	Limit      string
	Search     string
	Status     string
	BusinessID string
	CategoryID string
	SortBy     string
	OrderBy    string
}

type ListResult struct {
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
	Data  []*Item `json:"data"`
}

var (
	ErrInvalidID         = errors.New("invalid_item_id")
	ErrInvalidCategoryID = errors.New("invalid_item_category_id")
	ErrInvalidName       = errors.New("invalid_item_name")
	ErrInvalidPrice      = errors.New("invalid_item_price")
	ErrInvalidStatus     = errors.New("invalid_item_status")
	ErrNotFound          = errors.New("item_not_found")
	ErrForbidden         = errors.New("item_access_denied")
)
