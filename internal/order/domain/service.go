package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Order, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Get(ctx context.Context, id string) (*Order, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	BusinessID string        `json:"businessId"`
	Name       string        `json:"name"`
	Phone      string        `json:"phone"`
	Address    string        `json:"address"`
	Items      []LineRequest `json:"items"`
	Note       string        `json:"note"`
}

type LineRequest struct {
	ItemID    string  `json:"itemId"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
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
	Total int64    `json:"total"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Data  []*Order `json:"data"`
}

var (
	ErrInvalidID         = errors.New("invalid_order_id")
	ErrInvalidBusinessID = errors.New("invalid_order_business_id")
	ErrInvalidName       = errors.New("invalid_order_name")
	ErrInvalidLine       = errors.New("invalid_order_line")
	ErrEmptyLines        = errors.New("empty_order_lines")
	ErrNotFound          = errors.New("order_not_found")
	ErrForbidden         = errors.New("order_access_denied")
)
