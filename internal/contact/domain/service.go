package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*MessagingContact, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Get(ctx context.Context, id string) (*MessagingContact, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*MessagingContact, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name        string `json:"name"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`
	Status      string `json:"status"`
}

type UpdateRequest struct {
	Name        *string `json:"name"`
	Username    *string `json:"username"`
	PhoneNumber *string `json:"phoneNumber"`
	Status      *string `json:"status"`
}

type ListRequest struct {
	Page    string
	Limit   string
	Search  string
	Status  string
	UserID  string
	SortBy  string
	OrderBy string
}

type ListResult struct {
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
	Data  []*MessagingContact `json:"data"`
}

var (
	ErrInvalidID    = errors.New("invalid_contact_id")
	ErrInvalidPhone = errors.New("invalid_contact_phone")
	ErrInvalidState = errors.New("invalid_contact_status")
	ErrNotFound     = errors.New("contact_not_found")
	ErrForbidden    = errors.New("contact_access_denied")
)
