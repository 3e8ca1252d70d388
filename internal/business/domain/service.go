package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Business, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Get(ctx context.Context, id string) (*Business, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Business, error)
	Delete(ctx context.Context, id string) error

	// Resolve loads a business by id without an ownership gate. Child entity
	// services use it to walk their ownership chain.
	Resolve(ctx context.Context, id snowflake.ID) (*Business, error)
}

type CreateRequest struct {
	MessagingContactID string `json:"messagingContactId"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	Location           string `json:"location"`
	Logo               string `json:"logo"`
	Image              string `json:"image"`
	Status             string `json:"status"`
}

type UpdateRequest struct {
	MessagingContactID *string `json:"messagingContactId"`
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	Location           *string `json:"location"`
	Logo               *string `json:"logo"`
	Image              *string `json:"image"`
	Status             *string `json:"status"`
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
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Data  []*Business `json:"data"`
}

var (
	ErrInvalidID        = errors.New("invalid_business_id")
	ErrInvalidName      = errors.New("invalid_business_name")
	ErrInvalidStatus    = errors.New("invalid_business_status")
	ErrInvalidContactID = errors.New("invalid_business_contact_id")
	ErrNotFound         = errors.New("business_not_found")
	ErrForbidden        = errors.New("business_access_denied")
)
