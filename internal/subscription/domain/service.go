package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*UserSubscriptionPlan, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Get(ctx context.Context, id string) (*UserSubscriptionPlan, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*UserSubscriptionPlan, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	// UserID is honored for admins only; everyone else subscribes themselves.
	UserID             string `json:"userId"`
	SubscriptionPlanID string `json:"subscriptionPlanId"`
	StartDate          string `json:"startDate"`
}

type UpdateRequest struct {
	StartDate *string `json:"startDate"`
	Status    *string `json:"status"`
}

type ListRequest struct {
	Page    string
	Limit   string
	Status  string
	UserID  string
	PlanID  string
	SortBy  string
	OrderBy string
}

type ListResult struct {
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
	Data  []*UserSubscriptionPlan `json:"data"`
}

var (
	ErrInvalidID        = errors.New("invalid_subscription_id")
	ErrInvalidPlanID    = errors.New("invalid_subscription_plan_id")
	ErrInvalidUserID    = errors.New("invalid_subscription_user_id")
	ErrInvalidStartDate = errors.New("invalid_subscription_start_date")
	ErrInvalidStatus    = errors.New("invalid_subscription_status")
	ErrAlreadyActive    = errors.New("subscription_already_active")
	ErrNotFound         = errors.New("subscription_not_found")
	ErrForbidden        = errors.New("subscription_access_denied")
)
