package domain

import (
	"context"
	"errors"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*SubscriptionPlan, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Get(ctx context.Context, id string) (*SubscriptionPlan, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*SubscriptionPlan, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name         string   `json:"name"`
	Price        *float64 `json:"price"`
	Duration     int      `json:"duration"`
	Features     []string `json:"features"`
	MaxBusiness  *int     `json:"maxBusiness"`
	MaxCategory  *int     `json:"maxCategory"`
	MaxItem      *int     `json:"maxItem"`
	AnalysisType string   `json:"analysisType"`
	Status       string   `json:"status"`
}

type UpdateRequest struct {
	Name         *string  `json:"name"`
	Price        *float64 `json:"price"`
	Duration     *int     `json:"duration"`
	Features     []string `json:"features"`
	MaxBusiness  *int     `json:"maxBusiness"`
	MaxCategory  *int     `json:"maxCategory"`
	MaxItem      *int     `json:"maxItem"`
	AnalysisType *string  `json:"analysisType"`
	Status       *string  `json:"status"`
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
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
	Data  []*SubscriptionPlan `json:"data"`
}

var (
	ErrInvalidID       = errors.New("invalid_plan_id")
	ErrInvalidName     = errors.New("invalid_plan_name")
	ErrInvalidPrice    = errors.New("invalid_plan_price")
	ErrInvalidDuration = errors.New("invalid_plan_duration")
	ErrInvalidLimit    = errors.New("invalid_plan_limit")
	ErrInvalidAnalysis = errors.New("invalid_plan_analysis_type")
	ErrInvalidStatus   = errors.New("invalid_plan_status")
	ErrNameTaken       = errors.New("plan_name_taken")
	ErrNotFound        = errors.New("plan_not_found")
)
