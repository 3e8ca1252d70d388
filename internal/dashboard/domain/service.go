package domain

import (
	"context"
	"errors"
)

type Service interface {
	Stats(ctx context.Context, req StatsRequest) (*Stats, error)
}

type StatsRequest struct {
	UserID     string
	BusinessID string
}

type Stats struct {
	Businesses int64  `json:"businesses"`
	Categories int64  `json:"categories"`
	Items      int64  `json:"items"`
	Orders     int64  `json:"orders"`
	Users      *int64 `json:"users,omitempty"`
}

var (
	ErrInvalidUserID     = errors.New("invalid_stats_user_id")
	ErrInvalidBusinessID = errors.New("invalid_stats_business_id")
	ErrForbidden         = errors.New("stats_access_denied")
)
