package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/menuku/menuku/internal/actorctx"
	authdomain "github.com/menuku/menuku/internal/auth/domain"
	businessdomain "github.com/menuku/menuku/internal/business/domain"
	categorydomain "github.com/menuku/menuku/internal/category/domain"
	"github.com/menuku/menuku/internal/dashboard/domain"
	itemdomain "github.com/menuku/menuku/internal/item/domain"
	orderdomain "github.com/menuku/menuku/internal/order/domain"
	"github.com/menuku/menuku/pkg/db/option"
	"github.com/menuku/menuku/pkg/repository"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Users      repository.Repository[authdomain.User]
	Businesses repository.Repository[businessdomain.Business]
	Categories repository.Repository[categorydomain.Category]
	Items      repository.Repository[itemdomain.Item]
	Orders     repository.Repository[orderdomain.Order]
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	users      repository.Repository[authdomain.User]
	businesses repository.Repository[businessdomain.Business]
	categories repository.Repository[categorydomain.Category]
	items      repository.Repository[itemdomain.Item]
	orders     repository.Repository[orderdomain.Order]
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("dashboard.service"),
		users:      p.Users,
		businesses: p.Businesses,
		categories: p.Categories,
		items:      p.Items,
		orders:     p.Orders,
	}
}

func (s *Service) Stats(ctx context.Context, req domain.StatsRequest) (*domain.Stats, error) {
	actor, ok := actorctx.FromContext(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}

	// Non-admins are always scoped to their own records.
	var userID snowflake.ID
	if raw := strings.TrimSpace(req.UserID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidUserID
		}
		if !actor.Owns(parsed) {
			return nil, domain.ErrForbidden
		}
		userID = parsed
	} else if !actor.IsAdmin() {
		userID = actor.UserID
	}

	// A businessId filter walks the ownership chain like every other scoped
	// read: resolve the business first, then compare owners.
	var businessID snowflake.ID
	if raw := strings.TrimSpace(req.BusinessID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidBusinessID
		}
		business, err := s.businesses.FindByID(ctx, parsed)
		if err != nil {
			return nil, err
		}
		if business == nil {
			return nil, businessdomain.ErrNotFound
		}
		if !actor.Owns(business.UserID) {
			return nil, domain.ErrForbidden
		}
		businessID = parsed
	}

	businessOpts := s.businessScope(userID, businessID)
	childOpts := s.childScope(userID, businessID)

	stats := &domain.Stats{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.businesses.Count(ctx, businessOpts...)
		stats.Businesses = count
		return err
	})
	g.Go(func() error {
		count, err := s.categories.Count(ctx, childOpts...)
		stats.Categories = count
		return err
	})
	g.Go(func() error {
		count, err := s.items.Count(ctx, childOpts...)
		stats.Items = count
		return err
	})
	g.Go(func() error {
		count, err := s.orders.Count(ctx, childOpts...)
		stats.Orders = count
		return err
	})
	if actor.IsAdmin() {
		g.Go(func() error {
			count, err := s.users.Count(ctx)
			stats.Users = &count
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) businessScope(userID, businessID snowflake.ID) []option.QueryOption {
	var opts []option.QueryOption
	if userID != 0 {
		opts = append(opts, option.WithFilter("user_id", int64(userID)))
	}
	if businessID != 0 {
		opts = append(opts, option.WithFilter("id", int64(businessID)))
	}
	return opts
}

func (s *Service) childScope(userID, businessID snowflake.ID) []option.QueryOption {
	var opts []option.QueryOption
	if businessID != 0 {
		opts = append(opts, option.WithFilter("business_id", int64(businessID)))
	} else if userID != 0 {
		opts = append(opts, option.WithWhere(
			"business_id IN (SELECT id FROM businesses WHERE user_id = ?)",
			int64(userID),
		))
	}
	return opts
}
