package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/menuku/menuku/internal/actorctx"
	authdomain "github.com/menuku/menuku/internal/auth/domain"
	"github.com/menuku/menuku/internal/events"
	plandomain "github.com/menuku/menuku/internal/plan/domain"
	"github.com/menuku/menuku/internal/subscription/domain"
	"github.com/menuku/menuku/pkg/db/option"
	"github.com/menuku/menuku/pkg/repository"
)

var sortable = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"start_date": true,
	"end_date":   true,
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     repository.Repository[domain.UserSubscriptionPlan]
	Plans    repository.Repository[plandomain.SubscriptionPlan]
	Users    repository.Repository[authdomain.User]
	Notifier events.Notifier
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     repository.Repository[domain.UserSubscriptionPlan]
	plans    repository.Repository[plandomain.SubscriptionPlan]
	users    repository.Repository[authdomain.User]
	notifier events.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("subscription.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		plans:    p.Plans,
		users:    p.Users,
		notifier: p.Notifier,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.UserSubscriptionPlan, error) {
	actor, ok := actorctx.FromContext(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}

	userID := actor.UserID
	if raw := strings.TrimSpace(req.UserID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidUserID
		}
		if !actor.Owns(parsed) {
			return nil, domain.ErrForbidden
		}
		userID = parsed
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrNotFound
	}

	planID, err := snowflake.ParseString(strings.TrimSpace(req.SubscriptionPlanID))
	if err != nil {
		return nil, domain.ErrInvalidPlanID
	}
	plan, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, plandomain.ErrNotFound
	}

	startDate := time.Now().UTC()
	if raw := strings.TrimSpace(req.StartDate); raw != "" {
		startDate, err = parseDate(raw)
		if err != nil {
			return nil, domain.ErrInvalidStartDate
		}
	}

	active, err := s.repo.FindOne(ctx,
		option.WithFilter("user_id", int64(userID)),
		option.WithFilter("status", domain.StatusActive),
	)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, domain.ErrAlreadyActive
	}

	now := time.Now().UTC()
	subscription := &domain.UserSubscriptionPlan{
		ID:                 s.genID.Generate(),
		UserID:             userID,
		SubscriptionPlanID: planID,
		StartDate:          startDate,
		EndDate:            startDate.AddDate(0, plan.Duration, 0),
		Status:             domain.StatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, subscription); err != nil {
		return nil, err
	}

	created, err := s.loadExpanded(ctx, subscription.ID)
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast("userSubscriptionPlanCreated", created)
	return created, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResult, error) {
	actor, ok := actorctx.FromContext(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}

	page := option.ParsePage(req.Page)
	limit := option.ParseLimit(req.Limit)

	var filters []option.QueryOption
	if status := strings.TrimSpace(req.Status); status != "" {
		filters = append(filters, option.WithFilter("status", status))
	}
	if raw := strings.TrimSpace(req.PlanID); raw != "" {
		planID, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidPlanID
		}
		filters = append(filters, option.WithFilter("subscription_plan_id", int64(planID)))
	}
	if raw := strings.TrimSpace(req.UserID); raw != "" {
		userID, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidUserID
		}
		if !actor.Owns(userID) {
			return nil, domain.ErrForbidden
		}
		filters = append(filters, option.WithFilter("user_id", int64(userID)))
	} else if !actor.IsAdmin() {
		filters = append(filters, option.WithFilter("user_id", int64(actor.UserID)))
	}

	total, err := s.repo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	opts := append(filters,
		option.WithSortBy(req.SortBy, req.OrderBy, sortable),
		option.WithPage(page, limit),
		option.WithPreload("SubscriptionPlan"),
	)
	subscriptions, err := s.repo.Find(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &domain.ListResult{Total: total, Page: page, Limit: limit, Data: subscriptions}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.UserSubscriptionPlan, error) {
	subscription, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	actor, ok := actorctx.FromContext(ctx)
	if !ok || !actor.Owns(subscription.UserID) {
		return nil, domain.ErrForbidden
	}
	return subscription, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.UserSubscriptionPlan, error) {
	subscription, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil {
		startDate, err := parseDate(strings.TrimSpace(*req.StartDate))
		if err != nil {
			return nil, domain.ErrInvalidStartDate
		}
		plan, err := s.plans.FindByID(ctx, subscription.SubscriptionPlanID)
		if err != nil {
			return nil, err
		}
		if plan == nil {
			return nil, plandomain.ErrNotFound
		}
		subscription.StartDate = startDate
		subscription.EndDate = startDate.AddDate(0, plan.Duration, 0)
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		if *req.Status == domain.StatusActive && subscription.Status != domain.StatusActive {
			active, err := s.repo.FindOne(ctx,
				option.WithFilter("user_id", int64(subscription.UserID)),
				option.WithFilter("status", domain.StatusActive),
			)
			if err != nil {
				return nil, err
			}
			if active != nil && active.ID != subscription.ID {
				return nil, domain.ErrAlreadyActive
			}
		}
		subscription.Status = *req.Status
	}

	subscription.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, subscription); err != nil {
		return nil, err
	}

	updated, err := s.loadExpanded(ctx, subscription.ID)
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast("userSubscriptionPlanUpdated", updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	subscription, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, subscription.ID); err != nil {
		return err
	}

	s.notifier.Broadcast("userSubscriptionPlanDeleted", subscription.ID.String())
	return nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.UserSubscriptionPlan, error) {
	subscriptionID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return s.loadExpanded(ctx, subscriptionID)
}

func (s *Service) loadExpanded(ctx context.Context, id snowflake.ID) (*domain.UserSubscriptionPlan, error) {
	subscription, err := s.repo.FindByID(ctx, id,
		option.WithPreload("User", "User.Role", "SubscriptionPlan"),
	)
	if err != nil {
		return nil, err
	}
	if subscription == nil {
		return nil, domain.ErrNotFound
	}
	return subscription, nil
}

func parseDate(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}
