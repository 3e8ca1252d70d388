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
	businessdomain "github.com/menuku/menuku/internal/business/domain"
	"github.com/menuku/menuku/internal/category/domain"
	"github.com/menuku/menuku/internal/events"
	"github.com/menuku/menuku/pkg/db"
	"github.com/menuku/menuku/pkg/db/option"
	"github.com/menuku/menuku/pkg/repository"
	"github.com/menuku/menuku/pkg/slugify"
)

var sortable = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       repository.Repository[domain.Category]
	Businesses businessdomain.Service
	Notifier   events.Notifier
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       repository.Repository[domain.Category]
	businesses businessdomain.Service
	notifier   events.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("category.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		businesses: p.Businesses,
		notifier:   p.Notifier,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Category, error) {
	actor, ok := actorctx.FromContext(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}

	businessID, err := snowflake.ParseString(strings.TrimSpace(req.BusinessID))
	if err != nil {
		return nil, domain.ErrInvalidBusinessID
	}
	business, err := s.businesses.Resolve(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(business.UserID) {
		return nil, domain.ErrForbidden
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusActive
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	slug := slugify.Make(name)
	taken, err := s.nameTaken(ctx, businessID, name, slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrNameTaken
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:          s.genID.Generate(),
		BusinessID:  businessID,
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(req.Description),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}

	created, err := s.loadExpanded(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast("categoryCreated", created)
	return created, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResult, error) {
	page := option.ParsePage(req.Page)
	limit := option.ParseLimit(req.Limit)

	filters := []option.QueryOption{
		option.WithSearch(req.Search, "name", "slug", "description"),
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		filters = append(filters, option.WithFilter("status", status))
	}
	if raw := strings.TrimSpace(req.BusinessID); raw != "" {
		businessID, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidBusinessID
		}
		filters = append(filters, option.WithFilter("business_id", int64(businessID)))
	}

	total, err := s.repo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	opts := append(filters,
		option.WithSortBy(req.SortBy, req.OrderBy, sortable),
		option.WithPage(page, limit),
		option.WithPreload("Business"),
	)
	categories, err := s.repo.Find(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &domain.ListResult{Total: total, Page: page, Limit: limit, Data: categories}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Category, error) {
	categoryID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return s.loadExpanded(ctx, categoryID)
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, category.BusinessID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		slug := slugify.Make(name)
		taken, err := s.nameTaken(ctx, category.BusinessID, name, slug, category.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrNameTaken
		}
		category.Name = name
		category.Slug = slug
	}
	if req.Description != nil {
		category.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		category.Status = *req.Status
	}

	category.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, category); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}

	updated, err := s.loadExpanded(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast("categoryUpdated", updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, category.BusinessID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, category.ID); err != nil {
		return err
	}

	s.notifier.Broadcast("categoryDeleted", category.ID.String())
	return nil
}

// authorize resolves the owning business before the ownership comparison.
func (s *Service) authorize(ctx context.Context, businessID snowflake.ID) error {
	business, err := s.businesses.Resolve(ctx, businessID)
	if err != nil {
		return err
	}
	actor, ok := actorctx.FromContext(ctx)
	if !ok || !actor.Owns(business.UserID) {
		return domain.ErrForbidden
	}
	return nil
}

func (s *Service) nameTaken(ctx context.Context, businessID snowflake.ID, name, slug string, selfID snowflake.ID) (bool, error) {
	existing, err := s.repo.FindOne(ctx,
		option.WithFilter("business_id", int64(businessID)),
		option.WithFilter("LOWER(name)", strings.ToLower(name)),
	)
	if err != nil {
		return false, err
	}
	if existing != nil && existing.ID != selfID {
		return true, nil
	}
	existing, err = s.repo.FindOne(ctx,
		option.WithFilter("business_id", int64(businessID)),
		option.WithFilter("LOWER(slug)", strings.ToLower(slug)),
	)
	if err != nil {
		return false, err
	}
	return existing != nil && existing.ID != selfID, nil
}

func (s *Service) loadExpanded(ctx context.Context, id snowflake.ID) (*domain.Category, error) {
	category, err := s.repo.FindByID(ctx, id,
		option.WithPreload("Business", "Business.User", "Business.MessagingContact"),
	)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}
