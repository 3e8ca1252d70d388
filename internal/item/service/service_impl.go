package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/menuku/menuku/internal/actorctx"
	businessdomain "github.com/menuku/menuku/internal/business/domain"
	categorydomain "github.com/menuku/menuku/internal/category/domain"
	"github.com/menuku/menuku/internal/events"
	"github.com/menuku/menuku/internal/item/domain"
	"github.com/menuku/menuku/pkg/db/option"
	"github.com/menuku/menuku/pkg/repository"
)

var sortable = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"price":      true,
}

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       repository.Repository[domain.Item]
	Categories repository.Repository[categorydomain.Category]
	Businesses businessdomain.Service
	Notifier   events.Notifier
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       repository.Repository[domain.Item]
	categories repository.Repository[categorydomain.Category]
	businesses businessdomain.Service
	notifier   events.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("item.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		categories: p.Categories,
		businesses: p.Businesses,
		notifier:   p.Notifier,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Item, error) {
	category, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	price := 0.0
	if req.Price != nil {
		price = *req.Price
	}
	if price < 0 {
		return nil, domain.ErrInvalidPrice
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusActive
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	item := &domain.Item{
		ID:          s.genID.Generate(),
		CategoryID:  category.ID,
		BusinessID:  category.BusinessID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       price,
		Image:       strings.TrimSpace(req.Image),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Meta != nil {
		item.Meta = datatypes.JSONMap(req.Meta)
	}
	if req.Tags != nil {
		item.Tags = datatypes.NewJSONSlice(dedupeTags(req.Tags))
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	created, err := s.loadExpanded(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast("itemCreated", created)
	return created, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResult, error) {
	page := option.ParsePage(req.Page)
	limit := option.ParseLimit(req.Limit)

	filters := []option.QueryOption{
		option.WithSearch(req.Search, "name", "description"),
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		filters = append(filters, option.WithFilter("status", status))
	}
	if raw := strings.TrimSpace(req.BusinessID); raw != "" {
		businessID, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		filters = append(filters, option.WithFilter("business_id", int64(businessID)))
	}
	if raw := strings.TrimSpace(req.CategoryID); raw != "" {
		categoryID, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidCategoryID
		}
		filters = append(filters, option.WithFilter("category_id", int64(categoryID)))
	}

	total, err := s.repo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	opts := append(filters,
		option.WithSortBy(req.SortBy, req.OrderBy, sortable),
		option.WithPage(page, limit),
		option.WithPreload("Category"),
	)
	items, err := s.repo.Find(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &domain.ListResult{Total: total, Page: page, Limit: limit, Data: items}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Item, error) {
	itemID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return s.loadExpanded(ctx, itemID)
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, item.BusinessID); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		category, err := s.resolveCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		// businessId always follows the category, never the client.
		item.CategoryID = category.ID
		item.BusinessID = category.BusinessID
		item.Category = nil
		item.Business = nil
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, domain.ErrInvalidPrice
		}
		item.Price = *req.Price
	}
	if req.Image != nil {
		item.Image = strings.TrimSpace(*req.Image)
	}
	if req.Meta != nil {
		item.Meta = datatypes.JSONMap(req.Meta)
	}
	if req.Tags != nil {
		item.Tags = datatypes.NewJSONSlice(dedupeTags(req.Tags))
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		item.Status = *req.Status
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}

	updated, err := s.loadExpanded(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast("itemUpdated", updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, item.BusinessID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return err
	}

	s.notifier.Broadcast("itemDeleted", item.ID.String())
	return nil
}

// resolveCategory loads the referenced category and checks the acting user
// owns its business.
func (s *Service) resolveCategory(ctx context.Context, raw string) (*categorydomain.Category, error) {
	categoryID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return nil, domain.ErrInvalidCategoryID
	}
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, categorydomain.ErrNotFound
	}
	if err := s.authorize(ctx, category.BusinessID); err != nil {
		return nil, err
	}
	return category, nil
}

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

func (s *Service) loadExpanded(ctx context.Context, id snowflake.ID) (*domain.Item, error) {
	item, err := s.repo.FindByID(ctx, id,
		option.WithPreload("Category", "Business", "Business.User"),
	)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
