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

	"github.com/menuku/menuku/internal/events"
	"github.com/menuku/menuku/internal/plan/domain"
	"github.com/menuku/menuku/pkg/db"
	"github.com/menuku/menuku/pkg/db/option"
	"github.com/menuku/menuku/pkg/repository"
	"github.com/menuku/menuku/pkg/slugify"
)

var sortable = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"price":      true,
	"duration":   true,
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     repository.Repository[domain.SubscriptionPlan]
	Notifier events.Notifier
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     repository.Repository[domain.SubscriptionPlan]
	notifier events.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("plan.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		notifier: p.Notifier,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.SubscriptionPlan, error) {
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
	if req.Duration <= 0 {
		return nil, domain.ErrInvalidDuration
	}
	maxBusiness := intOrDefault(req.MaxBusiness, 1)
	maxCategory := intOrDefault(req.MaxCategory, 1)
	maxItem := intOrDefault(req.MaxItem, 1)
	if maxBusiness < 1 || maxCategory < 1 || maxItem < 1 {
		return nil, domain.ErrInvalidLimit
	}
	analysisType := strings.TrimSpace(req.AnalysisType)
	if analysisType == "" {
		analysisType = domain.AnalysisBasic
	}
	if !domain.ValidAnalysisType(analysisType) {
		return nil, domain.ErrInvalidAnalysis
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusActive
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	slug := slugify.Make(name)
	taken, err := s.nameTaken(ctx, name, slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrNameTaken
	}

	now := time.Now().UTC()
	plan := &domain.SubscriptionPlan{
		ID:           s.genID.Generate(),
		Name:         name,
		Slug:         slug,
		Price:        price,
		Duration:     req.Duration,
		MaxBusiness:  maxBusiness,
		MaxCategory:  maxCategory,
		MaxItem:      maxItem,
		AnalysisType: analysisType,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Features != nil {
		plan.Features = datatypes.NewJSONSlice(req.Features)
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}

	s.notifier.Broadcast("subscriptionPlanCreated", plan)
	return plan, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResult, error) {
	page := option.ParsePage(req.Page)
	limit := option.ParseLimit(req.Limit)

	filters := []option.QueryOption{
		option.WithSearch(req.Search, "name", "slug"),
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		filters = append(filters, option.WithFilter("status", status))
	}

	total, err := s.repo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	opts := append(filters,
		option.WithSortBy(req.SortBy, req.OrderBy, sortable),
		option.WithPage(page, limit),
	)
	plans, err := s.repo.Find(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &domain.ListResult{Total: total, Page: page, Limit: limit, Data: plans}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.SubscriptionPlan, error) {
	planID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	plan, err := s.repo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	return plan, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.SubscriptionPlan, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		slug := slugify.Make(name)
		taken, err := s.nameTaken(ctx, name, slug, plan.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrNameTaken
		}
		plan.Name = name
		plan.Slug = slug
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, domain.ErrInvalidPrice
		}
		plan.Price = *req.Price
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return nil, domain.ErrInvalidDuration
		}
		plan.Duration = *req.Duration
	}
	if req.Features != nil {
		plan.Features = datatypes.NewJSONSlice(req.Features)
	}
	if req.MaxBusiness != nil {
		if *req.MaxBusiness < 1 {
			return nil, domain.ErrInvalidLimit
		}
		plan.MaxBusiness = *req.MaxBusiness
	}
	if req.MaxCategory != nil {
		if *req.MaxCategory < 1 {
			return nil, domain.ErrInvalidLimit
		}
		plan.MaxCategory = *req.MaxCategory
	}
	if req.MaxItem != nil {
		if *req.MaxItem < 1 {
			return nil, domain.ErrInvalidLimit
		}
		plan.MaxItem = *req.MaxItem
	}
	if req.AnalysisType != nil {
		if !domain.ValidAnalysisType(*req.AnalysisType) {
			return nil, domain.ErrInvalidAnalysis
		}
		plan.AnalysisType = *req.AnalysisType
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		plan.Status = *req.Status
	}

	plan.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, plan); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}

	s.notifier.Broadcast("subscriptionPlanUpdated", plan)
	return plan, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, plan.ID); err != nil {
		return err
	}

	s.notifier.Broadcast("subscriptionPlanDeleted", plan.ID.String())
	return nil
}

func (s *Service) nameTaken(ctx context.Context, name, slug string, selfID snowflake.ID) (bool, error) {
	existing, err := s.repo.FindOne(ctx, option.WithFilter("LOWER(name)", strings.ToLower(name)))
	if err != nil {
		return false, err
	}
	if existing != nil && existing.ID != selfID {
		return true, nil
	}
	existing, err = s.repo.FindOne(ctx, option.WithFilter("LOWER(slug)", strings.ToLower(slug)))
	if err != nil {
		return false, err
	}
	return existing != nil && existing.ID != selfID, nil
}

func intOrDefault(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}
