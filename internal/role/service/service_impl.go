package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/menuku/menuku/internal/events"
	"github.com/menuku/menuku/internal/role/domain"
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

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     repository.Repository[domain.Role]
	Notifier events.Notifier
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     repository.Repository[domain.Role]
	notifier events.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("role.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		notifier: p.Notifier,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Role, error) {
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
	taken, err := s.nameTaken(ctx, name, slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrNameTaken
	}

	now := time.Now().UTC()
	role := &domain.Role{
		ID:          s.genID.Generate(),
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(req.Description),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, role); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}

	s.notifier.Broadcast("roleCreated", role)
	return role, nil
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

	total, err := s.repo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	opts := append(filters,
		option.WithSortBy(req.SortBy, req.OrderBy, sortable),
		option.WithPage(page, limit),
	)
	roles, err := s.repo.Find(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &domain.ListResult{Total: total, Page: page, Limit: limit, Data: roles}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Role, error) {
	roleID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	role, err := s.repo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	return role, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Role, error) {
	role, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		slug := slugify.Make(name)
		taken, err := s.nameTaken(ctx, name, slug, role.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrNameTaken
		}
		role.Name = name
		role.Slug = slug
	}
	if req.Description != nil {
		role.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		role.Status = *req.Status
	}

	role.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, role); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}

	s.notifier.Broadcast("roleUpdated", role)
	return role, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	role, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, role.ID); err != nil {
		return err
	}

	s.notifier.Broadcast("roleDeleted", role.ID.String())
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
