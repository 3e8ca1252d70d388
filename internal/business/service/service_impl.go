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
	"github.com/menuku/menuku/internal/business/domain"
	contactdomain "github.com/menuku/menuku/internal/contact/domain"
	"github.com/menuku/menuku/internal/events"
	"github.com/menuku/menuku/pkg/db/option"
	"github.com/menuku/menuku/pkg/repository"
)

var sortable = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"location":   true,
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     repository.Repository[domain.Business]
	Contacts repository.Repository[contactdomain.MessagingContact]
	Notifier events.Notifier
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     repository.Repository[domain.Business]
	contacts repository.Repository[contactdomain.MessagingContact]
	notifier events.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("business.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		contacts: p.Contacts,
		notifier: p.Notifier,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Business, error) {
	actor, ok := actorctx.FromContext(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusPending
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	contactID, err := s.resolveContact(ctx, req.MessagingContactID, actor)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	business := &domain.Business{
		ID:                 s.genID.Generate(),
		UserID:             actor.UserID,
		MessagingContactID: contactID,
		Name:               name,
		Description:        strings.TrimSpace(req.Description),
		Location:           strings.TrimSpace(req.Location),
		Logo:               strings.TrimSpace(req.Logo),
		Image:              strings.TrimSpace(req.Image),
		Status:             status,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, business); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, business.ID,
		option.WithPreload("User", "User.Role", "MessagingContact"),
	)
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast("businessCreated", created)
	return created, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResult, error) {
	page := option.ParsePage(req.Page)
	limit := option.ParseLimit(req.Limit)

	filters := []option.QueryOption{
		option.WithSearch(req.Search, "name", "description", "location"),
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		filters = append(filters, option.WithFilter("status", status))
	}

	// Businesses are publicly listable; a userId filter still requires the
	// caller to own that scope unless they are admin.
	if raw := strings.TrimSpace(req.UserID); raw != "" {
		userID, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		if actor, ok := actorctx.FromContext(ctx); ok && !actor.Owns(userID) {
			return nil, domain.ErrForbidden
		}
		filters = append(filters, option.WithFilter("user_id", int64(userID)))
	}

	total, err := s.repo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	opts := append(filters,
		option.WithSortBy(req.SortBy, req.OrderBy, sortable),
		option.WithPage(page, limit),
		option.WithPreload("MessagingContact"),
	)
	businesses, err := s.repo.Find(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &domain.ListResult{Total: total, Page: page, Limit: limit, Data: businesses}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Business, error) {
	businessID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return s.loadExpanded(ctx, businessID)
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Business, error) {
	business, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	actor, ok := actorctx.FromContext(ctx)
	if !ok || !actor.Owns(business.UserID) {
		return nil, domain.ErrForbidden
	}

	if req.MessagingContactID != nil {
		contactID, err := s.resolveContact(ctx, *req.MessagingContactID, actor)
		if err != nil {
			return nil, err
		}
		business.MessagingContactID = contactID
		business.MessagingContact = nil
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		business.Name = name
	}
	if req.Description != nil {
		business.Description = strings.TrimSpace(*req.Description)
	}
	if req.Location != nil {
		business.Location = strings.TrimSpace(*req.Location)
	}
	if req.Logo != nil {
		business.Logo = strings.TrimSpace(*req.Logo)
	}
	if req.Image != nil {
		business.Image = strings.TrimSpace(*req.Image)
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		business.Status = *req.Status
	}

	business.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, business); err != nil {
		return nil, err
	}

	updated, err := s.loadExpanded(ctx, business.ID)
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast("businessUpdated", updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	business, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	actor, ok := actorctx.FromContext(ctx)
	if !ok || !actor.Owns(business.UserID) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, business.ID); err != nil {
		return err
	}

	s.notifier.Broadcast("businessDeleted", business.ID.String())
	return nil
}

func (s *Service) Resolve(ctx context.Context, id snowflake.ID) (*domain.Business, error) {
	business, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	return business, nil
}

// resolveContact validates the referenced messaging contact exists and
// belongs to the acting user.
func (s *Service) resolveContact(ctx context.Context, raw string, actor actorctx.Actor) (snowflake.ID, error) {
	contactID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidContactID
	}
	contact, err := s.contacts.FindByID(ctx, contactID)
	if err != nil {
		return 0, err
	}
	if contact == nil {
		return 0, contactdomain.ErrNotFound
	}
	if !actor.Owns(contact.UserID) {
		return 0, domain.ErrForbidden
	}
	return contactID, nil
}

func (s *Service) loadExpanded(ctx context.Context, id snowflake.ID) (*domain.Business, error) {
	business, err := s.repo.FindByID(ctx, id,
		option.WithPreload("User", "User.Role", "MessagingContact"),
	)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	return business, nil
}
