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
	"github.com/menuku/menuku/internal/contact/domain"
	"github.com/menuku/menuku/internal/events"
	"github.com/menuku/menuku/pkg/db/option"
	"github.com/menuku/menuku/pkg/repository"
)

var sortable = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"phone_number": true,
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     repository.Repository[domain.MessagingContact]
	Notifier events.Notifier
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     repository.Repository[domain.MessagingContact]
	notifier events.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("contact.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		notifier: p.Notifier,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.MessagingContact, error) {
	actor, ok := actorctx.FromContext(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}

	phone := strings.TrimSpace(req.PhoneNumber)
	if phone == "" {
		return nil, domain.ErrInvalidPhone
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusActive
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidState
	}

	now := time.Now().UTC()
	contact := &domain.MessagingContact{
		ID:          s.genID.Generate(),
		UserID:      actor.UserID,
		Name:        strings.TrimSpace(req.Name),
		Username:    strings.TrimSpace(req.Username),
		PhoneNumber: phone,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, contact.ID, option.WithPreload("User", "User.Role"))
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast("messagingContactCreated", created)
	return created, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResult, error) {
	actor, ok := actorctx.FromContext(ctx)
	if !ok {
		return nil, domain.ErrForbidden
	}

	page := option.ParsePage(req.Page)
	limit := option.ParseLimit(req.Limit)

	filters := []option.QueryOption{
		option.WithSearch(req.Search, "name", "username", "phone_number"),
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		filters = append(filters, option.WithFilter("status", status))
	}

	// Non-admins only ever see their own contacts.
	if raw := strings.TrimSpace(req.UserID); raw != "" {
		userID, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidID
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
		option.WithPreload("User"),
	)
	contacts, err := s.repo.Find(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &domain.ListResult{Total: total, Page: page, Limit: limit, Data: contacts}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.MessagingContact, error) {
	contact, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	actor, ok := actorctx.FromContext(ctx)
	if !ok || !actor.Owns(contact.UserID) {
		return nil, domain.ErrForbidden
	}
	return contact, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.MessagingContact, error) {
	contact, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		contact.Name = strings.TrimSpace(*req.Name)
	}
	if req.Username != nil {
		contact.Username = strings.TrimSpace(*req.Username)
	}
	if req.PhoneNumber != nil {
		phone := strings.TrimSpace(*req.PhoneNumber)
		if phone == "" {
			return nil, domain.ErrInvalidPhone
		}
		contact.PhoneNumber = phone
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			return nil, domain.ErrInvalidState
		}
		contact.Status = *req.Status
	}

	contact.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, contact); err != nil {
		return nil, err
	}

	s.notifier.Broadcast("messagingContactUpdated", contact)
	return contact, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	contact, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, contact.ID); err != nil {
		return err
	}

	s.notifier.Broadcast("messagingContactDeleted", contact.ID.String())
	return nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.MessagingContact, error) {
	contactID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	contact, err := s.repo.FindByID(ctx, contactID, option.WithPreload("User", "User.Role"))
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	return contact, nil
}
