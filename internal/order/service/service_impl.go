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
	"github.com/menuku/menuku/internal/events"
	itemdomain "github.com/menuku/menuku/internal/item/domain"
	"github.com/menuku/menuku/internal/order/domain"
	"github.com/menuku/menuku/pkg/db/option"
	"github.com/menuku/menuku/pkg/repository"
)

var sortable = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"total":      true,
}

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       repository.Repository[domain.Order]
	Lines      repository.Repository[domain.OrderLine]
	Items      repository.Repository[itemdomain.Item]
	Businesses businessdomain.Service
	Notifier   events.Notifier
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	repo       repository.Repository[domain.Order]
	lines      repository.Repository[domain.OrderLine]
	items      repository.Repository[itemdomain.Item]
	businesses businessdomain.Service
	notifier   events.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("order.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		lines:      p.Lines,
		items:      p.Items,
		businesses: p.Businesses,
		notifier:   p.Notifier,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Order, error) {
	businessID, err := snowflake.ParseString(strings.TrimSpace(req.BusinessID))
	if err != nil {
		return nil, domain.ErrInvalidBusinessID
	}
	if _, err := s.businesses.Resolve(ctx, businessID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyLines
	}

	orderID := s.genID.Generate()
	lines := make([]*domain.OrderLine, 0, len(req.Items))
	total := 0.0
	for _, line := range req.Items {
		itemID, err := snowflake.ParseString(strings.TrimSpace(line.ItemID))
		if err != nil {
			return nil, domain.ErrInvalidLine
		}
		if line.Quantity <= 0 || line.UnitPrice < 0 {
			return nil, domain.ErrInvalidLine
		}
		item, err := s.items.FindByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, itemdomain.ErrNotFound
		}

		lineTotal := line.UnitPrice * float64(line.Quantity)
		total += lineTotal
		lines = append(lines, &domain.OrderLine{
			ID:        s.genID.Generate(),
			OrderID:   orderID,
			ItemID:    itemID,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Total:     lineTotal,
		})
	}

	// Lines first, then the order. The two writes are not atomic; a crash in
	// between can orphan line records.
	if err := s.lines.BatchCreate(ctx, lines); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:         orderID,
		BusinessID: businessID,
		Name:       name,
		Phone:      strings.TrimSpace(req.Phone),
		Address:    strings.TrimSpace(req.Address),
		Total:      total,
		Note:       strings.TrimSpace(req.Note),
		Status:     domain.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	created, err := s.loadExpanded(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast("orderCreated", created)
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
		option.WithSearch(req.Search, "name", "phone", "address"),
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		filters = append(filters, option.WithFilter("status", status))
	}
	if raw := strings.TrimSpace(req.BusinessID); raw != "" {
		businessID, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidBusinessID
		}
		if err := s.authorize(ctx, businessID); err != nil {
			return nil, err
		}
		filters = append(filters, option.WithFilter("business_id", int64(businessID)))
	} else if !actor.IsAdmin() {
		filters = append(filters, option.WithWhere(
			"business_id IN (SELECT id FROM businesses WHERE user_id = ?)",
			int64(actor.UserID),
		))
	}

	total, err := s.repo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	opts := append(filters,
		option.WithSortBy(req.SortBy, req.OrderBy, sortable),
		option.WithPage(page, limit),
		option.WithPreload("Business", "Lines"),
	)
	orders, err := s.repo.Find(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &domain.ListResult{Total: total, Page: page, Limit: limit, Data: orders}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	order, err := s.loadExpanded(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, order.BusinessID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	for _, line := range order.Lines {
		if err := s.lines.Delete(ctx, line.ID); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(ctx, order.ID); err != nil {
		return err
	}

	s.notifier.Broadcast("orderDeleted", order.ID.String())
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

func (s *Service) loadExpanded(ctx context.Context, id snowflake.ID) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id,
		option.WithPreload("Business", "Business.User", "Lines", "Lines.Item"),
	)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}
