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
	"github.com/menuku/menuku/internal/password"
	roledomain "github.com/menuku/menuku/internal/role/domain"
	"github.com/menuku/menuku/internal/user/domain"
	"github.com/menuku/menuku/pkg/db"
	"github.com/menuku/menuku/pkg/db/option"
	"github.com/menuku/menuku/pkg/repository"
)

var sortable = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"username":   true,
	"email":      true,
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Users    repository.Repository[authdomain.User]
	Roles    repository.Repository[roledomain.Role]
	Notifier events.Notifier
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	users    repository.Repository[authdomain.User]
	roles    repository.Repository[roledomain.Role]
	notifier events.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("user.service"),
		users:    p.Users,
		roles:    p.Roles,
		notifier: p.Notifier,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResult, error) {
	actor, ok := actorctx.FromContext(ctx)
	if !ok || !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	page := option.ParsePage(req.Page)
	limit := option.ParseLimit(req.Limit)

	filters := []option.QueryOption{
		option.WithSearch(req.Search, "name", "username", "email", "phone"),
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		filters = append(filters, option.WithFilter("status", status))
	}
	if raw := strings.TrimSpace(req.RoleID); raw != "" {
		roleID, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidRoleID
		}
		filters = append(filters, option.WithFilter("role_id", int64(roleID)))
	}

	total, err := s.users.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	opts := append(filters,
		option.WithSortBy(req.SortBy, req.OrderBy, sortable),
		option.WithPage(page, limit),
		option.WithPreload("Role"),
	)
	users, err := s.users.Find(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &domain.ListResult{Total: total, Page: page, Limit: limit, Data: users}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*authdomain.User, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	actor, ok := actorctx.FromContext(ctx)
	if !ok || !actor.Owns(user.ID) {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*authdomain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	actor, _ := actorctx.FromContext(ctx)

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, authdomain.ErrInvalidName
		}
		user.Name = name
	}
	if req.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*req.Username))
		if !authdomain.ValidUsername(username) {
			return nil, authdomain.ErrInvalidUsername
		}
		if username != user.Username {
			existing, err := s.users.FindOne(ctx, option.WithFilter("username", username))
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, authdomain.ErrUsernameTaken
			}
		}
		user.Username = username
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !authdomain.ValidEmail(email) {
			return nil, authdomain.ErrInvalidEmail
		}
		if email != user.Email {
			existing, err := s.users.FindOne(ctx, option.WithFilter("email", email))
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, authdomain.ErrEmailTaken
			}
		}
		user.Email = email
	}
	if req.Password != nil {
		if len(*req.Password) < password.MinLength {
			return nil, authdomain.ErrWeakPassword
		}
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Status != nil {
		if !authdomain.ValidStatus(*req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		user.Status = *req.Status
	}
	if req.RoleID != nil {
		// Only admins may reassign roles.
		if !actor.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		roleID, err := snowflake.ParseString(strings.TrimSpace(*req.RoleID))
		if err != nil {
			return nil, domain.ErrInvalidRoleID
		}
		role, err := s.roles.FindByID(ctx, roleID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, roledomain.ErrNotFound
		}
		user.RoleID = roleID
		user.Role = role
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Save(ctx, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, authdomain.ErrUsernameTaken
		}
		return nil, err
	}

	s.notifier.Broadcast("userUpdated", user)
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.notifier.Broadcast("userDeleted", user.ID.String())
	return nil
}

func (s *Service) load(ctx context.Context, id string) (*authdomain.User, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	user, err := s.users.FindByID(ctx, userID, option.WithPreload("Role"))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrNotFound
	}
	return user, nil
}
