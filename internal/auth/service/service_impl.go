package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/menuku/menuku/internal/auth/domain"
	"github.com/menuku/menuku/internal/events"
	"github.com/menuku/menuku/internal/password"
	roledomain "github.com/menuku/menuku/internal/role/domain"
	"github.com/menuku/menuku/internal/token"
	"github.com/menuku/menuku/pkg/db"
	"github.com/menuku/menuku/pkg/db/option"
	"github.com/menuku/menuku/pkg/repository"
)

const defaultRoleSlug = "user"

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Users    repository.Repository[domain.User]
	Roles    repository.Repository[roledomain.Role]
	Issuer   *token.Issuer
	Notifier events.Notifier
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	users    repository.Repository[domain.User]
	roles    repository.Repository[roledomain.Role]
	issuer   *token.Issuer
	notifier events.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("auth.service"),
		genID:    p.GenID,
		users:    p.Users,
		roles:    p.Roles,
		issuer:   p.Issuer,
		notifier: p.Notifier,
	}
}

func (s *Service) Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if !domain.ValidUsername(username) {
		return nil, domain.ErrInvalidUsername
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !domain.ValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}
	if len(req.Password) < password.MinLength {
		return nil, domain.ErrWeakPassword
	}

	if err := s.checkUnique(ctx, username, email); err != nil {
		return nil, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.FindOne(ctx, option.WithFilter("slug", defaultRoleSlug))
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleMissing
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           s.genID.Generate(),
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
		RoleID:       role.ID,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, err
	}

	user.Role = role
	s.notifier.Broadcast("userCreated", user)
	return user, nil
}

func (s *Service) Signin(ctx context.Context, req domain.SigninRequest) (*domain.AuthResult, error) {
	identity := strings.ToLower(strings.TrimSpace(req.Identity))
	if identity == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindOne(ctx,
		option.WithFilter("username", identity),
		option.WithPreload("Role"),
	)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.users.FindOne(ctx,
			option.WithFilter("email", identity),
			option.WithPreload("Role"),
		)
		if err != nil {
			return nil, err
		}
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *Service) OAuth(ctx context.Context, req domain.OAuthRequest) (*domain.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !domain.ValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}

	user, err := s.users.FindOne(ctx,
		option.WithFilter("email", email),
		option.WithPreload("Role"),
	)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return s.issue(user)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	username, err := s.deriveUsername(ctx, name, email)
	if err != nil {
		return nil, err
	}

	hash, err := password.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}

	role, err := s.roles.FindOne(ctx, option.WithFilter("slug", defaultRoleSlug))
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleMissing
	}

	now := time.Now().UTC()
	user = &domain.User{
		ID:           s.genID.Generate(),
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	user.Role = role
	s.notifier.Broadcast("userCreated", user)
	return s.issue(user)
}

func (s *Service) Resolve(ctx context.Context, userID snowflake.ID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID, option.WithPreload("Role"))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *Service) issue(user *domain.User) (*domain.AuthResult, error) {
	signed, err := s.issuer.Sign(user.ID)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{Token: signed, User: user}, nil
}

func (s *Service) checkUnique(ctx context.Context, username, email string) error {
	existing, err := s.users.FindOne(ctx, option.WithFilter("username", username))
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrUsernameTaken
	}
	existing, err = s.users.FindOne(ctx, option.WithFilter("email", email))
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailTaken
	}
	return nil
}

// deriveUsername slugifies the display name (falling back to the email local
// part) and appends a numeric suffix until the candidate is free.
func (s *Service) deriveUsername(ctx context.Context, name, email string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = slug.Make(strings.SplitN(email, "@", 2)[0])
	}
	if base == "" {
		base = "user"
	}

	candidate := base
	for i := 1; ; i++ {
		existing, err := s.users.FindOne(ctx, option.WithFilter("username", candidate))
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
