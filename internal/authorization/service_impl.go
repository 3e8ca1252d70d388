package authorization

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

var (
	ErrInvalidRole   = errors.New("invalid_role")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
	ErrForbidden     = errors.New("forbidden")
)

const (
	ObjectRole         = "role"
	ObjectUser         = "user"
	ObjectContact      = "contact"
	ObjectBusiness     = "business"
	ObjectCategory     = "category"
	ObjectItem         = "item"
	ObjectPlan         = "plan"
	ObjectSubscription = "subscription"
	ObjectOrder        = "order"
	ObjectDashboard    = "dashboard"
)

const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Service answers coarse role/object/action checks. Record-level ownership
// is enforced by the entity services after loading the record.
type Service interface {
	Authorize(ctx context.Context, roleSlug string, object string, action string) error
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	db       *gorm.DB
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		db:       p.DB,
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, roleSlug string, object string, action string) error {
	roleSlug = strings.TrimSpace(roleSlug)
	if roleSlug == "" {
		return ErrInvalidRole
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	subject := fmt.Sprintf("role:%s", strings.ToLower(roleSlug))
	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrForbidden
	}
	return nil
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	crudObjects := []string{
		ObjectContact,
		ObjectBusiness,
		ObjectCategory,
		ObjectItem,
		ObjectSubscription,
		ObjectOrder,
	}
	actions := []string{ActionView, ActionCreate, ActionUpdate, ActionDelete}

	policies := [][]string{
		// Regular users manage their own records; the services narrow these
		// grants to owned rows.
		{"role:user", ObjectUser, ActionView},
		{"role:user", ObjectUser, ActionUpdate},
		{"role:user", ObjectUser, ActionDelete},
		{"role:user", ObjectRole, ActionView},
		{"role:user", ObjectPlan, ActionView},
		{"role:user", ObjectDashboard, ActionView},

		// Admins additionally manage the shared catalogs.
		{"role:admin", ObjectRole, ActionCreate},
		{"role:admin", ObjectRole, ActionUpdate},
		{"role:admin", ObjectRole, ActionDelete},
		{"role:admin", ObjectPlan, ActionCreate},
		{"role:admin", ObjectPlan, ActionUpdate},
		{"role:admin", ObjectPlan, ActionDelete},
		{"role:admin", ObjectUser, ActionCreate},
	}
	for _, object := range crudObjects {
		for _, action := range actions {
			policies = append(policies, []string{"role:user", object, action})
		}
	}

	groupings := [][]string{
		{"role:admin", "role:user"},
	}

	for _, policy := range policies {
		has, err := enforcer.HasPolicy(policy[0], policy[1], policy[2])
		if err != nil {
			return err
		}
		if has {
			continue
		}
		if _, err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return err
		}
	}
	for _, grouping := range groupings {
		has, err := enforcer.HasGroupingPolicy(grouping[0], grouping[1])
		if err != nil {
			return err
		}
		if has {
			continue
		}
		if _, err := enforcer.AddGroupingPolicy(grouping[0], grouping[1]); err != nil {
			return err
		}
	}
	return nil
}

var Module = fx.Module("authorization",
	fx.Provide(
		NewEnforcer,
		NewService,
	),
)
