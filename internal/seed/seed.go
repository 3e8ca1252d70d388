// Package seed bootstraps the records a fresh deployment needs: the two
// built-in roles and a default admin account.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	authdomain "github.com/menuku/menuku/internal/auth/domain"
	"github.com/menuku/menuku/internal/password"
	roledomain "github.com/menuku/menuku/internal/role/domain"
)

const (
	AdminRoleName = "Admin"
	AdminRoleSlug = "admin"
	UserRoleName  = "User"
	UserRoleSlug  = "user"

	defaultAdminName     = "Administrator"
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@menuku.local"
	defaultAdminPassword = "changeme123"
)

func EnsureDefaults(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		adminRole, err := ensureRole(ctx, tx, node, AdminRoleName, AdminRoleSlug)
		if err != nil {
			return err
		}
		if _, err := ensureRole(ctx, tx, node, UserRoleName, UserRoleSlug); err != nil {
			return err
		}
		return ensureAdminUser(ctx, tx, node, adminRole.ID)
	})
}

func ensureRole(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name, slug string) (*roledomain.Role, error) {
	var role roledomain.Role
	err := tx.WithContext(ctx).Where("slug = ?", slug).First(&role).Error
	if err == nil {
		return &role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	role = roledomain.Role{
		ID:        node.Generate(),
		Name:      name,
		Slug:      slug,
		Status:    roledomain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func ensureAdminUser(ctx context.Context, tx *gorm.DB, node *snowflake.Node, roleID snowflake.ID) error {
	var user authdomain.User
	err := tx.WithContext(ctx).Where("username = ?", defaultAdminUsername).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := password.Hash(defaultAdminPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user = authdomain.User{
		ID:           node.Generate(),
		Name:         defaultAdminName,
		Username:     defaultAdminUsername,
		Email:        defaultAdminEmail,
		PasswordHash: hash,
		RoleID:       roleID,
		Status:       authdomain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return tx.WithContext(ctx).Create(&user).Error
}
