// Package repository provides the generic store every entity service is built on.
package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/menuku/menuku/pkg/db/option"
	"gorm.io/gorm"
)

type Repository[T any] interface {
	Find(ctx context.Context, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, opts ...option.QueryOption) (*T, error)
	FindByID(ctx context.Context, id snowflake.ID, opts ...option.QueryOption) (*T, error)
	Count(ctx context.Context, opts ...option.QueryOption) (int64, error)
	Create(ctx context.Context, resource *T) error
	BatchCreate(ctx context.Context, resources []*T) error
	Save(ctx context.Context, resource *T) error
	Delete(ctx context.Context, id snowflake.ID) error
	WithTrx(tx *gorm.DB) Repository[T]
}
