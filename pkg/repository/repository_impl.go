package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/menuku/menuku/pkg/db/option"
	"gorm.io/gorm"
)

type store[T any] struct {
	db *gorm.DB
}

func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (r *store[T]) WithTrx(tx *gorm.DB) Repository[T] {
	return &store[T]{db: tx}
}

func (r *store[T]) Find(ctx context.Context, opts ...option.QueryOption) ([]*T, error) {
	var result []*T
	err := r.buildQuery(ctx, opts...).Find(&result).Error
	return result, err
}

func (r *store[T]) FindOne(ctx context.Context, opts ...option.QueryOption) (*T, error) {
	var result T
	err := r.buildQuery(ctx, opts...).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *store[T]) FindByID(ctx context.Context, id snowflake.ID, opts ...option.QueryOption) (*T, error) {
	opts = append(opts, option.WithFilter("id", int64(id)))
	return r.FindOne(ctx, opts...)
}

func (r *store[T]) Count(ctx context.Context, opts ...option.QueryOption) (int64, error) {
	var count int64
	err := r.buildQuery(ctx, opts...).Model(new(T)).Count(&count).Error
	return count, err
}

func (r *store[T]) Create(ctx context.Context, resource *T) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *store[T]) BatchCreate(ctx context.Context, resources []*T) error {
	if len(resources) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(resources).Error
}

// Save persists the full document: callers reload, assign, then save.
func (r *store[T]) Save(ctx context.Context, resource *T) error {
	return r.db.WithContext(ctx).Save(resource).Error
}

func (r *store[T]) Delete(ctx context.Context, id snowflake.ID) error {
	var dummy T
	return r.db.WithContext(ctx).Where("id = ?", int64(id)).Delete(&dummy).Error
}

func (r *store[T]) buildQuery(ctx context.Context, opts ...option.QueryOption) *gorm.DB {
	stmt := r.db.WithContext(ctx).Model(new(T))
	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}
	return stmt
}
