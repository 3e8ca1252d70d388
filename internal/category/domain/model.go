package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"

	businessdomain "github.com/menuku/menuku/internal/business/domain"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Category struct {
	ID          snowflake.ID             `json:"id" gorm:"primaryKey;autoIncrement:false"`
	BusinessID  snowflake.ID             `json:"businessId" gorm:"not null;uniqueIndex:ux_categories_business_slug,priority:1"`
	Business    *businessdomain.Business `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
	Name        string                   `json:"name" gorm:"type:text;not null"`
	Slug        string                   `json:"slug" gorm:"type:text;not null;uniqueIndex:ux_categories_business_slug,priority:2"`
	Description string                   `json:"description,omitempty" gorm:"type:text"`
	Status      string                   `json:"status" gorm:"type:text;not null;default:active"`
	CreatedAt   time.Time                `json:"createdAt" gorm:"not null"`
	UpdatedAt   time.Time                `json:"updatedAt" gorm:"not null"`
}

func (Category) TableName() string { return "categories" }

func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}
