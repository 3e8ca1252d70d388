package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	businessdomain "github.com/menuku/menuku/internal/business/domain"
	categorydomain "github.com/menuku/menuku/internal/category/domain"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Item struct {
	ID          snowflake.ID                `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CategoryID  snowflake.ID                `json:"categoryId" gorm:"not null;index"`
	Category    *categorydomain.Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	BusinessID  snowflake.ID                `json:"businessId" gorm:"not null;index"`
	Business    *businessdomain.Business    `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
	Name        string                      `json:"name" gorm:"type:text;not null"`
	Description string                      `json:"description,omitempty" gorm:"type:text"`
	Price       float64                     `json:"price" gorm:"not null;default:0"`
	Image       string                      `json:"image,omitempty" gorm:"type:text"`
	Meta        datatypes.JSONMap           `json:"meta,omitempty" gorm:"type:jsonb"`
	Tags        datatypes.JSONSlice[string] `json:"tags,omitempty" gorm:"type:jsonb"`
	Status      string                      `json:"status" gorm:"type:text;not null;default:active"`
	CreatedAt   time.Time                   `json:"createdAt" gorm:"not null"`
	UpdatedAt   time.Time                   `json:"updatedAt" gorm:"not null"`
}

func (Item) TableName() string { return "items" }

func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}
