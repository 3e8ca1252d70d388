package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Role struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name        string       `json:"name" gorm:"type:text;not null;uniqueIndex:ux_roles_name"`
	Slug        string       `json:"slug" gorm:"type:text;not null;uniqueIndex:ux_roles_slug"`
	Description string       `json:"description,omitempty" gorm:"type:text"`
	Status      string       `json:"status" gorm:"type:text;not null;default:active"`
	CreatedAt   time.Time    `json:"createdAt" gorm:"not null"`
	UpdatedAt   time.Time    `json:"updatedAt" gorm:"not null"`
}

func (Role) TableName() string { return "roles" }

func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}
