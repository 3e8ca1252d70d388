package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"

	authdomain "github.com/menuku/menuku/internal/auth/domain"
	contactdomain "github.com/menuku/menuku/internal/contact/domain"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
)

type Business struct {
	ID                 snowflake.ID                    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	UserID             snowflake.ID                    `json:"userId" gorm:"not null;index"`
	User               *authdomain.User                `json:"user,omitempty" gorm:"foreignKey:UserID"`
	MessagingContactID snowflake.ID                    `json:"messagingContactId" gorm:"not null;index"`
	MessagingContact   *contactdomain.MessagingContact `json:"messagingContact,omitempty" gorm:"foreignKey:MessagingContactID"`
	Name               string                          `json:"name" gorm:"type:text;not null"`
	Description        string                          `json:"description,omitempty" gorm:"type:text"`
	Location           string                          `json:"location,omitempty" gorm:"type:text"`
	Logo               string                          `json:"logo,omitempty" gorm:"type:text"`
	Image              string                          `json:"image,omitempty" gorm:"type:text"`
	Status             string                          `json:"status" gorm:"type:text;not null;default:pending"`
	CreatedAt          time.Time                       `json:"createdAt" gorm:"not null"`
	UpdatedAt          time.Time                       `json:"updatedAt" gorm:"not null"`
}

func (Business) TableName() string { return "businesses" }

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}
