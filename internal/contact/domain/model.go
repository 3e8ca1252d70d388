package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"

	authdomain "github.com/menuku/menuku/internal/auth/domain"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// MessagingContact is a stored chat-platform identity attached to a user.
// It is never dialed; businesses reference it as their public contact.
type MessagingContact struct {
	ID          snowflake.ID     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	UserID      snowflake.ID     `json:"userId" gorm:"not null;index"`
	User        *authdomain.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name        string           `json:"name" gorm:"type:text"`
	Username    string           `json:"username" gorm:"type:text"`
	PhoneNumber string           `json:"phoneNumber" gorm:"type:text;not null"`
	Status      string           `json:"status" gorm:"type:text;not null;default:active"`
	CreatedAt   time.Time        `json:"createdAt" gorm:"not null"`
	UpdatedAt   time.Time        `json:"updatedAt" gorm:"not null"`
}

func (MessagingContact) TableName() string { return "messaging_contacts" }

func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}
