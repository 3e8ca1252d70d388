package domain

import (
	"regexp"
	"time"

	"github.com/bwmarrin/snowflake"

	roledomain "github.com/menuku/menuku/internal/role/domain"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9_.-]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type User struct {
	ID           snowflake.ID     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name         string           `json:"name" gorm:"type:text;not null"`
	Username     string           `json:"username" gorm:"type:text;not null;uniqueIndex:ux_users_username"`
	Email        string           `json:"email" gorm:"type:text;not null;uniqueIndex:ux_users_email"`
	PasswordHash string           `json:"-" gorm:"column:password;type:text;not null"`
	Phone        string           `json:"phone,omitempty" gorm:"type:text"`
	RoleID       snowflake.ID     `json:"roleId" gorm:"not null;index"`
	Role         *roledomain.Role `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	Status       string           `json:"status" gorm:"type:text;not null;default:active"`
	CreatedAt    time.Time        `json:"createdAt" gorm:"not null"`
	UpdatedAt    time.Time        `json:"updatedAt" gorm:"not null"`
}

func (User) TableName() string { return "users" }

func ValidUsername(username string) bool { return usernamePattern.MatchString(username) }

func ValidEmail(email string) bool { return emailPattern.MatchString(email) }

func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}
