package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"

	authdomain "github.com/menuku/menuku/internal/auth/domain"
	plandomain "github.com/menuku/menuku/internal/plan/domain"
)

const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
)

type UserSubscriptionPlan struct {
	ID                 snowflake.ID                 `json:"id" gorm:"primaryKey;autoIncrement:false"`
	UserID             snowflake.ID                 `json:"userId" gorm:"not null;index"`
	User               *authdomain.User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	SubscriptionPlanID snowflake.ID                 `json:"subscriptionPlanId" gorm:"not null;index"`
	SubscriptionPlan   *plandomain.SubscriptionPlan `json:"subscriptionPlan,omitempty" gorm:"foreignKey:SubscriptionPlanID"`
	StartDate          time.Time                    `json:"startDate" gorm:"not null"`
	EndDate            time.Time                    `json:"endDate" gorm:"not null"`
	Status             string                       `json:"status" gorm:"type:text;not null;default:active"`
	CreatedAt          time.Time                    `json:"createdAt" gorm:"not null"`
	UpdatedAt          time.Time                    `json:"updatedAt" gorm:"not null"`
}

func (UserSubscriptionPlan) TableName() string { return "user_subscription_plans" }

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusExpired, StatusCancelled:
		return true
	}
	return false
}
