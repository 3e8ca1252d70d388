package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	AnalysisBasic    = "basic"
	AnalysisAdvanced = "advanced"
)

type SubscriptionPlan struct {
	ID           snowflake.ID                `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name         string                      `json:"name" gorm:"type:text;not null;uniqueIndex:ux_plans_name"`
	Slug         string                      `json:"slug" gorm:"type:text;not null;uniqueIndex:ux_plans_slug"`
	Price        float64                     `json:"price" gorm:"not null;default:0"`
	Duration     int                         `json:"duration" gorm:"not null"`
	Features     datatypes.JSONSlice[string] `json:"features,omitempty" gorm:"type:jsonb"`
	MaxBusiness  int                         `json:"maxBusiness" gorm:"not null;default:1"`
	MaxCategory  int                         `json:"maxCategory" gorm:"not null;default:1"`
	MaxItem      int                         `json:"maxItem" gorm:"not null;default:1"`
	AnalysisType string                      `json:"analysisType" gorm:"type:text;not null;default:basic"`
	Status       string                      `json:"status" gorm:"type:text;not null;default:active"`
	CreatedAt    time.Time                   `json:"createdAt" gorm:"not null"`
	UpdatedAt    time.Time                   `json:"updatedAt" gorm:"not null"`
}

func (SubscriptionPlan) TableName() string { return "subscription_plans" }

func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}

func ValidAnalysisType(analysisType string) bool {
	return analysisType == AnalysisBasic || analysisType == AnalysisAdvanced
}
