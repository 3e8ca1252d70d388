package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"

	businessdomain "github.com/menuku/menuku/internal/business/domain"
	itemdomain "github.com/menuku/menuku/internal/item/domain"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusCompleted  = "completed"
	StatusCanceled   = "canceled"
)

type Order struct {
	ID         snowflake.ID             `json:"id" gorm:"primaryKey;autoIncrement:false"`
	BusinessID snowflake.ID             `json:"businessId" gorm:"not null;index"`
	Business   *businessdomain.Business `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
	Name       string                   `json:"name" gorm:"type:text;not null"`
	Phone      string                   `json:"phone,omitempty" gorm:"type:text"`
	Address    string                   `json:"address,omitempty" gorm:"type:text"`
	Lines      []OrderLine              `json:"items" gorm:"foreignKey:OrderID"`
	Total      float64                  `json:"total" gorm:"not null;default:0"`
	Note       string                   `json:"note,omitempty" gorm:"type:text"`
	Status     string                   `json:"status" gorm:"type:text;not null;default:pending"`
	CreatedAt  time.Time                `json:"createdAt" gorm:"not null"`
	UpdatedAt  time.Time                `json:"updatedAt" gorm:"not null"`
}

func (Order) TableName() string { return "orders" }

// OrderLine captures the item price at order time; totals are computed at
// creation and never recomputed on read.
type OrderLine struct {
	ID        snowflake.ID     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	OrderID   snowflake.ID     `json:"orderId" gorm:"not null;index"`
	ItemID    snowflake.ID     `json:"itemId" gorm:"not null;index"`
	Item      *itemdomain.Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	UnitPrice float64          `json:"unitPrice" gorm:"not null"`
	Quantity  int              `json:"quantity" gorm:"not null"`
	Total     float64          `json:"total" gorm:"not null"`
}

func (OrderLine) TableName() string { return "order_lines" }

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}
