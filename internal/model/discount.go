package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discount is a percentage discount attached to a single product. Name
// uniqueness is case-insensitive and enforced by an expression index (see
// infra schema patches) in addition to the service pre-check.
type Discount struct {
	ID           uint            `gorm:"primaryKey"`
	Name         string          `gorm:"not null"`
	ProductID    uint            `gorm:"not null;index"`
	Percentage   decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	MinimumSpend *decimal.Decimal `gorm:"type:decimal(10,2)"`
	ValidFrom    time.Time       `gorm:"not null"`
	ValidTo      time.Time       `gorm:"not null"`
	// UserID is the owner resolved from the payload username at write time.
	UserID    uint   `gorm:"not null"`
	Status    string `gorm:"not null"`
	CreatedAt time.Time
}
