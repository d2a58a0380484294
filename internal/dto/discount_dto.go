package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountRequest is shared by create and full-body update. Product and
// owner are referenced by name and resolved to ids at write time.
type DiscountRequest struct {
	DiscountName    string           `json:"DiscountName" validate:"required"`
	ProductName     string           `json:"ProductName" validate:"required"`
	PercentageValue decimal.Decimal  `json:"PercentageValue" validate:"gt=0,lt=100"`
	MinimumSpend    *decimal.Decimal `json:"MinimumSpend" validate:"omitempty,min=0"`
	ValidFrom       time.Time        `json:"ValidFrom" validate:"required"`
	ValidTo         time.Time        `json:"ValidTo" validate:"required"`
	Username        string           `json:"Username" validate:"required"`
	Status          string           `json:"Status" validate:"required,min=1"`
}

type DiscountResponse struct {
	DiscountID      uint             `json:"DiscountID"`
	DiscountName    string           `json:"DiscountName"`
	ProductID       uint             `json:"ProductID"`
	ProductName     string           `json:"ProductName"`
	PercentageValue decimal.Decimal  `json:"PercentageValue"`
	MinimumSpend    *decimal.Decimal `json:"MinimumSpend"`
	ValidFrom       time.Time        `json:"ValidFrom"`
	ValidTo         time.Time        `json:"ValidTo"`
	UserID          uint             `json:"UserID"`
	Status          string           `json:"Status"`
	CreatedAt       time.Time        `json:"CreatedAt"`
}
