package model

import "github.com/shopspring/decimal"

// Product is a catalog entry owned by the product service. ImagePath holds
// the locally mirrored copy of an upstream image ("/pos_product_images/..."),
// never the original URL.
type Product struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"not null"`
	ProductTypeID uint   `gorm:"not null;index"`
	Category      string `gorm:"not null"`
	Description   *string
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImagePath     *string
	Sizes         []Size `gorm:"foreignKey:ProductID"`
}

// Size is a named size variant of a product; (ProductID, Name) is unique
// case-insensitively.
type Size struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`
}

// ProductType classifies products; products must reference an existing type
// by name at creation time.
type ProductType struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	SizeRequired bool   `gorm:"not null;default:false"`
}
