package dto

import "github.com/shopspring/decimal"

// ProductRequest is shared by create and update. ProductImage is a full HTTP
// URL on an upstream server; the service mirrors it locally and stores the
// local path instead.
type ProductRequest struct {
	ProductName        string          `json:"ProductName" validate:"required"`
	ProductTypeName    string          `json:"ProductTypeName" validate:"required"`
	ProductCategory    string          `json:"ProductCategory" validate:"required"`
	ProductDescription *string         `json:"ProductDescription"`
	ProductPrice       decimal.Decimal `json:"ProductPrice" validate:"min=0"`
	ProductImage       *string         `json:"ProductImage"`
	ProductSize        *string         `json:"ProductSize"`
}

// ProductResponse is the write-path response; ProductImage is the
// POS-served URL ("/static/pos_product_images/...") or null.
type ProductResponse struct {
	ProductID          uint            `json:"ProductID"`
	ProductName        string          `json:"ProductName"`
	ProductTypeID      uint            `json:"ProductTypeID"`
	ProductCategory    string          `json:"ProductCategory"`
	ProductDescription *string         `json:"ProductDescription"`
	ProductPrice       decimal.Decimal `json:"ProductPrice"`
	ProductImage       *string         `json:"ProductImage"`
	ProductSize        *string         `json:"ProductSize"`
}

// ProductListItem is the read-path shape with the joined type name and the
// full size-name list.
type ProductListItem struct {
	ProductID          uint            `json:"ProductID"`
	ProductName        string          `json:"ProductName"`
	ProductTypeID      uint            `json:"ProductTypeID"`
	ProductTypeName    string          `json:"ProductTypeName"`
	ProductCategory    string          `json:"ProductCategory"`
	ProductDescription *string         `json:"ProductDescription"`
	ProductPrice       decimal.Decimal `json:"ProductPrice"`
	ProductImage       *string         `json:"ProductImage"`
	ProductSizes       []string        `json:"ProductSizes"`
}

type SizeRequest struct {
	SizeName string `json:"SizeName" validate:"required"`
}

type AddSizeByNameRequest struct {
	ProductName string `json:"ProductName" validate:"required"`
	SizeName    string `json:"SizeName" validate:"required"`
}

type SizeResponse struct {
	SizeID    uint   `json:"SizeID"`
	ProductID uint   `json:"ProductID"`
	SizeName  string `json:"SizeName"`
}

type ProductTypeRequest struct {
	ProductTypeName string `json:"productTypeName" validate:"required"`
	SizeRequired    bool   `json:"SizeRequired"`
}

type ProductTypeResponse struct {
	ProductTypeID   uint   `json:"productTypeID"`
	ProductTypeName string `json:"productTypeName"`
	SizeRequired    bool   `json:"SizeRequired"`
}
