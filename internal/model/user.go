package model

import "time"

// Role values accepted across the services.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// CashierUsername is the sentinel username shared by every cashier account.
// Cashiers log in with a 6-digit passcode instead of a personal username, so
// the username column is not unique for them.
const CashierUsername = "cashier"

// User stores back-office accounts. Deletion is a soft delete: Disabled is
// set and the row retained, which also invalidates already-issued tokens on
// their next use (identity is re-fetched per request).
type User struct {
	ID           uint    `gorm:"primaryKey"`
	FullName     string  `gorm:"not null"`
	Username     *string `gorm:"index"`
	PasswordHash string  `gorm:"not null"`
	Role         string  `gorm:"type:varchar(20);not null"`
	Disabled     bool    `gorm:"not null;default:false"`
	Email        string  `gorm:"not null"`
	Phone        *string
	HireDate     *time.Time
	// ImageFile is the stored filename of the uploaded employee photo,
	// relative to the upload directory.
	ImageFile *string
	CreatedAt time.Time
}
