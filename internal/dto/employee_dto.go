package dto

import (
	"mime/multipart"
	"time"
)

// CreateEmployeeInput carries the parsed multipart form for employee
// creation. Image stays a file header so the service decides whether the
// write sticks before the bytes are persisted.
type CreateEmployeeInput struct {
	FullName     string
	Username     string
	Password     string
	UserRole     string
	EmailAddress string
	PhoneNumber  *string
	HireDate     *time.Time
	Image        *multipart.FileHeader
}

// UpdateEmployeeInput is the partial-update variant: nil means "leave as is".
// PhoneNumber distinguishes nil (untouched) from empty (clear the value).
type UpdateEmployeeInput struct {
	FullName     *string
	Username     *string
	Password     *string
	UserRole     *string
	EmailAddress *string
	PhoneNumber  *string
	HireDate     *time.Time
	Image        *multipart.FileHeader
}

// EmployeeResponse mirrors the shape served by list-employee-accounts.
type EmployeeResponse struct {
	UserID       uint    `json:"userID"`
	FullName     string  `json:"fullName"`
	Username     *string `json:"username"`
	UserRole     string  `json:"userRole"`
	CreatedAt    *string `json:"createdAt"`
	EmailAddress string  `json:"emailAddress"`
	UploadImage  *string `json:"uploadImage"`
	PhoneNumber  *string `json:"phoneNumber"`
	HireDate     *string `json:"hireDate"`
}

// MessageResponse is the ack envelope used by the form-based endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
