package services

import (
	"errors"
	"mime/multipart"

	"ecohaven_backend/internal/database"
	"ecohaven_backend/internal/repositories"
)

// --- Custom Service Errors ---
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrStaffNotFound      = errors.New("staff account not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrPhoneExists        = errors.New("phone number already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrStaffInactive      = errors.New("staff account is inactive")
	ErrForbidden          = errors.New("not allowed to access this resource")
	ErrTokenGeneration    = errors.New("failed to generate token")

	ErrEventNotFound   = errors.New("event not found")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidSchedule = errors.New("end date is before start date")

	ErrBookingNotFound      = errors.New("booking not found")
	ErrBookingAttended      = errors.New("attended booking cannot be cancelled")
	ErrBookingCancelled     = errors.New("booking is cancelled")
	ErrCheckInNotFound      = errors.New("check-in record not found")
	ErrAlreadyCheckedIn     = errors.New("already checked in")
	ErrCheckInCancelled     = errors.New("booking has been cancelled")
	ErrEventNotBookable     = errors.New("event has already ended")
	ErrQRCodeGeneration     = errors.New("failed to generate unique qr code")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrRefundNotFound       = errors.New("refund not found")
	ErrRefundDecided        = errors.New("refund has already been decided")
	ErrPaymentNotRefundable = errors.New("payment is not paid")

	ErrProductNotFound    = errors.New("product not found")
	ErrProductExists      = errors.New("product name already exists")
	ErrInsufficientPoints = errors.New("insufficient leaf points")
	ErrOutOfStock         = errors.New("product out of stock")
	ErrCollectNotFound    = errors.New("collect information not found")
	ErrCollectIDExhausted = errors.New("could not allocate a unique collect id")

	ErrVolunteerNotFound    = errors.New("volunteer not found")
	ErrFAQNotFound          = errors.New("faq not found")
	ErrReviewNotFound       = errors.New("review not found")
	ErrSubscriberNotFound   = errors.New("subscriber not found")
	ErrInvalidResetCode     = errors.New("invalid or expired reset code")
	ErrContactNotConfigured = errors.New("contact inbox is not configured")
)

// FileStore is the upload storage used by services that own images.
type FileStore interface {
	Save(category string, fh *multipart.FileHeader) (string, error)
	Remove(category, filename string) error
}

// Transactor is re-exported so callers only import services.
type Transactor = database.Transactor

// ListParams is the common pagination query.
type ListParams struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Normalize applies defaults and bounds.
func (p ListParams) Normalize() ListParams {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

// ListResult is a page of items plus the unpaginated total.
type ListResult struct {
	Data     interface{} `json:"data"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

func newListResult(data interface{}, total int, p ListParams) *ListResult {
	return &ListResult{Data: data, Total: total, Page: p.Page, PageSize: p.PageSize}
}

// mapNotFound swaps a repository ErrNotFound for the service error.
func mapNotFound(err, notFound error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound
	}
	return err
}

// duplicateError maps a unique violation to the matching service error.
func duplicateError(err error) error {
	switch repositories.DuplicateColumn(err) {
	case "email":
		return ErrEmailExists
	case "phone":
		return ErrPhoneExists
	case "username":
		return ErrUsernameExists
	case "product_name":
		return ErrProductExists
	}
	return err
}
