package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"ecohaven_backend/internal/middleware"
	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/services"
	"ecohaven_backend/internal/storage"
	"ecohaven_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// FileResolver maps a stored file name to a path on disk.
type FileResolver interface {
	Path(category, filename string) (string, error)
}

type knownError struct {
	err     error
	status  int
	message string
}

// knownErrors lists the service failures clients can act on. Anything
// else is logged and answered with a generic 500.
var knownErrors = []knownError{
	{services.ErrEmailExists, http.StatusBadRequest, "Email already exists."},
	{services.ErrPhoneExists, http.StatusBadRequest, "Phone number already exists."},
	{services.ErrUsernameExists, http.StatusBadRequest, "Username already exists."},
	{services.ErrProductExists, http.StatusBadRequest, "Product name already exists."},
	{services.ErrIncorrectPassword, http.StatusBadRequest, "Incorrect password."},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials."},
	{services.ErrStaffInactive, http.StatusForbidden, "Account is inactive."},
	{services.ErrForbidden, http.StatusForbidden, "You do not have permission to access this resource."},

	{services.ErrAccountNotFound, http.StatusNotFound, "Account not found."},
	{services.ErrStaffNotFound, http.StatusNotFound, "Staff account not found."},
	{services.ErrEventNotFound, http.StatusNotFound, "Event not found."},
	{services.ErrBookingNotFound, http.StatusNotFound, "Booking not found."},
	{services.ErrCheckInNotFound, http.StatusNotFound, "Check-in record not found."},
	{services.ErrPaymentNotFound, http.StatusNotFound, "Payment not found."},
	{services.ErrRefundNotFound, http.StatusNotFound, "Refund not found."},
	{services.ErrProductNotFound, http.StatusNotFound, "Product not found."},
	{services.ErrCollectNotFound, http.StatusNotFound, "Collect information not found."},
	{services.ErrVolunteerNotFound, http.StatusNotFound, "Volunteer not found."},
	{services.ErrFAQNotFound, http.StatusNotFound, "FAQ not found."},
	{services.ErrReviewNotFound, http.StatusNotFound, "Review not found."},
	{services.ErrSubscriberNotFound, http.StatusNotFound, "Subscriber not found."},

	{services.ErrInvalidDate, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD."},
	{services.ErrInvalidSchedule, http.StatusBadRequest, "End date cannot be before start date."},
	{services.ErrEventNotBookable, http.StatusBadRequest, "This event has already ended."},
	{services.ErrBookingAttended, http.StatusBadRequest, "Attended bookings cannot be cancelled."},
	{services.ErrBookingCancelled, http.StatusBadRequest, "Booking has been cancelled."},
	{services.ErrAlreadyCheckedIn, http.StatusBadRequest, "Already checked in."},
	{services.ErrCheckInCancelled, http.StatusBadRequest, "Booking has been cancelled."},
	{services.ErrRefundDecided, http.StatusBadRequest, "Refund has already been decided."},
	{services.ErrPaymentNotRefundable, http.StatusBadRequest, "Only paid payments can be refunded."},
	{services.ErrInsufficientPoints, http.StatusBadRequest, "Insufficient leaf points."},
	{services.ErrOutOfStock, http.StatusBadRequest, "Product out of stock."},
	{services.ErrInvalidResetCode, http.StatusBadRequest, "Invalid or expired code."},
	{services.ErrContactNotConfigured, http.StatusServiceUnavailable, "Contact form is not available."},

	{storage.ErrUnsupportedType, http.StatusBadRequest, "Unsupported file type."},
	{storage.ErrFileTooLarge, http.StatusBadRequest, "File is too large (max 5MB)."},
	{storage.ErrInvalidName, http.StatusBadRequest, "Invalid file name."},
	{storage.ErrFileNotFound, http.StatusNotFound, "File not found."},
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return utils.ErrCodeBadRequest
	case http.StatusUnauthorized:
		return utils.ErrCodeUnauthorized
	case http.StatusForbidden:
		return utils.ErrCodeForbidden
	case http.StatusNotFound:
		return utils.ErrCodeNotFound
	case http.StatusServiceUnavailable:
		return utils.ErrCodeServiceUnavailable
	}
	return utils.ErrCodeInternalServerError
}

// respondServiceError translates a service error into the API response.
func respondServiceError(c *gin.Context, err error, op string) {
	for _, known := range knownErrors {
		if errors.Is(err, known.err) {
			if known.status >= http.StatusInternalServerError {
				utils.LogError(err, op)
			}
			utils.RespondWithError(c, utils.NewAPIError(known.status, errorCode(known.status), known.message, nil))
			return
		}
	}
	utils.RespondInternalError(c, err, op)
}

// bindJSON binds and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.RespondValidationFailed(c, err)
		return false
	}
	return true
}

// bindQuery binds and validates query parameters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		utils.RespondValidationFailed(c, err)
		return false
	}
	return true
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, param, label string) (int64, bool) {
	id, err := utils.StrToPositiveInt64(c.Param(param))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+label+" ID format.", nil))
		return 0, false
	}
	return id, true
}

func principal(c *gin.Context) *models.Principal {
	return middleware.CurrentPrincipal(c)
}

// serveFile streams a stored upload by its base name.
func serveFile(c *gin.Context, files FileResolver, category string) {
	path, err := files.Path(category, c.Param("filename"))
	if err != nil {
		respondServiceError(c, err, "serveFile")
		return
	}
	c.File(path)
}

// uploadedFile reads the multipart field and enforces the size limit.
func uploadedFile(c *gin.Context, field string) (*multipart.FileHeader, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		utils.RespondBadRequest(c, "No file uploaded in field '"+field+"'.")
		return nil, false
	}
	if fh.Size > storage.MaxUploadSize {
		respondServiceError(c, storage.ErrFileTooLarge, "uploadedFile")
		return nil, false
	}
	return fh, true
}
