package handlers

import (
	"errors"
	"net/http"

	"ecohaven_backend/internal/services"
	"ecohaven_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CheckInHandler serves /checkin.
type CheckInHandler struct {
	checkInService services.CheckInService
}

func NewCheckInHandler(cs services.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkInService: cs}
}

// CheckIn handles POST /checkin/checkin. The body's data field is either
// the QR code text or the guest name.
func (h *CheckInHandler) CheckIn(c *gin.Context) {
	var req services.CheckInRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := h.checkInService.CheckIn(c.Request.Context(), req.Data)
	if err != nil {
		if errors.Is(err, services.ErrCheckInNotFound) {
			utils.RespondNotFound(c, "Check-in record not found.")
		} else if errors.Is(err, services.ErrAlreadyCheckedIn) {
			utils.RespondBadRequest(c, "Already checked in.")
		} else if errors.Is(err, services.ErrCheckInCancelled) {
			utils.RespondBadRequest(c, "Booking has been cancelled.")
		} else {
			utils.RespondInternalError(c, err, "CheckIn: Error from checkInService.CheckIn")
		}
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Check-in successful")
}

func (h *CheckInHandler) GetCheckIns(c *gin.Context) {
	var filter services.CheckInFilter
	if !bindQuery(c, &filter) {
		return
	}
	result, err := h.checkInService.GetCheckIns(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "GetCheckIns: Error from checkInService.GetCheckIns")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CheckInHandler) GetCheckInByBooking(c *gin.Context) {
	bookingID, ok := parseID(c, "bookingId", "booking")
	if !ok {
		return
	}
	checkIn, err := h.checkInService.GetCheckInByBookingID(c.Request.Context(), bookingID)
	if err != nil {
		respondServiceError(c, err, "GetCheckInByBooking: Error from checkInService.GetCheckInByBookingID")
		return
	}
	c.JSON(http.StatusOK, checkIn)
}
