package handlers

import (
	"net/http"

	"ecohaven_backend/internal/services"
	"ecohaven_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves /api/bookings.
type BookingHandler struct {
	bookingService services.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bs services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bs}
}

// CreateBooking handles a guest booking. No account is required.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	confirmation, err := h.bookingService.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateBooking: Error from bookingService.CreateBooking")
		return
	}
	c.JSON(http.StatusCreated, confirmation)
}

// GetBookings handles the staff booking list.
func (h *BookingHandler) GetBookings(c *gin.Context) {
	var filter services.BookingFilter
	if !bindQuery(c, &filter) {
		return
	}
	result, err := h.bookingService.GetBookings(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "GetBookings: Error from bookingService.GetBookings")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetMyBookings lists bookings made with the caller's email.
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	var params services.ListParams
	if !bindQuery(c, &params) {
		return
	}
	result, err := h.bookingService.GetMyBookings(c.Request.Context(), principal(c), params)
	if err != nil {
		respondServiceError(c, err, "GetMyBookings: Error from bookingService.GetMyBookings")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	id, ok := parseID(c, "id", "booking")
	if !ok {
		return
	}
	booking, err := h.bookingService.GetBooking(c.Request.Context(), principal(c), id)
	if err != nil {
		respondServiceError(c, err, "GetBookingByID: Error from bookingService.GetBooking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelBooking handles PUT /api/bookings/cancel/:id.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := parseID(c, "id", "booking")
	if !ok {
		return
	}
	booking, err := h.bookingService.CancelBooking(c.Request.Context(), principal(c), id)
	if err != nil {
		respondServiceError(c, err, "CancelBooking: Error from bookingService.CancelBooking for ID "+utils.Int64ToStr(id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully", "booking": booking})
}

// GetBookingQRCode returns the booking's check-in code as a PNG.
func (h *BookingHandler) GetBookingQRCode(c *gin.Context) {
	id, ok := parseID(c, "id", "booking")
	if !ok {
		return
	}
	png, err := h.bookingService.GetBookingQRCode(c.Request.Context(), principal(c), id)
	if err != nil {
		respondServiceError(c, err, "GetBookingQRCode: Error from bookingService.GetBookingQRCode")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// GetBookingTicket returns the printable PDF ticket.
func (h *BookingHandler) GetBookingTicket(c *gin.Context) {
	id, ok := parseID(c, "id", "booking")
	if !ok {
		return
	}
	pdf, err := h.bookingService.GetBookingTicket(c.Request.Context(), principal(c), id)
	if err != nil {
		respondServiceError(c, err, "GetBookingTicket: Error from bookingService.GetBookingTicket")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="ecohaven-ticket-`+utils.Int64ToStr(id)+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
