package handlers

import (
	"net/http"

	"ecohaven_backend/internal/services"
	"ecohaven_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OutreachHandler groups the newsletter, password reset, contact form and
// search endpoints.
type OutreachHandler struct {
	subscriberService services.SubscriberService
	resetService      services.PasswordResetService
	contactService    services.ContactService
	searchService     services.SearchService
}

func NewOutreachHandler(
	subs services.SubscriberService,
	resets services.PasswordResetService,
	contact services.ContactService,
	search services.SearchService,
) *OutreachHandler {
	return &OutreachHandler{subscriberService: subs, resetService: resets, contactService: contact, searchService: search}
}

// Subscribe handles POST /subscribe. Subscribing twice is not an error.
func (h *OutreachHandler) Subscribe(c *gin.Context) {
	var req services.SubscribeRequest
	if !bindJSON(c, &req) {
		return
	}
	sub, created, err := h.subscriberService.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		respondServiceError(c, err, "Subscribe: Error from subscriberService.Subscribe")
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Already subscribed", "subscriber": sub})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed successfully", "subscriber": sub})
}

func (h *OutreachHandler) GetSubscribers(c *gin.Context) {
	var params services.ListParams
	if !bindQuery(c, &params) {
		return
	}
	result, err := h.subscriberService.GetSubscribers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "GetSubscribers: Error from subscriberService.GetSubscribers")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *OutreachHandler) Unsubscribe(c *gin.Context) {
	if err := h.subscriberService.Unsubscribe(c.Request.Context(), c.Param("email")); err != nil {
		respondServiceError(c, err, "Unsubscribe: Error from subscriberService.Unsubscribe")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Unsubscribed successfully")
}

// RequestReset handles POST /reset_password/request.
func (h *OutreachHandler) RequestReset(c *gin.Context) {
	var req services.ResetRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.resetService.RequestReset(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, err, "RequestReset: Error from resetService.RequestReset")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Reset code sent to your email")
}

func (h *OutreachHandler) VerifyResetCode(c *gin.Context) {
	var req services.VerifyResetRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.resetService.VerifyCode(c.Request.Context(), req.Email, req.Code); err != nil {
		respondServiceError(c, err, "VerifyResetCode: Error from resetService.VerifyCode")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Code verified")
}

func (h *OutreachHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.resetService.ResetPassword(c.Request.Context(), req); err != nil {
		respondServiceError(c, err, "ResetPassword: Error from resetService.ResetPassword")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Password reset successfully")
}

// SendEmail forwards the public contact form.
func (h *OutreachHandler) SendEmail(c *gin.Context) {
	var req services.ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.contactService.Send(c.Request.Context(), req); err != nil {
		respondServiceError(c, err, "SendEmail: Error from contactService.Send")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Email sent successfully")
}

// Search handles GET /search?q=.
func (h *OutreachHandler) Search(c *gin.Context) {
	result, err := h.searchService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err, "Search: Error from searchService.Search")
		return
	}
	c.JSON(http.StatusOK, result)
}
