package handlers

import (
	"net/http"

	"ecohaven_backend/internal/services"
	"ecohaven_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// VolunteerHandler serves /volunteer.
type VolunteerHandler struct {
	volunteerService services.VolunteerService
}

func NewVolunteerHandler(vs services.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{volunteerService: vs}
}

func (h *VolunteerHandler) Apply(c *gin.Context) {
	var req services.VolunteerRequest
	if !bindJSON(c, &req) {
		return
	}
	volunteer, err := h.volunteerService.Apply(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Apply: Error from volunteerService.Apply")
		return
	}
	c.JSON(http.StatusCreated, volunteer)
}

func (h *VolunteerHandler) GetVolunteers(c *gin.Context) {
	var filter services.VolunteerFilter
	if !bindQuery(c, &filter) {
		return
	}
	result, err := h.volunteerService.GetVolunteers(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "GetVolunteers: Error from volunteerService.GetVolunteers")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *VolunteerHandler) GetVolunteerByID(c *gin.Context) {
	id, ok := parseID(c, "id", "volunteer")
	if !ok {
		return
	}
	volunteer, err := h.volunteerService.GetVolunteer(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "GetVolunteerByID: Error from volunteerService.GetVolunteer")
		return
	}
	c.JSON(http.StatusOK, volunteer)
}

func (h *VolunteerHandler) UpdateVolunteerStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "volunteer")
	if !ok {
		return
	}
	var req services.UpdateVolunteerStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	volunteer, err := h.volunteerService.UpdateVolunteerStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err, "UpdateVolunteerStatus: Error from volunteerService.UpdateVolunteerStatus")
		return
	}
	c.JSON(http.StatusOK, volunteer)
}

func (h *VolunteerHandler) DeleteVolunteer(c *gin.Context) {
	id, ok := parseID(c, "id", "volunteer")
	if !ok {
		return
	}
	if err := h.volunteerService.DeleteVolunteer(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "DeleteVolunteer: Error from volunteerService.DeleteVolunteer")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Volunteer deleted successfully")
}

// FAQHandler serves /api/faqs.
type FAQHandler struct {
	faqService services.FAQService
}

func NewFAQHandler(fs services.FAQService) *FAQHandler {
	return &FAQHandler{faqService: fs}
}

func (h *FAQHandler) GetFAQs(c *gin.Context) {
	faqs, err := h.faqService.GetFAQs(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetFAQs: Error from faqService.GetFAQs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": faqs})
}

func (h *FAQHandler) GetFAQByID(c *gin.Context) {
	id, ok := parseID(c, "id", "FAQ")
	if !ok {
		return
	}
	faq, err := h.faqService.GetFAQ(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "GetFAQByID: Error from faqService.GetFAQ")
		return
	}
	c.JSON(http.StatusOK, faq)
}

func (h *FAQHandler) CreateFAQ(c *gin.Context) {
	var req services.FAQRequest
	if !bindJSON(c, &req) {
		return
	}
	faq, err := h.faqService.CreateFAQ(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateFAQ: Error from faqService.CreateFAQ")
		return
	}
	c.JSON(http.StatusCreated, faq)
}

func (h *FAQHandler) UpdateFAQ(c *gin.Context) {
	id, ok := parseID(c, "id", "FAQ")
	if !ok {
		return
	}
	var req services.FAQRequest
	if !bindJSON(c, &req) {
		return
	}
	faq, err := h.faqService.UpdateFAQ(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateFAQ: Error from faqService.UpdateFAQ")
		return
	}
	c.JSON(http.StatusOK, faq)
}

func (h *FAQHandler) DeleteFAQ(c *gin.Context) {
	id, ok := parseID(c, "id", "FAQ")
	if !ok {
		return
	}
	if err := h.faqService.DeleteFAQ(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "DeleteFAQ: Error from faqService.DeleteFAQ")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "FAQ deleted successfully")
}

// ReviewHandler serves /review.
type ReviewHandler struct {
	reviewService services.ReviewService
}

func NewReviewHandler(rs services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: rs}
}

func (h *ReviewHandler) GetReviews(c *gin.Context) {
	var filter services.ReviewFilter
	if !bindQuery(c, &filter) {
		return
	}
	result, err := h.reviewService.GetReviews(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "GetReviews: Error from reviewService.GetReviews")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req services.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := h.reviewService.CreateReview(c.Request.Context(), principal(c), req)
	if err != nil {
		respondServiceError(c, err, "CreateReview: Error from reviewService.CreateReview")
		return
	}
	c.JSON(http.StatusCreated, review)
}

// DeleteReview is open to the review's author and to staff.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "id", "review")
	if !ok {
		return
	}
	if err := h.reviewService.DeleteReview(c.Request.Context(), principal(c), id); err != nil {
		respondServiceError(c, err, "DeleteReview: Error from reviewService.DeleteReview")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Review deleted successfully")
}
