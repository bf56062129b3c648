package handlers

import (
	"net/http"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// StaffHandler holds the staff service.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

// Login handles POST /staff/login.
func (h *StaffHandler) Login(c *gin.Context) {
	var creds models.StaffCredentials
	if !bindJSON(c, &creds) {
		return
	}
	resp, err := h.staffService.Login(c.Request.Context(), creds)
	if err != nil {
		respondServiceError(c, err, "StaffLogin: Error from staffService.Login")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the calling staff member.
func (h *StaffHandler) Me(c *gin.Context) {
	staff, err := h.staffService.GetStaff(c.Request.Context(), principal(c).ID)
	if err != nil {
		respondServiceError(c, err, "StaffMe: Error from staffService.GetStaff")
		return
	}
	c.JSON(http.StatusOK, staff)
}

// CreateStaff handles the creation of a new staff account.
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req services.CreateStaffRequest
	if !bindJSON(c, &req) {
		return
	}
	staff, err := h.staffService.CreateStaff(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateStaff: Error from staffService.CreateStaff")
		return
	}
	c.JSON(http.StatusCreated, staff)
}

// GetStaffList handles fetching staff with filters and pagination.
func (h *StaffHandler) GetStaffList(c *gin.Context) {
	var filter services.StaffFilter
	if !bindQuery(c, &filter) {
		return
	}
	result, err := h.staffService.GetStaffList(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "GetStaffList: Error from staffService.GetStaffList")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetStaffByID handles fetching a single staff account.
func (h *StaffHandler) GetStaffByID(c *gin.Context) {
	id, ok := parseID(c, "id", "staff")
	if !ok {
		return
	}
	staff, err := h.staffService.GetStaff(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "GetStaffByID: Error from staffService.GetStaff")
		return
	}
	c.JSON(http.StatusOK, staff)
}

// UpdateStaff handles updating a staff account.
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	id, ok := parseID(c, "id", "staff")
	if !ok {
		return
	}
	var req services.UpdateStaffRequest
	if !bindJSON(c, &req) {
		return
	}
	staff, err := h.staffService.UpdateStaff(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateStaff: Error from staffService.UpdateStaff")
		return
	}
	c.JSON(http.StatusOK, staff)
}

// UpdateStaffStatus activates or deactivates a staff account.
func (h *StaffHandler) UpdateStaffStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "staff")
	if !ok {
		return
	}
	var req services.UpdateStaffStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	staff, err := h.staffService.UpdateStaffStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err, "UpdateStaffStatus: Error from staffService.UpdateStaffStatus")
		return
	}
	c.JSON(http.StatusOK, staff)
}
