package handlers

import (
	"net/http"

	"ecohaven_backend/internal/services"
	"ecohaven_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CollectHandler serves reward redemption and pick-up under /collect.
type CollectHandler struct {
	collectService services.CollectService
}

func NewCollectHandler(cs services.CollectService) *CollectHandler {
	return &CollectHandler{collectService: cs}
}

// Redeem handles POST /collect/redeem for the calling account.
func (h *CollectHandler) Redeem(c *gin.Context) {
	var req services.RedeemRequest
	if !bindJSON(c, &req) {
		return
	}
	collect, err := h.collectService.Redeem(c.Request.Context(), principal(c), req.ProductName)
	if err != nil {
		respondServiceError(c, err, "Redeem: Error from collectService.Redeem")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product redeemed successfully", "collect": collect})
}

func (h *CollectHandler) GetCollects(c *gin.Context) {
	var filter services.CollectFilter
	if !bindQuery(c, &filter) {
		return
	}
	result, err := h.collectService.GetCollects(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "GetCollects: Error from collectService.GetCollects")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CollectHandler) GetMyCollects(c *gin.Context) {
	var params services.ListParams
	if !bindQuery(c, &params) {
		return
	}
	result, err := h.collectService.GetMyCollects(c.Request.Context(), principal(c), params)
	if err != nil {
		respondServiceError(c, err, "GetMyCollects: Error from collectService.GetMyCollects")
		return
	}
	c.JSON(http.StatusOK, result)
}

// MarkCollected handles PUT /collect/:collectId/collected.
func (h *CollectHandler) MarkCollected(c *gin.Context) {
	collect, err := h.collectService.MarkCollected(c.Request.Context(), c.Param("collectId"))
	if err != nil {
		respondServiceError(c, err, "MarkCollected: Error from collectService.MarkCollected")
		return
	}
	c.JSON(http.StatusOK, collect)
}

func (h *CollectHandler) DeleteCollect(c *gin.Context) {
	id, ok := parseID(c, "id", "collect")
	if !ok {
		return
	}
	if err := h.collectService.DeleteCollect(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "DeleteCollect: Error from collectService.DeleteCollect")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Collect information deleted successfully")
}
