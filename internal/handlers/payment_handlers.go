package handlers

import (
	"net/http"

	"ecohaven_backend/internal/services"
	"ecohaven_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler serves /pay and /refund.
type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req services.CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.paymentService.CreatePayment(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreatePayment: Error from paymentService.CreatePayment")
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) GetPayments(c *gin.Context) {
	var filter services.PaymentFilter
	if !bindQuery(c, &filter) {
		return
	}
	result, err := h.paymentService.GetPayments(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "GetPayments: Error from paymentService.GetPayments")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) GetPaymentByID(c *gin.Context) {
	id, ok := parseID(c, "id", "payment")
	if !ok {
		return
	}
	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "GetPaymentByID: Error from paymentService.GetPayment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "payment")
	if !ok {
		return
	}
	var req services.UpdatePaymentStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.paymentService.UpdatePaymentStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err, "UpdatePaymentStatus: Error from paymentService.UpdatePaymentStatus")
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id, ok := parseID(c, "id", "payment")
	if !ok {
		return
	}
	if err := h.paymentService.DeletePayment(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "DeletePayment: Error from paymentService.DeletePayment")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Payment deleted successfully")
}

// CreateRefund files a refund request against a payment business id.
func (h *PaymentHandler) CreateRefund(c *gin.Context) {
	var req services.CreateRefundRequest
	if !bindJSON(c, &req) {
		return
	}
	refund, err := h.paymentService.CreateRefund(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateRefund: Error from paymentService.CreateRefund")
		return
	}
	c.JSON(http.StatusCreated, refund)
}

func (h *PaymentHandler) GetRefunds(c *gin.Context) {
	var filter services.RefundFilter
	if !bindQuery(c, &filter) {
		return
	}
	result, err := h.paymentService.GetRefunds(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "GetRefunds: Error from paymentService.GetRefunds")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) GetRefundByID(c *gin.Context) {
	id, ok := parseID(c, "id", "refund")
	if !ok {
		return
	}
	refund, err := h.paymentService.GetRefund(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "GetRefundByID: Error from paymentService.GetRefund")
		return
	}
	c.JSON(http.StatusOK, refund)
}

// DecideRefund approves or rejects a pending refund.
func (h *PaymentHandler) DecideRefund(c *gin.Context) {
	id, ok := parseID(c, "id", "refund")
	if !ok {
		return
	}
	var req services.DecideRefundRequest
	if !bindJSON(c, &req) {
		return
	}
	refund, err := h.paymentService.DecideRefund(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err, "DecideRefund: Error from paymentService.DecideRefund")
		return
	}
	c.JSON(http.StatusOK, refund)
}

func (h *PaymentHandler) DeleteRefund(c *gin.Context) {
	id, ok := parseID(c, "id", "refund")
	if !ok {
		return
	}
	if err := h.paymentService.DeleteRefund(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "DeleteRefund: Error from paymentService.DeleteRefund")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Refund deleted successfully")
}
