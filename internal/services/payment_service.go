package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
	"ecohaven_backend/pkg/utils"
)

// --- Payment DTOs ---

type CreatePaymentRequest struct {
	BookingID *int64  `json:"booking_id" binding:"omitempty,gt=0"`
	PayerName string  `json:"payer_name" binding:"required,max=255"`
	Email     string  `json:"email" binding:"required,email"`
	Amount    float64 `json:"amount" binding:"gt=0"`
	Method    string  `json:"method" binding:"max=50"`
	Status    string  `json:"status" binding:"omitempty,payment_status"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,payment_status"`
}

type PaymentFilter struct {
	ListParams
	Status string `form:"status" binding:"omitempty,payment_status"`
	Email  string `form:"email"`
}

// --- Refund DTOs ---

type CreateRefundRequest struct {
	PaymentID string  `json:"payment_id" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Amount    float64 `json:"amount" binding:"omitempty,gt=0"`
	Reason    string  `json:"reason" binding:"max=2000"`
}

type DecideRefundRequest struct {
	Status string `json:"status" binding:"required,refund_status"`
}

type RefundFilter struct {
	ListParams
	Status string `form:"status" binding:"omitempty,refund_status"`
}

type PaymentService interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*models.Payment, error)
	GetPayment(ctx context.Context, id int64) (*models.Payment, error)
	GetPayments(ctx context.Context, filter PaymentFilter) (*ListResult, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status string) (*models.Payment, error)
	DeletePayment(ctx context.Context, id int64) error

	CreateRefund(ctx context.Context, req CreateRefundRequest) (*models.Refund, error)
	GetRefund(ctx context.Context, id int64) (*models.Refund, error)
	GetRefunds(ctx context.Context, filter RefundFilter) (*ListResult, error)
	DecideRefund(ctx context.Context, id int64, status string) (*models.Refund, error)
	DeleteRefund(ctx context.Context, id int64) error
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	refundRepo  repositories.RefundRepository
	db          repositories.SQLExecutor
	tx          Transactor
}

func NewPaymentService(paymentRepo repositories.PaymentRepository, refundRepo repositories.RefundRepository, db repositories.SQLExecutor, tx Transactor) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, refundRepo: refundRepo, db: db, tx: tx}
}

func (s *paymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*models.Payment, error) {
	payment := &models.Payment{
		PaymentID: "PAY-" + utils.ShortCode(qrCodeLength),
		BookingID: req.BookingID,
		PayerName: strings.TrimSpace(req.PayerName),
		Email:     utils.NormalizeEmail(req.Email),
		Amount:    req.Amount,
		Method:    strings.TrimSpace(req.Method),
		Status:    req.Status,
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPaid
	}
	if _, err := s.paymentRepo.CreatePayment(ctx, s.db, payment); err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("creating payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetPaymentByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrPaymentNotFound)
	}
	return payment, nil
}

func (s *paymentService) GetPayments(ctx context.Context, filter PaymentFilter) (*ListResult, error) {
	params := filter.ListParams.Normalize()
	payments, total, err := s.paymentRepo.GetPayments(ctx, filter.Status, utils.NormalizeEmail(filter.Email), params.Page, params.PageSize)
	if err != nil {
		return nil, err
	}
	return newListResult(payments, total, params), nil
}

func (s *paymentService) UpdatePaymentStatus(ctx context.Context, id int64, status string) (*models.Payment, error) {
	if err := s.paymentRepo.UpdatePaymentStatus(ctx, s.db, id, status); err != nil {
		return nil, mapNotFound(err, ErrPaymentNotFound)
	}
	return s.GetPayment(ctx, id)
}

func (s *paymentService) DeletePayment(ctx context.Context, id int64) error {
	if err := s.paymentRepo.DeletePayment(ctx, s.db, id); err != nil {
		return mapNotFound(err, ErrPaymentNotFound)
	}
	return nil
}

// CreateRefund files a pending refund against a paid payment. The amount
// defaults to the full payment.
func (s *paymentService) CreateRefund(ctx context.Context, req CreateRefundRequest) (*models.Refund, error) {
	payment, err := s.paymentRepo.GetPaymentByPaymentID(ctx, strings.TrimSpace(req.PaymentID))
	if err != nil {
		return nil, mapNotFound(err, ErrPaymentNotFound)
	}
	if payment.Status != models.PaymentStatusPaid {
		return nil, ErrPaymentNotRefundable
	}
	amount := req.Amount
	if amount == 0 || amount > payment.Amount {
		amount = payment.Amount
	}
	refund := &models.Refund{
		RefundID:  "REF-" + utils.ShortCode(qrCodeLength),
		PaymentID: payment.PaymentID,
		Email:     utils.NormalizeEmail(req.Email),
		Amount:    amount,
		Reason:    strings.TrimSpace(req.Reason),
		Status:    models.RefundStatusPending,
	}
	if _, err := s.refundRepo.CreateRefund(ctx, s.db, refund); err != nil {
		return nil, fmt.Errorf("creating refund: %w", err)
	}
	utils.LogInfo("Refund requested", map[string]interface{}{"refund_id": refund.RefundID, "payment_id": payment.PaymentID})
	return refund, nil
}

func (s *paymentService) GetRefund(ctx context.Context, id int64) (*models.Refund, error) {
	refund, err := s.refundRepo.GetRefundByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrRefundNotFound)
	}
	return refund, nil
}

func (s *paymentService) GetRefunds(ctx context.Context, filter RefundFilter) (*ListResult, error) {
	params := filter.ListParams.Normalize()
	refunds, total, err := s.refundRepo.GetRefunds(ctx, filter.Status, params.Page, params.PageSize)
	if err != nil {
		return nil, err
	}
	return newListResult(refunds, total, params), nil
}

// DecideRefund approves or rejects a pending refund. Approval marks the
// payment Refunded in the same transaction.
func (s *paymentService) DecideRefund(ctx context.Context, id int64, status string) (*models.Refund, error) {
	refund, err := s.GetRefund(ctx, id)
	if err != nil {
		return nil, err
	}
	if refund.Status != models.RefundStatusPending {
		return nil, ErrRefundDecided
	}
	if status == models.RefundStatusPending {
		return refund, nil
	}

	err = s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.refundRepo.UpdateRefundStatus(ctx, exec, id, status); err != nil {
			return mapNotFound(err, ErrRefundNotFound)
		}
		if status != models.RefundStatusApproved {
			return nil
		}
		if err := s.paymentRepo.UpdatePaymentStatusByPaymentID(ctx, exec, refund.PaymentID, models.PaymentStatusRefunded); err != nil {
			return mapNotFound(err, ErrPaymentNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	refund.Status = status
	utils.LogInfo("Refund decided", map[string]interface{}{"refund_id": refund.RefundID, "status": status})
	return refund, nil
}

func (s *paymentService) DeleteRefund(ctx context.Context, id int64) error {
	if err := s.refundRepo.DeleteRefund(ctx, s.db, id); err != nil {
		return mapNotFound(err, ErrRefundNotFound)
	}
	return nil
}
