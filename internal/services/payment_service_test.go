package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ecohaven_backend/internal/models"
)

func TestApproveRefundMarksPaymentRefunded(t *testing.T) {
	payments, refunds := new(mockPaymentRepository), new(mockRefundRepository)
	tx := &fakeTx{}
	svc := NewPaymentService(payments, refunds, nil, tx)
	ctx := context.Background()

	refunds.On("GetRefundByID", ctx, int64(4)).
		Return(&models.Refund{ID: 4, RefundID: "REF-1", PaymentID: "PAY-1", Status: models.RefundStatusPending}, nil)
	refunds.On("UpdateRefundStatus", ctx, mock.Anything, int64(4), models.RefundStatusApproved).Return(nil)
	payments.On("UpdatePaymentStatusByPaymentID", ctx, mock.Anything, "PAY-1", models.PaymentStatusRefunded).Return(nil)

	refund, err := svc.DecideRefund(ctx, 4, models.RefundStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.RefundStatusApproved, refund.Status)
	assert.Equal(t, 1, tx.committed)
	mock.AssertExpectationsForObjects(t, payments, refunds)
}

func TestRejectRefundLeavesPayment(t *testing.T) {
	payments, refunds := new(mockPaymentRepository), new(mockRefundRepository)
	svc := NewPaymentService(payments, refunds, nil, &fakeTx{})
	ctx := context.Background()

	refunds.On("GetRefundByID", ctx, int64(4)).
		Return(&models.Refund{ID: 4, PaymentID: "PAY-1", Status: models.RefundStatusPending}, nil)
	refunds.On("UpdateRefundStatus", ctx, mock.Anything, int64(4), models.RefundStatusRejected).Return(nil)

	_, err := svc.DecideRefund(ctx, 4, models.RefundStatusRejected)
	require.NoError(t, err)
	payments.AssertNotCalled(t, "UpdatePaymentStatusByPaymentID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecideRefundTwice(t *testing.T) {
	refunds := new(mockRefundRepository)
	svc := NewPaymentService(new(mockPaymentRepository), refunds, nil, &fakeTx{})

	refunds.On("GetRefundByID", mock.Anything, int64(4)).
		Return(&models.Refund{ID: 4, Status: models.RefundStatusApproved}, nil)

	_, err := svc.DecideRefund(context.Background(), 4, models.RefundStatusRejected)
	assert.ErrorIs(t, err, ErrRefundDecided)
}

func TestCreateRefundRequiresPaidPayment(t *testing.T) {
	payments := new(mockPaymentRepository)
	svc := NewPaymentService(payments, new(mockRefundRepository), nil, &fakeTx{})

	payments.On("GetPaymentByPaymentID", mock.Anything, "PAY-9").
		Return(&models.Payment{PaymentID: "PAY-9", Amount: 20, Status: models.PaymentStatusUnpaid}, nil)

	_, err := svc.CreateRefund(context.Background(), CreateRefundRequest{PaymentID: "PAY-9", Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrPaymentNotRefundable)
}
