package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecohaven_backend/internal/mailer"
	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
	"ecohaven_backend/pkg/utils"
)

const collectIDLength = 6

type RedeemRequest struct {
	ProductName string `json:"product_name" binding:"required"`
}

type CollectFilter struct {
	ListParams
	Status string `form:"status" binding:"omitempty,collect_status"`
}

type CollectService interface {
	Redeem(ctx context.Context, principal *models.Principal, productName string) (*models.CollectInformation, error)
	GetCollects(ctx context.Context, filter CollectFilter) (*ListResult, error)
	GetMyCollects(ctx context.Context, principal *models.Principal, params ListParams) (*ListResult, error)
	MarkCollected(ctx context.Context, collectID string) (*models.CollectInformation, error)
	DeleteCollect(ctx context.Context, id int64) error
}

type collectService struct {
	collectRepo repositories.CollectRepository
	productRepo repositories.ProductRepository
	accountRepo repositories.AccountRepository
	db          repositories.SQLExecutor
	tx          Transactor
	mail        mailer.Mailer
	now         func() time.Time
}

func NewCollectService(
	collectRepo repositories.CollectRepository,
	productRepo repositories.ProductRepository,
	accountRepo repositories.AccountRepository,
	db repositories.SQLExecutor,
	tx Transactor,
	mail mailer.Mailer,
) CollectService {
	return &collectService{
		collectRepo: collectRepo,
		productRepo: productRepo,
		accountRepo: accountRepo,
		db:          db,
		tx:          tx,
		mail:        mail,
		now:         time.Now,
	}
}

// Redeem spends the caller's leaf points on one unit of the product. Stock
// and points are decremented by guarded updates inside one transaction so
// concurrent redemptions can never overdraw either.
func (s *collectService) Redeem(ctx context.Context, principal *models.Principal, productName string) (*models.CollectInformation, error) {
	if !principal.IsAccount() {
		return nil, ErrForbidden
	}
	product, err := s.productRepo.GetProductByName(ctx, strings.TrimSpace(productName))
	if err != nil {
		return nil, mapNotFound(err, ErrProductNotFound)
	}
	account, err := s.accountRepo.GetAccountByID(ctx, principal.ID)
	if err != nil {
		return nil, mapNotFound(err, ErrAccountNotFound)
	}
	if account.LeafPoints < product.Leaves {
		return nil, ErrInsufficientPoints
	}
	if product.Stock < 1 {
		return nil, ErrOutOfStock
	}

	var collect *models.CollectInformation
	for attempt := 0; attempt < maxCodeRetries; attempt++ {
		collect, err = s.redeemOnce(ctx, account, product)
		if repositories.DuplicateColumn(err) != "collect_id" {
			break
		}
		utils.LogDebug("Collect id collided, retrying", map[string]interface{}{"attempt": attempt + 1})
	}
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCollectIDExhausted
		}
		return nil, err
	}

	utils.LogInfo("Reward redeemed", map[string]interface{}{
		"account_id": account.ID, "product_id": product.ID, "collect_id": collect.CollectID,
	})
	msg := mailer.RedemptionConfirmed(account.Email, account.FullName, product.ProductName, collect.CollectID, product.Leaves)
	if err := s.mail.Send(ctx, msg); err != nil {
		utils.LogWarn("Failed to send redemption confirmation", map[string]interface{}{"collect_id": collect.CollectID, "error": err.Error()})
	}
	return collect, nil
}

func (s *collectService) redeemOnce(ctx context.Context, account *models.Account, product *models.ProductDetail) (*models.CollectInformation, error) {
	accountID := account.ID
	collect := &models.CollectInformation{
		CollectID:   utils.RandomDigits(collectIDLength),
		AccountID:   &accountID,
		Email:       account.Email,
		ProductName: product.ProductName,
		LeavesSpent: product.Leaves,
		Status:      models.CollectStatusPending,
	}
	err := s.tx.WithinTransaction(ctx, func(exec repositories.SQLExecutor) error {
		if _, err := s.productRepo.UpdateStock(ctx, exec, product.ID, -1); err != nil {
			if errors.Is(err, repositories.ErrConditionFailed) {
				return ErrOutOfStock
			}
			return mapNotFound(err, ErrProductNotFound)
		}
		ok, err := s.accountRepo.DeductLeafPoints(ctx, exec, account.ID, product.Leaves)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientPoints
		}
		_, err = s.collectRepo.CreateCollect(ctx, exec, collect)
		return err
	})
	if err != nil {
		return nil, err
	}
	return collect, nil
}

func (s *collectService) GetCollects(ctx context.Context, filter CollectFilter) (*ListResult, error) {
	params := filter.ListParams.Normalize()
	collects, total, err := s.collectRepo.GetCollects(ctx, filter.Status, nil, params.Page, params.PageSize)
	if err != nil {
		return nil, err
	}
	return newListResult(collects, total, params), nil
}

func (s *collectService) GetMyCollects(ctx context.Context, principal *models.Principal, params ListParams) (*ListResult, error) {
	if !principal.IsAccount() {
		return nil, ErrForbidden
	}
	params = params.Normalize()
	accountID := principal.ID
	collects, total, err := s.collectRepo.GetCollects(ctx, "", &accountID, params.Page, params.PageSize)
	if err != nil {
		return nil, err
	}
	return newListResult(collects, total, params), nil
}

func (s *collectService) MarkCollected(ctx context.Context, collectID string) (*models.CollectInformation, error) {
	collectID = strings.TrimSpace(collectID)
	if err := s.collectRepo.MarkCollected(ctx, s.db, collectID, s.now()); err != nil {
		return nil, mapNotFound(err, ErrCollectNotFound)
	}
	collect, err := s.collectRepo.GetCollectByCollectID(ctx, collectID)
	if err != nil {
		return nil, fmt.Errorf("reloading collect %s: %w", collectID, mapNotFound(err, ErrCollectNotFound))
	}
	return collect, nil
}

func (s *collectService) DeleteCollect(ctx context.Context, id int64) error {
	if err := s.collectRepo.DeleteCollect(ctx, s.db, id); err != nil {
		return mapNotFound(err, ErrCollectNotFound)
	}
	return nil
}
