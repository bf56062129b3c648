package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
)

type collectFixture struct {
	collects *mockCollectRepository
	products *mockProductRepository
	accounts *mockAccountRepository
	tx       *fakeTx
	mail     *fakeMailer
	svc      CollectService
}

func newCollectFixture(t *testing.T) *collectFixture {
	f := &collectFixture{
		collects: new(mockCollectRepository),
		products: new(mockProductRepository),
		accounts: new(mockAccountRepository),
		tx:       &fakeTx{},
		mail:     &fakeMailer{},
	}
	f.svc = NewCollectService(f.collects, f.products, f.accounts, nil, f.tx, f.mail)
	t.Cleanup(func() {
		mock.AssertExpectationsForObjects(t, f.collects, f.products, f.accounts)
	})
	return f
}

var redeemer = &models.Principal{ID: 3, Kind: "account", Email: "ana@example.com", FullName: "Ana Lima"}

func (f *collectFixture) expectLookups(ctx context.Context, points, stock int) {
	f.products.On("GetProductByName", ctx, "Bamboo Cup").
		Return(&models.ProductDetail{ID: 11, ProductName: "Bamboo Cup", Leaves: 50, Stock: stock}, nil)
	f.accounts.On("GetAccountByID", ctx, int64(3)).
		Return(&models.Account{ID: 3, FullName: "Ana Lima", Email: "ana@example.com", LeafPoints: points}, nil)
}

func TestRedeem(t *testing.T) {
	f := newCollectFixture(t)
	ctx := context.Background()
	f.expectLookups(ctx, 80, 4)

	f.products.On("UpdateStock", ctx, mock.Anything, int64(11), -1).Return(3, nil)
	f.accounts.On("DeductLeafPoints", ctx, mock.Anything, int64(3), 50).Return(true, nil)
	f.collects.On("CreateCollect", ctx, mock.Anything, mock.AnythingOfType("*models.CollectInformation")).Return(int64(1), nil)

	collect, err := f.svc.Redeem(ctx, redeemer, "Bamboo Cup")
	require.NoError(t, err)
	assert.Len(t, collect.CollectID, collectIDLength)
	assert.Equal(t, models.CollectStatusPending, collect.Status)
	assert.Equal(t, 50, collect.LeavesSpent)
	assert.Len(t, f.mail.sent, 1)
}

func TestRedeemPrechecks(t *testing.T) {
	ctx := context.Background()

	t.Run("insufficient points", func(t *testing.T) {
		f := newCollectFixture(t)
		f.expectLookups(ctx, 49, 4)
		_, err := f.svc.Redeem(ctx, redeemer, "Bamboo Cup")
		assert.ErrorIs(t, err, ErrInsufficientPoints)
		assert.Zero(t, f.tx.calls)
	})

	t.Run("out of stock", func(t *testing.T) {
		f := newCollectFixture(t)
		f.expectLookups(ctx, 80, 0)
		_, err := f.svc.Redeem(ctx, redeemer, "Bamboo Cup")
		assert.ErrorIs(t, err, ErrOutOfStock)
		assert.Zero(t, f.tx.calls)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newCollectFixture(t)
		f.products.On("GetProductByName", ctx, "Nothing").Return(nil, repositories.ErrNotFound)
		_, err := f.svc.Redeem(ctx, redeemer, "Nothing")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("staff caller", func(t *testing.T) {
		f := newCollectFixture(t)
		_, err := f.svc.Redeem(ctx, &models.Principal{ID: 1, Kind: "staff"}, "Bamboo Cup")
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestRedeemLosesRaceOnPoints(t *testing.T) {
	f := newCollectFixture(t)
	ctx := context.Background()
	f.expectLookups(ctx, 80, 4)

	f.products.On("UpdateStock", ctx, mock.Anything, int64(11), -1).Return(3, nil)
	f.accounts.On("DeductLeafPoints", ctx, mock.Anything, int64(3), 50).Return(false, nil)

	_, err := f.svc.Redeem(ctx, redeemer, "Bamboo Cup")
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Zero(t, f.tx.committed)
	assert.Empty(t, f.mail.sent)
	f.collects.AssertNotCalled(t, "CreateCollect", mock.Anything, mock.Anything, mock.Anything)
}

func TestRedeemLosesRaceOnStock(t *testing.T) {
	f := newCollectFixture(t)
	ctx := context.Background()
	f.expectLookups(ctx, 80, 1)

	f.products.On("UpdateStock", ctx, mock.Anything, int64(11), -1).Return(0, repositories.ErrConditionFailed)

	_, err := f.svc.Redeem(ctx, redeemer, "Bamboo Cup")
	assert.ErrorIs(t, err, ErrOutOfStock)
	f.accounts.AssertNotCalled(t, "DeductLeafPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRedeemRetriesCollectIDCollision(t *testing.T) {
	f := newCollectFixture(t)
	ctx := context.Background()
	f.expectLookups(ctx, 200, 4)

	f.products.On("UpdateStock", ctx, mock.Anything, int64(11), -1).Return(3, nil).Twice()
	f.accounts.On("DeductLeafPoints", ctx, mock.Anything, int64(3), 50).Return(true, nil).Twice()
	f.collects.On("CreateCollect", ctx, mock.Anything, mock.Anything).
		Return(int64(0), &repositories.DuplicateKeyError{Constraint: "collect_information_collect_id_key"}).Once()
	f.collects.On("CreateCollect", ctx, mock.Anything, mock.Anything).Return(int64(2), nil).Once()

	_, err := f.svc.Redeem(ctx, redeemer, "Bamboo Cup")
	require.NoError(t, err)
	assert.Equal(t, 2, f.tx.calls)
	assert.Equal(t, 1, f.tx.committed)
}
