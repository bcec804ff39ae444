package ledger

import (
	"context"
	"testing"

	"crossmargin/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPositionStore struct {
	positions map[string]*core.Position
}

func key(account, assetID string) string {
	return account + "|" + assetID
}

func (s *mockPositionStore) Save(ctx context.Context, tx *db.DB, position *core.Position) error {
	s.positions[key(position.Account, position.AssetID)] = position
	return nil
}

func (s *mockPositionStore) Find(ctx context.Context, account, assetID string) (*core.Position, bool, error) {
	if p, ok := s.positions[key(account, assetID)]; ok {
		return p, false, nil
	}
	return &core.Position{}, true, nil
}

func (s *mockPositionStore) FindByAccount(ctx context.Context, account string) ([]*core.Position, error) {
	var out []*core.Position
	for _, p := range s.positions {
		if p.Account == account {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *mockPositionStore) Update(ctx context.Context, tx *db.DB, position *core.Position) error {
	s.positions[key(position.Account, position.AssetID)] = position
	return nil
}

func (s *mockPositionStore) Delete(ctx context.Context, tx *db.DB, position *core.Position) error {
	delete(s.positions, key(position.Account, position.AssetID))
	return nil
}

func (s *mockPositionStore) Debtors(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (s *mockPositionStore) All(ctx context.Context) ([]*core.Position, error) {
	var out []*core.Position
	for _, p := range s.positions {
		out = append(out, p)
	}
	return out, nil
}

type mockAccountStore struct {
	accounts map[string]*core.Account
}

func (s *mockAccountStore) Save(ctx context.Context, tx *db.DB, account *core.Account) error {
	s.accounts[account.Address] = account
	return nil
}

func (s *mockAccountStore) Find(ctx context.Context, address string) (*core.Account, bool, error) {
	if a, ok := s.accounts[address]; ok {
		return a, false, nil
	}
	return &core.Account{}, true, nil
}

func (s *mockAccountStore) Update(ctx context.Context, tx *db.DB, account *core.Account) error {
	s.accounts[account.Address] = account
	return nil
}

// mockAccountService feeds Exit a canned hypothetical result
type mockAccountService struct {
	liquidity core.LiquidityData
}

func (s *mockAccountService) CalculateLiquidity(ctx context.Context, account string, tolerance core.PriceError) (*core.LiquidityData, error) {
	return &s.liquidity, nil
}

func (s *mockAccountService) HypotheticalLiquidity(ctx context.Context, account, assetID string, redeemShares, borrowAmount decimal.Decimal, tolerance core.PriceError) (*core.LiquidityData, error) {
	return &s.liquidity, nil
}

func (s *mockAccountService) LiquidationSeverity(ctx context.Context, account, debtAssetID, collateralAssetID string) (*core.SeverityData, error) {
	return &core.SeverityData{}, nil
}

func (s *mockAccountService) AssessBadDebt(ctx context.Context, account string) (*core.BadDebtData, error) {
	return &core.BadDebtData{}, nil
}

func newTestService() (core.ILedgerService, *mockPositionStore, *mockAccountService) {
	positions := &mockPositionStore{positions: make(map[string]*core.Position)}
	accounts := &mockAccountStore{accounts: make(map[string]*core.Account)}
	accountSrv := &mockAccountService{}
	cfg := &core.Config{App: core.App{CooldownSeconds: 60}}

	return New(nil, cfg, accounts, positions, accountSrv), positions, accountSrv
}

func TestEnroll(t *testing.T) {
	srv, positions, _ := newTestService()
	ctx := context.Background()

	require.Nil(t, srv.Enroll(ctx, "alice", "cbtc"))

	p, notFound, _ := positions.Find(ctx, "alice", "cbtc")
	require.False(t, notFound)
	assert.Equal(t, core.PositionStatusActive, p.Status)

	// enrolling twice is a no-op
	require.Nil(t, srv.Enroll(ctx, "alice", "cbtc"))

	p.Status = core.PositionStatusInactive
	require.Nil(t, srv.Enroll(ctx, "alice", "cbtc"))
	assert.Equal(t, core.PositionStatusActive, p.Status)
}

func TestExitLifecycle(t *testing.T) {
	srv, positions, _ := newTestService()
	ctx := context.Background()

	require.Nil(t, srv.Enroll(ctx, "alice", "cbtc"))

	// first pass parks the position, second pass prunes it
	require.Nil(t, srv.Exit(ctx, "alice", "cbtc"))
	p, _, _ := positions.Find(ctx, "alice", "cbtc")
	assert.Equal(t, core.PositionStatusPendingExit, p.Status)

	require.Nil(t, srv.Exit(ctx, "alice", "cbtc"))
	_, notFound, _ := positions.Find(ctx, "alice", "cbtc")
	assert.True(t, notFound)

	assert.Equal(t, core.ErrPositionNotFound, srv.Exit(ctx, "alice", "cbtc"))
}

func TestExitKeepsPostedCollateral(t *testing.T) {
	srv, positions, _ := newTestService()
	ctx := context.Background()

	require.Nil(t, srv.RecordCollateralPosted(ctx, "alice", "cbtc", decimal.RequireFromString("5")))
	require.Nil(t, srv.Exit(ctx, "alice", "cbtc"))

	// the confirm pass must not destroy the row while collateral is posted
	assert.Equal(t, core.ErrOperationForbidden, srv.Exit(ctx, "alice", "cbtc"))

	p, notFound, _ := positions.Find(ctx, "alice", "cbtc")
	require.False(t, notFound)
	assert.Equal(t, "5", p.CollateralPosted.String())
	assert.Equal(t, core.PositionStatusPendingExit, p.Status)

	// withdrawing reactivates; a fresh request + confirm then prunes
	require.Nil(t, srv.RecordCollateralPosted(ctx, "alice", "cbtc", decimal.RequireFromString("-5")))
	require.Nil(t, srv.Exit(ctx, "alice", "cbtc"))
	require.Nil(t, srv.Exit(ctx, "alice", "cbtc"))

	_, notFound, _ = positions.Find(ctx, "alice", "cbtc")
	assert.True(t, notFound)
}

func TestExitNonzeroDebt(t *testing.T) {
	srv, positions, _ := newTestService()
	ctx := context.Background()

	require.Nil(t, srv.RecordDebt(ctx, "alice", "dusd", decimal.RequireFromString("10")))
	assert.Equal(t, core.ErrNonzeroDebt, srv.Exit(ctx, "alice", "dusd"))

	p, _, _ := positions.Find(ctx, "alice", "dusd")
	assert.Equal(t, core.PositionStatusActive, p.Status)
}

func TestExitShortfall(t *testing.T) {
	srv, positions, accountSrv := newTestService()
	ctx := context.Background()

	require.Nil(t, srv.RecordCollateralPosted(ctx, "alice", "cbtc", decimal.RequireFromString("5")))
	accountSrv.liquidity.Shortfall = decimal.RequireFromString("1")

	assert.Equal(t, core.ErrInsufficientCollateral, srv.Exit(ctx, "alice", "cbtc"))

	p, _, _ := positions.Find(ctx, "alice", "cbtc")
	assert.Equal(t, core.PositionStatusActive, p.Status)
}

func TestRecordCollateralPosted(t *testing.T) {
	srv, positions, _ := newTestService()
	ctx := context.Background()

	assert.Equal(t, core.ErrInvalidAmount, srv.RecordCollateralPosted(ctx, "alice", "cbtc", decimal.RequireFromString("-1")))

	require.Nil(t, srv.RecordCollateralPosted(ctx, "alice", "cbtc", decimal.RequireFromString("5")))
	require.Nil(t, srv.RecordCollateralPosted(ctx, "alice", "cbtc", decimal.RequireFromString("-2")))

	p, _, _ := positions.Find(ctx, "alice", "cbtc")
	assert.Equal(t, "3", p.CollateralPosted.String())

	// overdraw leaves the balance untouched
	assert.Equal(t, core.ErrInvalidAmount, srv.RecordCollateralPosted(ctx, "alice", "cbtc", decimal.RequireFromString("-4")))
	assert.Equal(t, "3", p.CollateralPosted.String())
}

func TestRecordDebt(t *testing.T) {
	srv, positions, _ := newTestService()
	ctx := context.Background()

	require.Nil(t, srv.RecordDebt(ctx, "alice", "dusd", decimal.RequireFromString("10")))
	require.Nil(t, srv.RecordDebt(ctx, "alice", "dusd", decimal.RequireFromString("-10")))

	p, _, _ := positions.Find(ctx, "alice", "dusd")
	assert.True(t, p.DebtPrincipal.IsZero())

	assert.Equal(t, core.ErrInvalidAmount, srv.RecordDebt(ctx, "alice", "dusd", decimal.RequireFromString("-1")))
}

func TestCooldownGatesActions(t *testing.T) {
	srv, _, _ := newTestService()
	ctx := context.Background()

	require.Nil(t, srv.RecordCollateralPosted(ctx, "alice", "cbtc", decimal.RequireFromString("5")))
	require.Nil(t, srv.RecordDebt(ctx, "alice", "dusd", decimal.RequireFromString("2")))
	require.Nil(t, srv.TouchCooldown(ctx, "alice"))

	// posting more is allowed within the window, pulling out is not
	assert.Nil(t, srv.RecordCollateralPosted(ctx, "alice", "cbtc", decimal.RequireFromString("1")))
	assert.Equal(t, core.ErrCooldownActive, srv.RecordCollateralPosted(ctx, "alice", "cbtc", decimal.RequireFromString("-1")))
	assert.Equal(t, core.ErrCooldownActive, srv.RecordDebt(ctx, "alice", "dusd", decimal.RequireFromString("-1")))
	assert.Equal(t, core.ErrCooldownActive, srv.Exit(ctx, "alice", "cbtc"))
}

func TestCooldown(t *testing.T) {
	srv, _, _ := newTestService()
	ctx := context.Background()

	active, err := srv.CooldownActive(ctx, "alice")
	require.Nil(t, err)
	assert.False(t, active)

	require.Nil(t, srv.TouchCooldown(ctx, "alice"))

	active, err = srv.CooldownActive(ctx, "alice")
	require.Nil(t, err)
	assert.True(t, active)
}
