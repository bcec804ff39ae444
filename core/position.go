package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// PositionStatus position activation tri-state
//
// Inactive -> Active on first collateral post or borrow,
// Active -> PendingExit on a debt-free exit request,
// PendingExit -> Inactive once both balances are confirmed zero.
type PositionStatus int

const (
	// PositionStatusInactive never entered, or fully exited
	PositionStatusInactive PositionStatus = iota
	// PositionStatusPendingExit exited but not yet pruned
	PositionStatusPendingExit
	// PositionStatusActive position enrolled in the account's asset set
	PositionStatusActive
)

func (s PositionStatus) String() string {
	switch s {
	case PositionStatusPendingExit:
		return "pending_exit"
	case PositionStatusActive:
		return "active"
	default:
		return "inactive"
	}
}

// Position per-account per-asset ledger record
type Position struct {
	ID      uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Account string         `sql:"size:36;unique_index:position_idx" json:"account"`
	AssetID string         `sql:"size:36;unique_index:position_idx" json:"asset_id"`
	Status  PositionStatus `sql:"default:0" json:"status"`
	// collateral shares posted, meaningful on collateral-side markets only;
	// callers keep posted <= the account's raw token balance
	CollateralPosted decimal.Decimal `sql:"type:decimal(32,16)" json:"collateral_posted"`
	// outstanding debt balance, meaningful on debt-side markets only
	DebtPrincipal decimal.Decimal `sql:"type:decimal(32,16)" json:"debt_principal"`
	Version       int64           `sql:"default:0" json:"version"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPositionStore position store interface
type IPositionStore interface {
	Save(ctx context.Context, tx *db.DB, position *Position) error
	Find(ctx context.Context, account, assetID string) (*Position, bool, error)
	FindByAccount(ctx context.Context, account string) ([]*Position, error)
	Update(ctx context.Context, tx *db.DB, position *Position) error
	Delete(ctx context.Context, tx *db.DB, position *Position) error
	// Debtors lists accounts carrying nonzero debt on any asset
	Debtors(ctx context.Context) ([]string, error)
	All(ctx context.Context) ([]*Position, error)
}

// ILedgerService account position ledger operations
type ILedgerService interface {
	// Enroll adds the asset to the account's enrolled set
	Enroll(ctx context.Context, account, assetID string) error
	// Exit removes the asset; fails with ErrNonzeroDebt while debt remains
	// and with ErrInsufficientCollateral if removal would create a shortfall
	Exit(ctx context.Context, account, assetID string) error
	// RecordCollateralPosted applies an additive delta to posted collateral
	RecordCollateralPosted(ctx context.Context, account, assetID string, delta decimal.Decimal) error
	// RecordDebt applies an additive delta to the outstanding debt balance
	RecordDebt(ctx context.Context, account, assetID string, delta decimal.Decimal) error
	// TouchCooldown arms the account action cooldown window
	TouchCooldown(ctx context.Context, account string) error
	CooldownActive(ctx context.Context, account string) (bool, error)
}
