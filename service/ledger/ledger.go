package ledger

import (
	"context"
	"time"

	"crossmargin/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type ledgerService struct {
	db             *db.DB
	config         *core.Config
	accountStore   core.IAccountStore
	positionStore  core.IPositionStore
	accountService core.IAccountService
}

// New new ledger service
func New(
	db *db.DB,
	config *core.Config,
	accountStore core.IAccountStore,
	positionStore core.IPositionStore,
	accountSrv core.IAccountService,
) core.ILedgerService {
	return &ledgerService{
		db:             db,
		config:         config,
		accountStore:   accountStore,
		positionStore:  positionStore,
		accountService: accountSrv,
	}
}

func (s *ledgerService) Enroll(ctx context.Context, account, assetID string) error {
	position, isRecordNotFound, err := s.positionStore.Find(ctx, account, assetID)
	if err != nil {
		return err
	}

	if isRecordNotFound {
		position = &core.Position{
			Account:          account,
			AssetID:          assetID,
			Status:           core.PositionStatusActive,
			CollateralPosted: decimal.Zero,
			DebtPrincipal:    decimal.Zero,
		}
		return s.positionStore.Save(ctx, s.db, position)
	}

	if position.Status == core.PositionStatusActive {
		return nil
	}

	position.Status = core.PositionStatusActive
	return s.positionStore.Update(ctx, s.db, position)
}

func (s *ledgerService) Exit(ctx context.Context, account, assetID string) error {
	log := logger.FromContext(ctx).WithField("service", "ledger")

	position, isRecordNotFound, err := s.positionStore.Find(ctx, account, assetID)
	if err != nil {
		return err
	}
	if isRecordNotFound {
		return core.ErrPositionNotFound
	}

	switch position.Status {
	case core.PositionStatusInactive:
		return core.ErrPositionNotFound
	case core.PositionStatusPendingExit:
		// confirm pass: prune only once both balances are verifiably zero,
		// posted collateral must be withdrawn before the row is destroyed
		if position.DebtPrincipal.IsPositive() {
			return core.ErrNonzeroDebt
		}
		if position.CollateralPosted.IsPositive() {
			return core.ErrOperationForbidden
		}
		position.Status = core.PositionStatusInactive
		if err := s.positionStore.Update(ctx, s.db, position); err != nil {
			return err
		}
		return s.positionStore.Delete(ctx, s.db, position)
	}

	if position.DebtPrincipal.IsPositive() {
		return core.ErrNonzeroDebt
	}

	if err := s.checkCooldown(ctx, account); err != nil {
		return err
	}

	// removing the asset must not leave the rest of the account short
	liquidity, err := s.accountService.HypotheticalLiquidity(ctx, account, assetID, position.CollateralPosted, decimal.Zero, core.PriceOK)
	if err != nil {
		return err
	}
	if liquidity.Shortfall.IsPositive() {
		log.Infoln("exit denied: shortfall", liquidity.Shortfall)
		return core.ErrInsufficientCollateral
	}

	position.Status = core.PositionStatusPendingExit
	return s.positionStore.Update(ctx, s.db, position)
}

func (s *ledgerService) RecordCollateralPosted(ctx context.Context, account, assetID string, delta decimal.Decimal) error {
	position, isRecordNotFound, err := s.positionStore.Find(ctx, account, assetID)
	if err != nil {
		return err
	}

	if isRecordNotFound {
		if delta.IsNegative() {
			return core.ErrInvalidAmount
		}
		position = &core.Position{
			Account:          account,
			AssetID:          assetID,
			Status:           core.PositionStatusActive,
			CollateralPosted: delta,
			DebtPrincipal:    decimal.Zero,
		}
		return s.positionStore.Save(ctx, s.db, position)
	}

	posted := position.CollateralPosted.Add(delta)
	if posted.IsNegative() {
		return core.ErrInvalidAmount
	}

	// withdrawals are gated by the cooldown window
	if delta.IsNegative() {
		if err := s.checkCooldown(ctx, account); err != nil {
			return err
		}
	}

	position.CollateralPosted = posted
	if position.Status != core.PositionStatusActive {
		position.Status = core.PositionStatusActive
	}

	return s.positionStore.Update(ctx, s.db, position)
}

func (s *ledgerService) RecordDebt(ctx context.Context, account, assetID string, delta decimal.Decimal) error {
	position, isRecordNotFound, err := s.positionStore.Find(ctx, account, assetID)
	if err != nil {
		return err
	}

	if isRecordNotFound {
		if delta.IsNegative() {
			return core.ErrInvalidAmount
		}
		position = &core.Position{
			Account:          account,
			AssetID:          assetID,
			Status:           core.PositionStatusActive,
			CollateralPosted: decimal.Zero,
			DebtPrincipal:    delta,
		}
		return s.positionStore.Save(ctx, s.db, position)
	}

	principal := position.DebtPrincipal.Add(delta)
	if principal.IsNegative() {
		return core.ErrInvalidAmount
	}

	// repayments are gated by the cooldown window
	if delta.IsNegative() {
		if err := s.checkCooldown(ctx, account); err != nil {
			return err
		}
	}

	position.DebtPrincipal = principal
	if position.Status != core.PositionStatusActive {
		position.Status = core.PositionStatusActive
	}

	return s.positionStore.Update(ctx, s.db, position)
}

func (s *ledgerService) checkCooldown(ctx context.Context, account string) error {
	active, err := s.CooldownActive(ctx, account)
	if err != nil {
		return err
	}
	if active {
		return core.ErrCooldownActive
	}
	return nil
}

func (s *ledgerService) TouchCooldown(ctx context.Context, address string) error {
	until := time.Now().Add(s.config.App.Cooldown())

	account, isRecordNotFound, err := s.accountStore.Find(ctx, address)
	if err != nil {
		return err
	}

	if isRecordNotFound {
		account = &core.Account{
			Address:       address,
			CooldownUntil: until,
		}
		return s.accountStore.Save(ctx, s.db, account)
	}

	account.CooldownUntil = until
	return s.accountStore.Update(ctx, s.db, account)
}

func (s *ledgerService) CooldownActive(ctx context.Context, address string) (bool, error) {
	account, isRecordNotFound, err := s.accountStore.Find(ctx, address)
	if err != nil {
		return false, err
	}
	if isRecordNotFound {
		return false, nil
	}

	return account.CooldownUntil.After(time.Now()), nil
}
