package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"journalx/internal/models"
	"journalx/internal/repository"
)

// LedgerService mutates the account balance only through operations that
// append an immutable audit record alongside the balance change. Every
// operation runs with the settings row locked so concurrent sessions cannot
// lose updates.
type LedgerService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

type LedgerResult struct {
	Balance decimal.Decimal
	Record  *models.DepositRecord
}

func (s *LedgerService) Deposit(ctx context.Context, uid string, amount decimal.Decimal) (*LedgerResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	return s.mutate(ctx, uid, models.LedgerKindDeposit, amount, func(balance decimal.Decimal) (decimal.Decimal, error) {
		return balance.Add(amount), nil
	})
}

func (s *LedgerService) Withdraw(ctx context.Context, uid string, amount decimal.Decimal) (*LedgerResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	return s.mutate(ctx, uid, models.LedgerKindWithdraw, amount, func(balance decimal.Decimal) (decimal.Decimal, error) {
		if amount.GreaterThan(balance) {
			return decimal.Zero, ErrInsufficientFunds
		}
		return balance.Sub(amount), nil
	})
}

func (s *LedgerService) SetBalance(ctx context.Context, uid string, amount decimal.Decimal) (*LedgerResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	return s.mutate(ctx, uid, models.LedgerKindSet, amount, func(decimal.Decimal) (decimal.Decimal, error) {
		return amount, nil
	})
}

type BlownResult struct {
	PreviousBalance decimal.Decimal
	Record          *models.BlownAccountRecord
}

// MarkBlown forces the balance to zero, recording the balance immediately
// prior.
func (s *LedgerService) MarkBlown(ctx context.Context, uid string) (*BlownResult, error) {
	var out BlownResult
	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		settings, err := s.settingsForUpdate(ctx, tx, uid)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		record := &models.BlownAccountRecord{
			UID:             uid,
			RecordedAt:      now,
			PreviousBalance: settings.AccountBalance,
		}
		if err := s.Repo.InsertBlownAccountRecordTx(ctx, tx, record); err != nil {
			return err
		}
		out.PreviousBalance = settings.AccountBalance
		out.Record = record
		settings.AccountBalance = decimal.Zero
		return s.Repo.SaveUserSettingsTx(ctx, tx, settings)
	})
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("account marked blown",
			zap.String("uid", uid),
			zap.String("previous_balance", out.PreviousBalance.String()),
		)
	}
	return &out, nil
}

func (s *LedgerService) mutate(ctx context.Context, uid, kind string, amount decimal.Decimal, apply func(decimal.Decimal) (decimal.Decimal, error)) (*LedgerResult, error) {
	var out LedgerResult
	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		settings, err := s.settingsForUpdate(ctx, tx, uid)
		if err != nil {
			return err
		}
		next, err := apply(settings.AccountBalance)
		if err != nil {
			return err
		}
		record := &models.DepositRecord{
			UID:          uid,
			RecordedAt:   time.Now().UTC(),
			Amount:       amount,
			Kind:         kind,
			BalanceAfter: next,
		}
		if err := s.Repo.InsertDepositRecordTx(ctx, tx, record); err != nil {
			return err
		}
		settings.AccountBalance = next
		if err := s.Repo.SaveUserSettingsTx(ctx, tx, settings); err != nil {
			return err
		}
		out.Balance = next
		out.Record = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// settingsForUpdate loads the locked settings row, creating it on first use.
func (s *LedgerService) settingsForUpdate(ctx context.Context, tx *gorm.DB, uid string) (*models.UserSettings, error) {
	settings, err := s.Repo.GetUserSettingsForUpdateTx(ctx, tx, uid)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &models.UserSettings{
			UID:            uid,
			AccountBalance: decimal.Zero,
		}
		if err := s.Repo.SaveUserSettingsTx(ctx, tx, settings); err != nil {
			return nil, err
		}
	}
	return settings, nil
}
