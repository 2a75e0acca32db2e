package ledger

import (
	"errors"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/apperr"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/models"

	"go.uber.org/zap"
)

// balanceTarget names one sub-account/account pair whose cached
// balances need recomputing after a mutation.
type balanceTarget struct {
	accountID    string
	subAccountID string
}

// RecomputeSubAccountBalance re-derives a sub-account's cached balance
// by folding its whole transaction log with the sign rule and writing
// the result back. It is idempotent: with an unchanged log it always
// stores the same value. The read-fold-write cycle carries no
// concurrency check, so of two overlapping recomputations the last
// write wins.
func (s *Service) RecomputeSubAccountBalance(tenantID, subAccountID string) (int64, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return 0, err
	}
	sub, err := s.getSubAccount(tenantID, subAccountID)
	if err != nil {
		return 0, err
	}

	var txns []models.Transaction
	if err := s.db.
		Where("tenant_id = ? AND sub_account_id = ?", tenantID, sub.ID).
		Find(&txns).Error; err != nil {
		return 0, err
	}

	var total int64
	for i := range txns {
		total += txns[i].SignedAmountCent()
	}

	if err := s.db.Model(sub).Update("balance_cent", total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// RecomputeAccountBalance re-derives an account's cached total from the
// current balance field of each child sub-account. This is a two-level
// aggregation over the cached child balances, not a scan of the
// transaction log.
func (s *Service) RecomputeAccountBalance(tenantID, accountID string) (int64, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return 0, err
	}
	account, err := s.getAccount(tenantID, accountID)
	if err != nil {
		return 0, err
	}

	var subs []models.SubAccount
	if err := s.db.
		Where("tenant_id = ? AND account_id = ?", tenantID, account.ID).
		Find(&subs).Error; err != nil {
		return 0, err
	}

	var total int64
	for i := range subs {
		total += subs[i].BalanceCent
	}

	if err := s.db.Model(account).Update("total_balance_cent", total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// recomputeTouched recomputes each distinct sub-account, then each
// distinct parent account. A target that no longer exists is skipped
// with a warning: recomputation is idempotent and safe to re-run once
// the log settles.
func (s *Service) recomputeTouched(tenantID string, targets ...balanceTarget) error {
	seenSub := make(map[string]bool, len(targets))
	for _, t := range targets {
		if t.subAccountID == "" || seenSub[t.subAccountID] {
			continue
		}
		seenSub[t.subAccountID] = true
		if _, err := s.RecomputeSubAccountBalance(tenantID, t.subAccountID); err != nil {
			var nf *apperr.NotFoundError
			if errors.As(err, &nf) {
				s.log.Warn("skipping balance recompute of missing sub-account",
					zap.String("tenant_id", tenantID),
					zap.String("sub_account_id", t.subAccountID))
				continue
			}
			return err
		}
	}

	seenAcc := make(map[string]bool, len(targets))
	for _, t := range targets {
		if t.accountID == "" || seenAcc[t.accountID] {
			continue
		}
		seenAcc[t.accountID] = true
		if _, err := s.RecomputeAccountBalance(tenantID, t.accountID); err != nil {
			var nf *apperr.NotFoundError
			if errors.As(err, &nf) {
				s.log.Warn("skipping balance recompute of missing account",
					zap.String("tenant_id", tenantID),
					zap.String("account_id", t.accountID))
				continue
			}
			return err
		}
	}
	return nil
}
