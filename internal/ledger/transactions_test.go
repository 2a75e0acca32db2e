package ledger

import (
	"testing"
	"time"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/apperr"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeAndExpenseUpdateBalances(t *testing.T) {
	s := newTestService(t)

	a1 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Cash")
	s1 := mkSubAccount(t, s, tenantA, a1.ID, "Wallet")

	mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeIncome, AmountCent: 5000,
	})
	assert.Equal(t, int64(5000), subBalance(t, s, tenantA, s1.ID))
	assert.Equal(t, int64(5000), accountBalance(t, s, tenantA, a1.ID))

	mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeExpense, AmountCent: 2000,
	})
	assert.Equal(t, int64(3000), subBalance(t, s, tenantA, s1.ID))
	assert.Equal(t, int64(3000), accountBalance(t, s, tenantA, a1.ID))
}

func TestCreateTransactionValidation(t *testing.T) {
	s := newTestService(t)

	a1 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Cash")
	s1 := mkSubAccount(t, s, tenantA, a1.ID, "Wallet")
	a2 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Bank")

	_, err := s.CreateTransaction(tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID, Type: "refund", AmountCent: 100,
	})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "transactionType", ve.Field)

	_, err = s.CreateTransaction(tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID, Type: models.TransactionTypeIncome, AmountCent: 0,
	})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "amount", ve.Field)

	// sub-account under a different parent
	_, err = s.CreateTransaction(tenantA, CreateTransactionParams{
		AccountID: a2.ID, SubAccountID: s1.ID, Type: models.TransactionTypeIncome, AmountCent: 100,
	})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "subAccountId", ve.Field)

	// transfer without a destination
	_, err = s.CreateTransaction(tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID, Type: models.TransactionTypeTransfer, AmountCent: 100,
	})
	require.ErrorAs(t, err, &ve)

	// cross-tenant sub-account
	_, err = s.CreateTransaction(tenantB, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID, Type: models.TransactionTypeIncome, AmountCent: 100,
	})
	var ae *apperr.AuthorizationError
	require.ErrorAs(t, err, &ae)
}

func TestTransferCreatesReciprocalPair(t *testing.T) {
	s := newTestService(t)

	a1 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Cash")
	s1 := mkSubAccount(t, s, tenantA, a1.ID, "Wallet")
	a2 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Bank")
	s2 := mkSubAccount(t, s, tenantA, a2.ID, "Checking")

	mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeIncome, AmountCent: 5000,
	})
	mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeExpense, AmountCent: 2000,
	})

	out := mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeTransfer, AmountCent: 1000,
		ToAccountID: a2.ID, ToSubAccountID: s2.ID,
	})

	require.Equal(t, models.TransferTypeOutgoing, out.TransferType)
	require.NotEmpty(t, out.LinkedTransactionID)
	assert.Equal(t, a2.ID, out.ToAccountID)
	assert.Equal(t, s2.ID, out.ToSubAccountID)

	in, err := s.GetTransaction(tenantA, out.LinkedTransactionID)
	require.NoError(t, err)
	assert.Equal(t, models.TransferTypeIncoming, in.TransferType)
	assert.Equal(t, out.ID, in.LinkedTransactionID)
	assert.Equal(t, a2.ID, in.AccountID)
	assert.Equal(t, s2.ID, in.SubAccountID)
	assert.Equal(t, a1.ID, in.FromAccountID)
	assert.Equal(t, s1.ID, in.FromSubAccountID)
	assert.Equal(t, out.AmountCent, in.AmountCent)

	assert.Equal(t, int64(2000), subBalance(t, s, tenantA, s1.ID))
	assert.Equal(t, int64(1000), subBalance(t, s, tenantA, s2.ID))
	assert.Equal(t, int64(2000), accountBalance(t, s, tenantA, a1.ID))
	assert.Equal(t, int64(1000), accountBalance(t, s, tenantA, a2.ID))
}

func TestDeleteTransferHalfRemovesBoth(t *testing.T) {
	s := newTestService(t)

	a1 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Cash")
	s1 := mkSubAccount(t, s, tenantA, a1.ID, "Wallet")
	a2 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Bank")
	s2 := mkSubAccount(t, s, tenantA, a2.ID, "Checking")

	mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeIncome, AmountCent: 5000,
	})
	mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeExpense, AmountCent: 2000,
	})
	out := mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeTransfer, AmountCent: 1000,
		ToAccountID: a2.ID, ToSubAccountID: s2.ID,
	})

	require.NoError(t, s.DeleteTransaction(tenantA, out.ID))

	_, err := s.GetTransaction(tenantA, out.ID)
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	_, err = s.GetTransaction(tenantA, out.LinkedTransactionID)
	require.ErrorAs(t, err, &nf)

	assert.Equal(t, int64(3000), subBalance(t, s, tenantA, s1.ID))
	assert.Zero(t, subBalance(t, s, tenantA, s2.ID))
	assert.Equal(t, int64(3000), accountBalance(t, s, tenantA, a1.ID))
	assert.Zero(t, accountBalance(t, s, tenantA, a2.ID))
}

func TestDeleteIncomingHalfRemovesBoth(t *testing.T) {
	s := newTestService(t)

	a1 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Cash")
	s1 := mkSubAccount(t, s, tenantA, a1.ID, "Wallet")
	a2 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Bank")
	s2 := mkSubAccount(t, s, tenantA, a2.ID, "Checking")

	out := mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeTransfer, AmountCent: 1000,
		ToAccountID: a2.ID, ToSubAccountID: s2.ID,
	})

	require.NoError(t, s.DeleteTransaction(tenantA, out.LinkedTransactionID))

	var count int64
	require.NoError(t, s.db.Model(&models.Transaction{}).
		Where("tenant_id = ?", tenantA).Count(&count).Error)
	assert.Zero(t, count)
	assert.Zero(t, subBalance(t, s, tenantA, s1.ID))
	assert.Zero(t, subBalance(t, s, tenantA, s2.ID))
}

func TestDeleteTransferToleratesMissingCounterpart(t *testing.T) {
	s := newTestService(t)

	a1 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Cash")
	s1 := mkSubAccount(t, s, tenantA, a1.ID, "Wallet")
	a2 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Bank")
	s2 := mkSubAccount(t, s, tenantA, a2.ID, "Checking")

	out := mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeTransfer, AmountCent: 1000,
		ToAccountID: a2.ID, ToSubAccountID: s2.ID,
	})

	// simulate a dangling link
	require.NoError(t, s.db.Delete(&models.Transaction{}, "id = ?", out.LinkedTransactionID).Error)

	require.NoError(t, s.DeleteTransaction(tenantA, out.ID))
	assert.Zero(t, subBalance(t, s, tenantA, s1.ID))
}

func TestSelfTransferNetsToZero(t *testing.T) {
	s := newTestService(t)

	a1 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Cash")
	s1 := mkSubAccount(t, s, tenantA, a1.ID, "Wallet")

	mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeIncome, AmountCent: 500,
	})
	mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeTransfer, AmountCent: 300,
		ToAccountID: a1.ID, ToSubAccountID: s1.ID,
	})

	// outgoing and incoming halves cancel out on the same sub-account
	assert.Equal(t, int64(500), subBalance(t, s, tenantA, s1.ID))
	assert.Equal(t, int64(500), accountBalance(t, s, tenantA, a1.ID))
}

func TestUpdateTransactionPropagatesToCounterpart(t *testing.T) {
	s := newTestService(t)

	a1 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Cash")
	s1 := mkSubAccount(t, s, tenantA, a1.ID, "Wallet")
	a2 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Bank")
	s2 := mkSubAccount(t, s, tenantA, a2.ID, "Checking")

	out := mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeTransfer, AmountCent: 1000,
		Description: "rent", ToAccountID: a2.ID, ToSubAccountID: s2.ID,
	})

	amount := int64(1500)
	desc := "rent and utilities"
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	tags := []string{"home", "monthly"}
	_, err := s.UpdateTransaction(tenantA, out.ID, UpdateTransactionParams{
		AmountCent:  &amount,
		Description: &desc,
		OccurredAt:  &date,
		Tags:        &tags,
	})
	require.NoError(t, err)

	in, err := s.GetTransaction(tenantA, out.LinkedTransactionID)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), in.AmountCent)
	assert.Equal(t, "rent and utilities", in.Description)
	assert.Equal(t, "home,monthly", in.Tags)
	assert.True(t, in.OccurredAt.Equal(date))

	assert.Equal(t, int64(-1500), subBalance(t, s, tenantA, s1.ID))
	assert.Equal(t, int64(1500), subBalance(t, s, tenantA, s2.ID))
}

func TestUpdateTransactionDropsImmutableRefs(t *testing.T) {
	s := newTestService(t)

	a1 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Cash")
	s1 := mkSubAccount(t, s, tenantA, a1.ID, "Wallet")
	a2 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Bank")
	s2 := mkSubAccount(t, s, tenantA, a2.ID, "Checking")

	txn := mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeIncome, AmountCent: 100,
	})

	// moving the entry to another account/sub-account is ignored, not rejected
	updated, err := s.UpdateTransaction(tenantA, txn.ID, UpdateTransactionParams{
		AccountID:    &a2.ID,
		SubAccountID: &s2.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, a1.ID, updated.AccountID)
	assert.Equal(t, s1.ID, updated.SubAccountID)
}

func TestUpdateTransactionTypeRules(t *testing.T) {
	s := newTestService(t)

	a1 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Cash")
	s1 := mkSubAccount(t, s, tenantA, a1.ID, "Wallet")

	txn := mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeIncome, AmountCent: 100,
	})
	require.Equal(t, int64(100), subBalance(t, s, tenantA, s1.ID))

	expense := models.TransactionTypeExpense
	_, err := s.UpdateTransaction(tenantA, txn.ID, UpdateTransactionParams{Type: &expense})
	require.NoError(t, err)
	assert.Equal(t, int64(-100), subBalance(t, s, tenantA, s1.ID))

	transfer := models.TransactionTypeTransfer
	_, err = s.UpdateTransaction(tenantA, txn.ID, UpdateTransactionParams{Type: &transfer})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestListTransactionsFilters(t *testing.T) {
	s := newTestService(t)

	a1 := mkAccount(t, s, tenantA, models.AccountTypeAsset, "Cash")
	s1 := mkSubAccount(t, s, tenantA, a1.ID, "Wallet")

	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)

	mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeIncome, AmountCent: 100,
		Category: "salary", OccurredAt: jan,
	})
	mkTransaction(t, s, tenantA, CreateTransactionParams{
		AccountID: a1.ID, SubAccountID: s1.ID,
		Type: models.TransactionTypeExpense, AmountCent: 50,
		Category: "food", OccurredAt: feb,
	})

	txns, total, err := s.ListTransactions(tenantA, ListTransactionsParams{SubAccountID: s1.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, txns, 2)
	// newest first
	assert.Equal(t, "food", txns[0].Category)

	txns, total, err = s.ListTransactions(tenantA, ListTransactionsParams{
		SubAccountID: s1.ID, Type: models.TransactionTypeIncome,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, txns, 1)
	assert.Equal(t, "salary", txns[0].Category)

	txns, _, err = s.ListTransactions(tenantA, ListTransactionsParams{
		Start: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "food", txns[0].Category)

	// another tenant sees nothing
	_, total, err = s.ListTransactions(tenantB, ListTransactionsParams{})
	require.NoError(t, err)
	assert.Zero(t, total)
}
