// Package ledger defines the immutable double-entry journal records.
//
// Every financial movement is recorded as a balanced pair: one DEBIT and one
// CREDIT entry sharing a transaction id and amount. Entries are never updated
// or deleted once written.
package ledger

import (
	"errors"
	"time"

	"github.com/corebankhq/corebank/pkg/domain"
	"github.com/shopspring/decimal"
)

// ErrSameAccount is returned when a double entry would debit and credit the
// same account.
var ErrSameAccount = errors.New("debit and credit accounts must differ")

// EntryType marks which side of a movement an entry records.
type EntryType string

const (
	// Debit records money leaving an account.
	Debit EntryType = "DEBIT"
	// Credit records money entering an account.
	Credit EntryType = "CREDIT"
)

// Entry is one side of a double-entry movement. Immutable once persisted.
type Entry struct {
	AccountNumber string
	TransactionID string
	Amount        decimal.Decimal
	Type          EntryType
	Narration     string
	CreatedAt     time.Time
}

// Pair is a balanced double entry: exactly one debit and one credit for the
// same transaction id and amount.
type Pair struct {
	Debit  Entry
	Credit Entry
}

// NewPair builds a balanced double entry debiting debitAccount and crediting
// creditAccount. Amount must be positive and the two accounts must differ.
func NewPair(debitAccount, creditAccount string, amount decimal.Decimal, transactionID, narration string) (Pair, error) {
	if !amount.IsPositive() {
		return Pair{}, domain.ErrInvalidAmount
	}
	if debitAccount == creditAccount {
		return Pair{}, ErrSameAccount
	}
	now := time.Now()
	return Pair{
		Debit: Entry{
			AccountNumber: debitAccount,
			TransactionID: transactionID,
			Amount:        amount,
			Type:          Debit,
			Narration:     "DEBIT: " + narration,
			CreatedAt:     now,
		},
		Credit: Entry{
			AccountNumber: creditAccount,
			TransactionID: transactionID,
			Amount:        amount,
			Type:          Credit,
			Narration:     "CREDIT: " + narration,
			CreatedAt:     now,
		},
	}, nil
}

// BalanceOf derives the account balance implied by the journal:
// credits add, debits subtract. Summation order is irrelevant.
func BalanceOf(entries []Entry) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		if e.Type == Credit {
			balance = balance.Add(e.Amount)
		} else {
			balance = balance.Sub(e.Amount)
		}
	}
	return balance
}
