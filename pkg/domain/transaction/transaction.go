// Package transaction defines the immutable record of a committed money
// movement and the validation applied before any state is touched.
package transaction

import (
	"errors"
	"time"

	"github.com/corebankhq/corebank/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrSelfTransfer is returned when a transfer names the same source and target account.
	ErrSelfTransfer = errors.New("source and target accounts cannot be the same")

	// ErrTargetRequired is returned when a transfer omits the target account.
	ErrTargetRequired = errors.New("transfer requires a target account")

	// ErrDuplicate is returned when a reference id has already been committed or reserved.
	ErrDuplicate = errors.New("duplicate transaction attempt")

	// ErrUnsupportedType is returned for an unknown transaction type.
	ErrUnsupportedType = errors.New("unsupported transaction type")
)

// TxType classifies a money movement.
type TxType string

const (
	// Deposit moves money from the bank's cash clearing account into a customer account.
	Deposit TxType = "DEPOSIT"
	// Withdrawal moves money from a customer account into the cash clearing account.
	Withdrawal TxType = "WITHDRAWAL"
	// Transfer moves money between two customer accounts.
	Transfer TxType = "TRANSFER"
)

// Valid reports whether t is a known transaction type.
func (t TxType) Valid() bool {
	switch t {
	case Deposit, Withdrawal, Transfer:
		return true
	}
	return false
}

// Transaction is the immutable record of one committed movement. The
// ReferenceID doubles as the idempotency key: it is generated server-side
// from a 128-bit random space and reserved exactly once.
type Transaction struct {
	ReferenceID   string
	AccountNumber string
	TargetAccount string
	Amount        decimal.Decimal
	Type          TxType
	Narration     string
	CreatedBy     string
	CreatedAt     time.Time
}

// New validates a movement intent and returns a Transaction ready to commit.
// Validation is fail-fast and ordered: amount, type, then transfer rules.
// No state is mutated here.
func New(accountNumber, targetAccount string, amount decimal.Decimal, txType TxType, narration, createdBy string) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if !txType.Valid() {
		return nil, ErrUnsupportedType
	}
	if txType == Transfer {
		if targetAccount == "" {
			return nil, ErrTargetRequired
		}
		if accountNumber == targetAccount {
			return nil, ErrSelfTransfer
		}
	} else {
		targetAccount = ""
	}
	return &Transaction{
		ReferenceID:   uuid.NewString(),
		AccountNumber: accountNumber,
		TargetAccount: targetAccount,
		Amount:        amount,
		Type:          txType,
		Narration:     narration,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now(),
	}, nil
}
