// Package account defines the Account aggregate and its balance invariants.
//
// Invariants:
//   - An account number is unique and never changes after creation.
//   - The balance is an exact decimal and can never be negative.
//   - The balance is mutated only through Credit and Debit.
package account

import (
	"errors"
	"time"

	"github.com/corebankhq/corebank/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds is returned when a debit would drive the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAccountType is returned when an unknown account type is provided.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrMissingCustomer is returned when an account is built without an owning customer.
	ErrMissingCustomer = errors.New("account must reference a customer")

	// ErrMissingNumber is returned when an account is built without a number.
	ErrMissingNumber = errors.New("account number is required")
)

// Type classifies an account.
type Type string

const (
	// TypeSavings is a savings account.
	TypeSavings Type = "SAVINGS"
	// TypeCurrent is a current (checking) account.
	TypeCurrent Type = "CURRENT"
	// TypeInternal marks bank-owned accounts such as the cash clearing account.
	TypeInternal Type = "INTERNAL"
)

// Valid reports whether t is a known account type.
func (t Type) Valid() bool {
	switch t {
	case TypeSavings, TypeCurrent, TypeInternal:
		return true
	}
	return false
}

// Account represents a customer's financial account. It acts as an aggregate
// root: all balance changes go through Credit and Debit so the non-negative
// balance invariant always holds.
type Account struct {
	Number     string
	Type       Type
	Balance    decimal.Decimal
	CustomerID uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Builder provides a fluent API for constructing Account instances, ensuring
// only valid accounts are produced.
type Builder struct {
	number     string
	accType    Type
	balance    decimal.Decimal
	customerID uuid.UUID
	createdAt  time.Time
	updatedAt  time.Time
}

// New creates a Builder with sensible defaults.
func New() *Builder {
	return &Builder{
		accType:   TypeSavings,
		createdAt: time.Now(),
	}
}

// WithNumber sets the account number. Mandatory.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithType sets the account type.
func (b *Builder) WithType(t Type) *Builder {
	b.accType = t
	return b
}

// WithCustomerID sets the owning customer. Mandatory for customer accounts.
func (b *Builder) WithCustomerID(id uuid.UUID) *Builder {
	b.customerID = id
	return b
}

// WithBalance sets the initial balance. Intended for hydrating an existing
// account from the store or for test setup.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithCreatedAt sets the creation timestamp, for hydration from the store.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp, for hydration from the store.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates all invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.number == "" {
		return nil, ErrMissingNumber
	}
	if !b.accType.Valid() {
		return nil, ErrInvalidAccountType
	}
	if b.customerID == uuid.Nil && b.accType != TypeInternal {
		return nil, ErrMissingCustomer
	}
	if b.balance.IsNegative() {
		return nil, ErrInsufficientFunds
	}
	return &Account{
		Number:     b.number,
		Type:       b.accType,
		Balance:    b.balance,
		CustomerID: b.customerID,
		CreatedAt:  b.createdAt,
		UpdatedAt:  b.updatedAt,
	}, nil
}

// Credit increases the balance by amount. Amount must be positive.
func (a *Account) Credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = time.Now()
	return nil
}

// Debit decreases the balance by amount. Amount must be positive and the
// resulting balance must not be negative; on failure the balance is unchanged.
func (a *Account) Debit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	newBalance := a.Balance.Sub(amount)
	if newBalance.IsNegative() {
		return ErrInsufficientFunds
	}
	a.Balance = newBalance
	a.UpdatedAt = time.Now()
	return nil
}
