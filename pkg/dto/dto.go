// Package dto holds the read and report shapes exchanged between the service
// layer, the persistence layer, and external collaborators.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRead is the external view of an account.
type AccountRead struct {
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	CustomerID    uuid.UUID       `json:"customerId"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TransactionRead is the summary returned for a committed movement.
type TransactionRead struct {
	ReferenceID   string          `json:"referenceId"`
	AccountNumber string          `json:"accountNumber"`
	TargetAccount string          `json:"targetAccount,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Narration     string          `json:"narration"`
	Timestamp     time.Time       `json:"timestamp"`
}

// LedgerEntryRead is the external view of one journal entry.
type LedgerEntryRead struct {
	AccountNumber string          `json:"accountNumber"`
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	EntryType     string          `json:"entryType"`
	Narration     string          `json:"narration"`
	Timestamp     time.Time       `json:"timestamp"`
}

// AccountSnapshot is an externally reported account balance used by batch
// reconciliation. It carries no behaviour.
type AccountSnapshot struct {
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
}

// ReconcileResult compares the stored account balance against the balance
// derived from the ledger journal.
type ReconcileResult struct {
	AccountNumber  string          `json:"accountNumber"`
	Match          bool            `json:"match"`
	AccountBalance decimal.Decimal `json:"accountBalance"`
	LedgerBalance  decimal.Decimal `json:"ledgerBalance"`
}

// Mismatch describes one account whose stored balance drifted from its
// ledger-derived balance.
type Mismatch struct {
	AccountNumber  string          `json:"accountNumber"`
	AccountBalance decimal.Decimal `json:"accountBalance"`
	LedgerBalance  decimal.Decimal `json:"ledgerBalance"`
	Variance       decimal.Decimal `json:"variance"`
}

// ReconciliationReport aggregates a reconciliation pass over many accounts.
type ReconciliationReport struct {
	TotalAccounts   int        `json:"totalAccounts"`
	TotalMismatches int        `json:"totalMismatches"`
	Mismatches      []Mismatch `json:"mismatchedAccounts"`
}

// DailyReport totals committed transactions for one calendar day.
type DailyReport struct {
	Date             string                     `json:"date"`
	TotalDeposits    decimal.Decimal            `json:"totalDeposits"`
	TotalWithdrawals decimal.Decimal            `json:"totalWithdrawals"`
	TotalTransfers   decimal.Decimal            `json:"totalTransfers"`
	OperatorTotals   map[string]decimal.Decimal `json:"operatorTotals"`
}
