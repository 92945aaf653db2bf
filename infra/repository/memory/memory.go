// Package memory provides an in-memory UnitOfWork implementation. It backs
// the service-layer tests and can run the engine without a database.
//
// A single mutex serializes all units of work, and Do operates on a deep
// copy of the state that is swapped in only when fn succeeds, so commits
// are atomic and rejected transactions leave no partial effect.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/corebankhq/corebank/pkg/domain"
	domainaccount "github.com/corebankhq/corebank/pkg/domain/account"
	domainledger "github.com/corebankhq/corebank/pkg/domain/ledger"
	domaintx "github.com/corebankhq/corebank/pkg/domain/transaction"
	"github.com/corebankhq/corebank/pkg/repository"
	"github.com/shopspring/decimal"
)

type state struct {
	accounts map[string]domainaccount.Account
	entries  []domainledger.Entry
	txs      map[string]domaintx.Transaction
}

func newState() *state {
	return &state{
		accounts: map[string]domainaccount.Account{},
		txs:      map[string]domaintx.Transaction{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	c.entries = append(c.entries, s.entries...)
	for k, v := range s.txs {
		c.txs[k] = v
	}
	return c
}

// UoW is an in-memory repository.UnitOfWork.
type UoW struct {
	mu      sync.Mutex
	current *state
	working *state // non-nil while inside Do
}

// NewUoW creates an empty in-memory UnitOfWork.
func NewUoW() *UoW {
	return &UoW{current: newState()}
}

// Do implements repository.UnitOfWork.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	working := u.current.clone()
	scoped := &UoW{current: u.current, working: working}
	if err := fn(scoped); err != nil {
		return err
	}
	u.current = working
	return nil
}

// view returns the state repositories should read and mutate: the working
// copy inside Do, the committed state otherwise.
func (u *UoW) view() *state {
	if u.working != nil {
		return u.working
	}
	return u.current
}

// AccountRepository implements repository.UnitOfWork.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepo{u: u}, nil
}

// LedgerRepository implements repository.UnitOfWork.
func (u *UoW) LedgerRepository() (repository.LedgerRepository, error) {
	return &ledgerRepo{u: u}, nil
}

// TransactionRepository implements repository.UnitOfWork.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &txRepo{u: u}, nil
}

func (u *UoW) lockOutsideDo() func() {
	if u.working != nil {
		return func() {}
	}
	u.mu.Lock()
	return u.mu.Unlock
}

type accountRepo struct {
	u *UoW
}

func (r *accountRepo) Create(ctx context.Context, a *domainaccount.Account) error {
	defer r.u.lockOutsideDo()()
	s := r.u.view()
	if _, ok := s.accounts[a.Number]; ok {
		return domain.ErrAlreadyExists
	}
	s.accounts[a.Number] = *a
	return nil
}

func (r *accountRepo) Get(ctx context.Context, number string) (*domainaccount.Account, error) {
	defer r.u.lockOutsideDo()()
	s := r.u.view()
	a, ok := s.accounts[number]
	if !ok {
		return nil, domainaccount.ErrAccountNotFound
	}
	return &a, nil
}

// GetForUpdate reads under the UnitOfWork's global lock, which already
// serializes concurrent units of work, so it is equivalent to Get here.
func (r *accountRepo) GetForUpdate(ctx context.Context, number string) (*domainaccount.Account, error) {
	return r.Get(ctx, number)
}

func (r *accountRepo) UpdateBalance(ctx context.Context, number string, balance decimal.Decimal) error {
	defer r.u.lockOutsideDo()()
	s := r.u.view()
	a, ok := s.accounts[number]
	if !ok {
		return domainaccount.ErrAccountNotFound
	}
	a.Balance = balance
	a.UpdatedAt = time.Now()
	s.accounts[number] = a
	return nil
}

func (r *accountRepo) List(ctx context.Context) ([]*domainaccount.Account, error) {
	defer r.u.lockOutsideDo()()
	s := r.u.view()
	out := make([]*domainaccount.Account, 0, len(s.accounts))
	for number := range s.accounts {
		a := s.accounts[number]
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

type ledgerRepo struct {
	u *UoW
}

func (r *ledgerRepo) AppendPair(ctx context.Context, p domainledger.Pair) error {
	defer r.u.lockOutsideDo()()
	s := r.u.view()
	s.entries = append(s.entries, p.Debit, p.Credit)
	return nil
}

func (r *ledgerRepo) ListByAccount(ctx context.Context, number string, limit, offset int) ([]domainledger.Entry, error) {
	defer r.u.lockOutsideDo()()
	s := r.u.view()
	var matched []domainledger.Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].AccountNumber == number {
			matched = append(matched, s.entries[i])
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *ledgerRepo) BalanceOf(ctx context.Context, number string) (decimal.Decimal, error) {
	defer r.u.lockOutsideDo()()
	s := r.u.view()
	balance := decimal.Zero
	for _, e := range s.entries {
		if e.AccountNumber != number {
			continue
		}
		if e.Type == domainledger.Credit {
			balance = balance.Add(e.Amount)
		} else {
			balance = balance.Sub(e.Amount)
		}
	}
	return balance, nil
}

type txRepo struct {
	u *UoW
}

func (r *txRepo) Create(ctx context.Context, tx *domaintx.Transaction) error {
	defer r.u.lockOutsideDo()()
	s := r.u.view()
	if _, ok := s.txs[tx.ReferenceID]; ok {
		return domaintx.ErrDuplicate
	}
	s.txs[tx.ReferenceID] = *tx
	return nil
}

func (r *txRepo) GetByReference(ctx context.Context, referenceID string) (*domaintx.Transaction, error) {
	defer r.u.lockOutsideDo()()
	s := r.u.view()
	tx, ok := s.txs[referenceID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tx, nil
}

func (r *txRepo) ListByAccount(ctx context.Context, number string, limit, offset int) ([]*domaintx.Transaction, error) {
	defer r.u.lockOutsideDo()()
	s := r.u.view()
	var matched []*domaintx.Transaction
	for ref := range s.txs {
		tx := s.txs[ref]
		if tx.AccountNumber == number || tx.TargetAccount == number {
			matched = append(matched, &tx)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *txRepo) ListByDay(ctx context.Context, day time.Time) ([]*domaintx.Transaction, error) {
	defer r.u.lockOutsideDo()()
	s := r.u.view()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	var matched []*domaintx.Transaction
	for ref := range s.txs {
		tx := s.txs[ref]
		if !tx.CreatedAt.Before(start) && tx.CreatedAt.Before(end) {
			matched = append(matched, &tx)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	return matched, nil
}
