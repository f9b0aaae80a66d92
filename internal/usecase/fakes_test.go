package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

// memLedger is an in-memory store serving accounts, users and the
// transaction ledger behind a single mutex.
type memLedger struct {
	mu       sync.Mutex
	seq      int
	now      time.Time
	accounts map[string]*domain.Account
	users    map[string]*domain.User
	txs      []*domain.Transaction
}

func newMemLedger() *memLedger {
	return &memLedger{
		now:      time.Date(2022, 10, 30, 12, 0, 0, 0, time.UTC),
		accounts: make(map[string]*domain.Account),
		users:    make(map[string]*domain.User),
	}
}

// addUser registers username with the given balance and returns the
// user ID, which doubles as its token.
func (m *memLedger) addUser(username string, balance decimal.Decimal) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	userID := fmt.Sprintf("user-%d", m.seq)
	accountID := fmt.Sprintf("acc-%d", m.seq)
	m.accounts[accountID] = &domain.Account{ID: accountID, Balance: balance}
	m.users[userID] = &domain.User{ID: userID, Username: username, AccountID: accountID}

	return userID
}

func (m *memLedger) balance(userID string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.accounts[m.users[userID].AccountID].Balance
}

func (m *memLedger) total() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	sum := decimal.Zero
	for _, acc := range m.accounts {
		sum = sum.Add(acc.Balance)
	}
	return sum
}

// Verify treats the token as a user ID.
func (m *memLedger) Verify(token string) (domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[token]; !ok {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	return domain.Identity{UserID: token}, nil
}

func (m *memLedger) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	return nil
}

func (m *memLedger) account(id string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *acc
	return &cp, nil
}

func (m *memLedger) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	m.mu.Lock()
	user, ok := m.users[userID]
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return m.account(user.AccountID)
}

func (m *memLedger) TotalBalance(ctx context.Context) (decimal.Decimal, int64, error) {
	m.mu.Lock()
	n := int64(len(m.accounts))
	m.mu.Unlock()
	return m.total(), n, nil
}

func (m *memLedger) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memLedger) Create(ctx context.Context, debitedAccountID, creditedAccountID string, value decimal.Decimal) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	from, ok := m.accounts[debitedAccountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	to, ok := m.accounts[creditedAccountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if !from.CanDebit(value) {
		return nil, domain.ErrInsufficientBalance
	}

	from.Balance = from.Balance.Sub(value)
	to.Balance = to.Balance.Add(value)

	m.seq++
	tx := &domain.Transaction{
		ID:                fmt.Sprintf("tx-%d", m.seq),
		DebitedAccountID:  debitedAccountID,
		CreditedAccountID: creditedAccountID,
		Value:             value,
		CreatedAt:         m.now.Add(time.Duration(m.seq) * time.Second),
	}
	m.txs = append(m.txs, tx)

	return tx, nil
}

func (m *memLedger) List(ctx context.Context, accountID string, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.Transaction
	for _, tx := range m.txs {
		if filter.Matches(accountID, tx) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// memUsers adapts memLedger to usecase.UserRepository, whose CreateTx
// collides with the account method.
type memUsers struct {
	*memLedger
}

func (u memUsers) CreateTx(ctx context.Context, tx usecase.Transaction, user *domain.User) error {
	return nil
}
