// Package bank 定義核心領域模型與業務規則。
// 本檔定義 Account：單一帳戶的餘額、透支額度與只增不減的交易帳本，
// 不含任何 HTTP 或設定細節。
//
// 金額一律使用 decimal.Decimal，避免浮點誤差。

package bank

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Account 代表一個銀行帳戶。
// - mu：寫入（存提款）取寫鎖，讀取取讀鎖；驗證與變更在同一臨界區內完成。
// - ledger：只允許 append，建立後至少有一筆 "Initial Deposit"。
type Account struct {
	mu sync.RWMutex

	holder         string
	typ            AccountType
	balance        decimal.Decimal
	overdraftLimit decimal.Decimal
	ledger         []Transaction

	now func() time.Time
}

// Option 調整 Account 的建立參數。
type Option func(*Account)

// WithClock 指定交易時間來源（測試用）。
func WithClock(now func() time.Time) Option {
	return func(a *Account) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAccount 建立帳戶並寫入第一筆 "Initial Deposit" 紀錄。
// 初始存款不做驗證（可為 0 或負數）；
// 帳戶類型不在 {Savings, Checking} 時回傳 ErrUnknownAccountType，透支額度為負時回傳 ErrInvalidOverdraft。
func NewAccount(holder string, typ AccountType, initialDeposit, overdraftLimit decimal.Decimal, opts ...Option) (*Account, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAccountType, int(typ))
	}
	if overdraftLimit.IsNegative() {
		return nil, ErrInvalidOverdraft
	}
	a := &Account{
		holder:         holder,
		typ:            typ,
		balance:        initialDeposit,
		overdraftLimit: overdraftLimit,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ledger = []Transaction{newTransaction(a.now(), DescInitialDeposit, initialDeposit)}
	return a, nil
}

// Deposit 存款：金額需 > 0。
// 失敗時餘額與帳本皆不變。
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Add(amount)
	a.ledger = append(a.ledger, newTransaction(a.now(), DescDeposit, amount))
	return nil
}

// Withdraw 提款：金額需 > 0 且不得超過「餘額 + 透支額度」。
// 先檢查金額再檢查額度；任一失敗皆不改變狀態。
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if amount.GreaterThan(a.available()) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	a.ledger = append(a.ledger, newTransaction(a.now(), DescWithdrawal, amount))
	return nil
}

// Balance 回傳目前餘額。
func (a *Account) Balance() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balance
}

// Available 回傳單筆提款可動用的上限（餘額 + 透支額度）。
func (a *Account) Available() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.available()
}

func (a *Account) available() decimal.Decimal {
	return a.balance.Add(a.overdraftLimit)
}

// TransactionHistory 回傳帳本的值拷貝，呼叫端修改回傳切片不影響帳戶。
func (a *Account) TransactionHistory() []Transaction {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Transaction, len(a.ledger))
	copy(out, a.ledger)
	return out
}

// Holder、Type、OverdraftLimit 於建立後不再變動，無須加鎖。
func (a *Account) Holder() string                  { return a.holder }
func (a *Account) Type() AccountType               { return a.typ }
func (a *Account) OverdraftLimit() decimal.Decimal { return a.overdraftLimit }

// Summary 為帳戶在某一時間點的一致快照。
type Summary struct {
	ID               string          `json:"id,omitempty"`
	Holder           string          `json:"holder"`
	Type             AccountType     `json:"type"`
	Balance          decimal.Decimal `json:"balance"`
	OverdraftLimit   decimal.Decimal `json:"overdraftLimit"`
	Available        decimal.Decimal `json:"available"`
	TransactionCount int             `json:"transactionCount"`
}

// Summary 於單一讀鎖內取出所有欄位，不會看到變更到一半的狀態。
func (a *Account) Summary() Summary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Summary{
		Holder:           a.holder,
		Type:             a.typ,
		Balance:          a.balance,
		OverdraftLimit:   a.overdraftLimit,
		Available:        a.available(),
		TransactionCount: len(a.ledger),
	}
}
