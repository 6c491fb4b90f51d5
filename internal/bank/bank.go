// internal/bank/bank.go

// Bank 為帳戶索引表：以 ID 管理多個彼此獨立的 Account。
// 帳戶之間沒有轉帳；每個帳戶自行序列化自己的存提款，
// Bank 的鎖只保護 map 本身，不會在持有時進入帳戶的寫入路徑。
package bank

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bank 管理所有帳戶。
// - mu：保護 accts map（讀多寫少，使用 RWMutex）。
// - newID：帳戶 ID 產生器，預設為 UUIDv4。
type Bank struct {
	mu    sync.RWMutex
	accts map[string]*Account
	newID func() string
	opts  []Option
}

// NewBank 建立空白銀行實例；opts 會套用到每個新開立的帳戶。
func NewBank(opts ...Option) *Bank {
	return &Bank{
		accts: make(map[string]*Account),
		newID: func() string { return uuid.NewString() },
		opts:  opts,
	}
}

// Open 開立新帳戶並回傳其快照。
func (b *Bank) Open(holder string, typ AccountType, initialDeposit, overdraftLimit decimal.Decimal) (Summary, error) {
	a, err := NewAccount(holder, typ, initialDeposit, overdraftLimit, b.opts...)
	if err != nil {
		return Summary{}, err
	}
	b.mu.Lock()
	id := b.newID()
	b.accts[id] = a
	b.mu.Unlock()
	return summaryOf(id, a), nil
}

func (b *Bank) lookup(id string) (*Account, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	a, ok := b.accts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

// Get 依 ID 取得帳戶目前快照；不存在時回傳 ErrNotFound。
func (b *Bank) Get(id string) (Summary, error) {
	a, err := b.lookup(id)
	if err != nil {
		return Summary{}, err
	}
	return summaryOf(id, a), nil
}

// List 回傳所有帳戶快照，依持有人、再依 ID 排序。
func (b *Bank) List() []Summary {
	b.mu.RLock()
	out := make([]Summary, 0, len(b.accts))
	for id, a := range b.accts {
		out = append(out, summaryOf(id, a))
	}
	b.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Holder != out[j].Holder {
			return out[i].Holder < out[j].Holder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Deposit 對指定帳戶存款；錯誤原樣回傳（ErrNotFound / ErrInvalidAmount）。
func (b *Bank) Deposit(id string, amount decimal.Decimal) (Summary, error) {
	a, err := b.lookup(id)
	if err != nil {
		return Summary{}, err
	}
	if err := a.Deposit(amount); err != nil {
		return Summary{}, err
	}
	return summaryOf(id, a), nil
}

// Withdraw 對指定帳戶提款；錯誤原樣回傳（ErrNotFound / ErrInvalidAmount / ErrInsufficientFunds）。
func (b *Bank) Withdraw(id string, amount decimal.Decimal) (Summary, error) {
	a, err := b.lookup(id)
	if err != nil {
		return Summary{}, err
	}
	if err := a.Withdraw(amount); err != nil {
		return Summary{}, err
	}
	return summaryOf(id, a), nil
}

// History 回傳指定帳戶的交易帳本（值拷貝）。
func (b *Bank) History(id string) ([]Transaction, error) {
	a, err := b.lookup(id)
	if err != nil {
		return nil, err
	}
	return a.TransactionHistory(), nil
}

func summaryOf(id string, a *Account) Summary {
	s := a.Summary()
	s.ID = id
	return s
}
