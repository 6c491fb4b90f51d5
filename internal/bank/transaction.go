// internal/bank/transaction.go
//
// 定義帳本中的單筆交易紀錄 Transaction 與帳戶類型 AccountType。
// Transaction 欄位皆不匯出，建立後不可變更；外部只能透過方法讀取。

package bank

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// 帳本項目的固定標籤。
const (
	DescInitialDeposit = "Initial Deposit"
	DescDeposit        = "Deposit"
	DescWithdrawal     = "Withdrawal"
)

// Transaction 為帳本中的一筆不可變紀錄。
type Transaction struct {
	timestamp   time.Time
	description string
	amount      decimal.Decimal
}

func newTransaction(at time.Time, description string, amount decimal.Decimal) Transaction {
	return Transaction{timestamp: at, description: description, amount: amount}
}

// Timestamp 回傳交易發生時間。
func (t Transaction) Timestamp() time.Time { return t.timestamp }

// Description 回傳交易標籤，例如 "Deposit"。
func (t Transaction) Description() string { return t.description }

// Amount 回傳交易金額（提款亦為正值，方向由標籤表示）。
func (t Transaction) Amount() decimal.Decimal { return t.amount }

func (t Transaction) String() string {
	return fmt.Sprintf("%s - %s: $%s", t.timestamp.Format(time.RFC3339), t.description, t.amount.StringFixed(2))
}

// transactionJSON 為 Transaction 的序列化格式。
type transactionJSON struct {
	Timestamp   time.Time       `json:"timestamp"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// MarshalJSON 讓 HTTP 層可直接輸出交易紀錄。
// 刻意不提供 UnmarshalJSON：交易只能由 Account 產生。
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		Timestamp:   t.timestamp,
		Description: t.description,
		Amount:      t.amount,
	})
}

// AccountType 為封閉列舉：Savings 或 Checking。
type AccountType int

const (
	Savings AccountType = iota + 1
	Checking
)

func (t AccountType) String() string {
	switch t {
	case Savings:
		return "savings"
	case Checking:
		return "checking"
	default:
		return fmt.Sprintf("AccountType(%d)", int(t))
	}
}

// ParseAccountType 解析 "savings" / "checking"（不分大小寫）。
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "savings":
		return Savings, nil
	case "checking":
		return Checking, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAccountType, s)
	}
}

// Valid 回報是否為已定義的帳戶類型。
func (t AccountType) Valid() bool { return t == Savings || t == Checking }

func (t AccountType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAccountType, int(t))
	}
	return []byte(t.String()), nil
}

func (t *AccountType) UnmarshalText(b []byte) error {
	v, err := ParseAccountType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
