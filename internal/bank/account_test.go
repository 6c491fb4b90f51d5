// internal/bank/account_test.go
//
// Account 的單元測試：存提款、透支額度、帳本只增不減，以及失敗時狀態完全不變。
// 以 setUp 風格的 helper 建立兩個固定帳戶：
//   - Alice：Savings，初始 1000，透支 0
//   - Bob：Checking，初始 500，透支 200

package bank

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fixedClock 回傳固定時間，讓帳本時間戳可預測。
func fixedClock() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

func newAccount(t *testing.T, holder string, typ AccountType, initial, overdraft string) *Account {
	t.Helper()
	a, err := NewAccount(holder, typ, d(initial), d(overdraft), WithClock(fixedClock))
	if err != nil {
		t.Fatalf("NewAccount err=%v", err)
	}
	return a
}

func setUp(t *testing.T) (savings, checking *Account) {
	t.Helper()
	return newAccount(t, "Alice", Savings, "1000", "0"), newAccount(t, "Bob", Checking, "500", "200")
}

func assertBalance(t *testing.T, a *Account, want string) {
	t.Helper()
	if got := a.Balance(); !got.Equal(d(want)) {
		t.Fatalf("balance=%s want=%s", got, want)
	}
}

// TestNewAccountSeedsLedger 驗證建立帳戶後帳本第一筆為 "Initial Deposit"。
func TestNewAccountSeedsLedger(t *testing.T) {
	for _, initial := range []string{"1000", "0", "0.01"} {
		a := newAccount(t, "Alice", Savings, initial, "0")
		h := a.TransactionHistory()
		if len(h) != 1 {
			t.Fatalf("initial=%s ledger len=%d want=1", initial, len(h))
		}
		if h[0].Description() != DescInitialDeposit || !h[0].Amount().Equal(d(initial)) {
			t.Fatalf("initial=%s first entry=%v", initial, h[0])
		}
		if !h[0].Timestamp().Equal(fixedClock()) {
			t.Fatalf("timestamp=%v want=%v", h[0].Timestamp(), fixedClock())
		}
		assertBalance(t, a, initial)
	}
}

// TestNewAccountNegativeInitialDeposit 記錄既有行為：初始存款不做驗證，負數也會被接受並記入帳本。
func TestNewAccountNegativeInitialDeposit(t *testing.T) {
	a := newAccount(t, "Carol", Checking, "-50", "100")
	assertBalance(t, a, "-50")
	h := a.TransactionHistory()
	if h[0].Description() != DescInitialDeposit || !h[0].Amount().Equal(d("-50")) {
		t.Fatalf("first entry=%v", h[0])
	}
}

func TestNewAccountRejectsNegativeOverdraft(t *testing.T) {
	if _, err := NewAccount("Alice", Savings, d("100"), d("-1")); !errors.Is(err, ErrInvalidOverdraft) {
		t.Fatalf("want ErrInvalidOverdraft, got %v", err)
	}
}

// TestNewAccountRejectsUnknownType 驗證帳戶類型為封閉列舉，未定義的值無法開戶。
func TestNewAccountRejectsUnknownType(t *testing.T) {
	for _, typ := range []AccountType{0, 7, -1} {
		a, err := NewAccount("X", typ, d("1"), d("0"))
		if !errors.Is(err, ErrUnknownAccountType) || a != nil {
			t.Fatalf("type=%d want ErrUnknownAccountType, got a=%v err=%v", int(typ), a, err)
		}
	}
}

func TestDeposit(t *testing.T) {
	savings, _ := setUp(t)
	if err := savings.Deposit(d("500")); err != nil {
		t.Fatal(err)
	}
	assertBalance(t, savings, "1500")

	h := savings.TransactionHistory()
	if len(h) != 2 {
		t.Fatalf("ledger len=%d want=2", len(h))
	}
	if h[0].Description() != DescInitialDeposit || !h[0].Amount().Equal(d("1000")) {
		t.Fatalf("h[0]=%v", h[0])
	}
	if !strings.Contains(h[1].Description(), "Deposit") || !h[1].Amount().Equal(d("500")) {
		t.Fatalf("h[1]=%v", h[1])
	}
}

// TestInvalidAmount 驗證 <= 0 的金額一律回傳 ErrInvalidAmount 且不改變狀態。
func TestInvalidAmount(t *testing.T) {
	for _, amt := range []string{"0", "-100", "-0.01"} {
		savings, checking := setUp(t)
		if err := savings.Deposit(d(amt)); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("deposit(%s) want ErrInvalidAmount, got %v", amt, err)
		}
		if err := checking.Withdraw(d(amt)); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("withdraw(%s) want ErrInvalidAmount, got %v", amt, err)
		}
		assertBalance(t, savings, "1000")
		assertBalance(t, checking, "500")
		if len(savings.TransactionHistory()) != 1 || len(checking.TransactionHistory()) != 1 {
			t.Fatalf("ledger changed after rejected call (amount=%s)", amt)
		}
	}
}

func TestWithdraw(t *testing.T) {
	cases := []struct {
		name    string
		amount  string
		want    string
		wantErr error
		wantLen int
	}{
		{name: "within balance", amount: "300", want: "200", wantLen: 2},
		{name: "within overdraft", amount: "600", want: "-100", wantLen: 2},
		{name: "exactly at overdraft limit", amount: "700", want: "-200", wantLen: 2},
		{name: "exceeding overdraft", amount: "800", want: "500", wantErr: ErrInsufficientFunds, wantLen: 1},
		{name: "one cent over", amount: "700.01", want: "500", wantErr: ErrInsufficientFunds, wantLen: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, checking := setUp(t)
			err := checking.Withdraw(d(tc.amount))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err=%v want=%v", err, tc.wantErr)
			}
			assertBalance(t, checking, tc.want)
			h := checking.TransactionHistory()
			if len(h) != tc.wantLen {
				t.Fatalf("ledger len=%d want=%d", len(h), tc.wantLen)
			}
			if tc.wantErr == nil {
				last := h[len(h)-1]
				if !strings.Contains(last.Description(), "Withdrawal") || !last.Amount().Equal(d(tc.amount)) {
					t.Fatalf("last entry=%v", last)
				}
			}
		})
	}
}

// TestSavingsHasNoOverdraft 驗證透支額度為 0 時不得提領超過餘額。
func TestSavingsHasNoOverdraft(t *testing.T) {
	savings, _ := setUp(t)
	if err := savings.Withdraw(d("1000.01")); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if err := savings.Withdraw(d("1000")); err != nil {
		t.Fatal(err)
	}
	assertBalance(t, savings, "0")
}

func TestTransactionHistory(t *testing.T) {
	savings, _ := setUp(t)
	_ = savings.Deposit(d("200"))
	_ = savings.Withdraw(d("100"))

	h := savings.TransactionHistory()
	if len(h) != 3 {
		t.Fatalf("ledger len=%d want=3", len(h))
	}
	want := []string{DescInitialDeposit, DescDeposit, DescWithdrawal}
	for i, w := range want {
		if h[i].Description() != w {
			t.Fatalf("h[%d]=%q want=%q", i, h[i].Description(), w)
		}
	}
}

// TestTransactionHistoryIsCopy 驗證回傳切片的修改不會回寫到帳戶內部帳本。
func TestTransactionHistoryIsCopy(t *testing.T) {
	savings, _ := setUp(t)
	h := savings.TransactionHistory()
	h[0] = Transaction{}

	again := savings.TransactionHistory()
	if len(again) != 1 || again[0].Description() != DescInitialDeposit {
		t.Fatalf("internal ledger leaked: %v", again)
	}
}

func TestAccessors(t *testing.T) {
	savings, checking := setUp(t)
	if savings.Holder() != "Alice" || checking.Holder() != "Bob" {
		t.Fatalf("holders=%q,%q", savings.Holder(), checking.Holder())
	}
	if savings.Type() != Savings || checking.Type() != Checking {
		t.Fatalf("types=%v,%v", savings.Type(), checking.Type())
	}
	if !savings.OverdraftLimit().IsZero() || !checking.OverdraftLimit().Equal(d("200")) {
		t.Fatalf("overdraft=%s,%s", savings.OverdraftLimit(), checking.OverdraftLimit())
	}
	if !checking.Available().Equal(d("700")) {
		t.Fatalf("available=%s want=700", checking.Available())
	}
}

func TestSummary(t *testing.T) {
	_, checking := setUp(t)
	_ = checking.Withdraw(d("600"))
	s := checking.Summary()
	if s.Holder != "Bob" || s.Type != Checking || !s.Balance.Equal(d("-100")) ||
		!s.Available.Equal(d("100")) || s.TransactionCount != 2 {
		t.Fatalf("summary=%+v", s)
	}
}

// TestDecimalPrecision 驗證小數累加不會產生浮點誤差（0.1 * 10 == 1）。
func TestDecimalPrecision(t *testing.T) {
	a := newAccount(t, "Alice", Savings, "0", "0")
	for i := 0; i < 10; i++ {
		if err := a.Deposit(d("0.1")); err != nil {
			t.Fatal(err)
		}
	}
	assertBalance(t, a, "1")
	if err := a.Withdraw(d("0.3")); err != nil {
		t.Fatal(err)
	}
	assertBalance(t, a, "0.7")
}

// TestRandomOperationsKeepInvariants 以固定亂數種子執行一連串存提款，
// 逐步比對：成功時餘額與帳本長度精確變化；失敗時完全不變；餘額永不低於 -透支額度。
func TestRandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := newAccount(t, "Bob", Checking, "500", "200")
	floor := a.OverdraftLimit().Neg()

	for i := 0; i < 2000; i++ {
		// 金額範圍 -50.00 ~ 449.99，包含非法金額
		amt := decimal.New(int64(rng.Intn(50000)-5000), -2)
		before := a.Balance()
		beforeLen := len(a.TransactionHistory())

		var err error
		deposit := rng.Intn(2) == 0
		if deposit {
			err = a.Deposit(amt)
		} else {
			err = a.Withdraw(amt)
		}

		after := a.Balance()
		h := a.TransactionHistory()
		switch {
		case err != nil:
			if !after.Equal(before) || len(h) != beforeLen {
				t.Fatalf("step %d: rejected call mutated state (err=%v)", i, err)
			}
			if !amt.IsPositive() && !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("step %d: amount=%s want ErrInvalidAmount, got %v", i, amt, err)
			}
			if amt.IsPositive() && (deposit || !errors.Is(err, ErrInsufficientFunds)) {
				t.Fatalf("step %d: unexpected err=%v", i, err)
			}
		case deposit:
			if !after.Equal(before.Add(amt)) || len(h) != beforeLen+1 || h[len(h)-1].Description() != DescDeposit {
				t.Fatalf("step %d: bad deposit state", i)
			}
		default:
			if !after.Equal(before.Sub(amt)) || len(h) != beforeLen+1 || h[len(h)-1].Description() != DescWithdrawal {
				t.Fatalf("step %d: bad withdrawal state", i)
			}
		}
		if after.LessThan(floor) {
			t.Fatalf("step %d: balance %s below floor %s", i, after, floor)
		}
	}
}

// TestConcurrentWithdrawalsNeverOverdraw 驗證同時提款下不會超出透支額度。
// 可提領 700，每次 1，共 1000 次嘗試 → 恰好 700 次成功。
func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	_, checking := setUp(t)

	const attempts = 1000
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			if err := checking.Withdraw(d("1")); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else if !errors.Is(err, ErrInsufficientFunds) {
				t.Errorf("unexpected err: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 700 {
		t.Fatalf("successful withdrawals=%d want=700", ok)
	}
	assertBalance(t, checking, "-200")
	if n := len(checking.TransactionHistory()); n != 701 {
		t.Fatalf("ledger len=%d want=701", n)
	}
}

func TestTransactionString(t *testing.T) {
	savings, _ := setUp(t)
	got := savings.TransactionHistory()[0].String()
	want := "2024-01-02T03:04:05Z - Initial Deposit: $1000.00"
	if got != want {
		t.Fatalf("String()=%q want=%q", got, want)
	}
}
