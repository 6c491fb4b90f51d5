// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 核心層只回傳錯誤、不記錄也不重試；由上層（HTTP handler、CLI）決定如何呈現。
// 呼叫端一律以 errors.Is 比對。

package bank

import "errors"

var (
	// ErrInvalidAmount 代表存款或提款金額 <= 0。
	// 對應 HTTP 狀態碼 400 Bad Request。
	ErrInvalidAmount = errors.New("amount must be > 0")

	// ErrInsufficientFunds 代表提款金額超過「餘額 + 透支額度」。
	// 對應 HTTP 狀態碼 409 Conflict。
	ErrInsufficientFunds = errors.New("insufficient funds, including overdraft limit")

	// ErrInvalidOverdraft 代表建立帳戶時透支額度為負。
	ErrInvalidOverdraft = errors.New("overdraft limit must be >= 0")

	// ErrUnknownAccountType 代表無法解析的帳戶類型字串。
	ErrUnknownAccountType = errors.New("unknown account type")

	// ErrNotFound 代表帳戶不存在。
	// 對應 HTTP 狀態碼 404 Not Found。
	ErrNotFound = errors.New("account not found")
)
