// cmd/server/main.go

// bankd 提供帳戶開立、存提款與交易紀錄查詢的 HTTP API。
// 此檔案負責組裝各模組（config, logger, bank, server），
// 依設定開立示範帳戶，啟動 HTTP 伺服器，並在收到 SIGINT/SIGTERM 時優雅關閉。

package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
