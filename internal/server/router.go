// internal/server/router.go
//
// 本檔負責 HTTP 路由註冊與中介層。
// handler.go 定義「如何處理請求」，router.go 定義「請求如何被導向」。
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Router 建立並回傳整個 HTTP 處理鏈。
//
//	GET  /health
//	POST /api/v1/accounts
//	GET  /api/v1/accounts
//	GET  /api/v1/accounts/:id
//	POST /api/v1/accounts/:id/deposit
//	POST /api/v1/accounts/:id/withdraw
//	GET  /api/v1/accounts/:id/transactions
func (s *Server) Router() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))

	r.GET("/health", s.health)

	v1 := r.Group("/api/v1/accounts")
	v1.POST("", s.openAccount)
	v1.GET("", s.listAccounts)
	v1.GET("/:id", s.getAccount)
	v1.POST("/:id/deposit", s.deposit)
	v1.POST("/:id/withdraw", s.withdraw)
	v1.GET("/:id/transactions", s.transactions)

	return r
}

// requestLogger 每個請求輸出一行結構化日誌。
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		log.Info("http.request",
			"method", c.Request.Method,
			"route", route,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
