// internal/server/handler.go
//
// Package server
// ─────────────────────────────────────────────
// 提供 HTTP JSON 介面，作為 bank 模組的應用層。
// 每個 handler 僅負責：
//  1. 接收與驗證 HTTP 請求
//  2. 呼叫 bank 層執行商業邏輯
//  3. 回傳標準化 JSON 回應
//
// 商業規則（金額 > 0、透支上限）只在 bank 層判斷，這裡只做格式檢查。
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"bankledger/internal/bank"
)

// Server 為 HTTP 層核心結構。
type Server struct {
	Bank *bank.Bank
	log  *slog.Logger
}

// NewServer 建立新的 HTTP 伺服器；log 為 nil 時使用 slog.Default()。
func NewServer(b *bank.Bank, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{Bank: b, log: log}
}

type openAccountRequest struct {
	Holder         string          `json:"holder" validate:"required"`
	Type           string          `json:"type" validate:"required"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
	OverdraftLimit decimal.Decimal `json:"overdraftLimit" validate:"gte=0"`
}

// amountRequest 不加 validate 標籤：0 與負數交由 bank 回傳 ErrInvalidAmount。
type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type listAccountsResponse struct {
	Accounts []bank.Summary `json:"accounts"`
}

type historyResponse struct {
	AccountID    string             `json:"accountId"`
	Transactions []bank.Transaction `json:"transactions"`
}

// openAccount 處理 POST /accounts。
func (s *Server) openAccount(c *gin.Context) {
	var req openAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if details := validateRequest(req); details != nil {
		respondWithValidationError(c, details)
		return
	}
	typ, err := bank.ParseAccountType(req.Type)
	if err != nil {
		s.writeErr(c, err)
		return
	}

	a, err := s.Bank.Open(req.Holder, typ, req.InitialDeposit, req.OverdraftLimit)
	if err != nil {
		s.writeErr(c, err)
		return
	}
	s.log.Info("account.opened", "id", a.ID, "type", a.Type.String(), "initial_deposit", req.InitialDeposit.String())
	c.JSON(http.StatusCreated, a)
}

// listAccounts 處理 GET /accounts。
func (s *Server) listAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, listAccountsResponse{Accounts: s.Bank.List()})
}

// getAccount 處理 GET /accounts/:id。
func (s *Server) getAccount(c *gin.Context) {
	a, err := s.Bank.Get(c.Param("id"))
	if err != nil {
		s.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// deposit 處理 POST /accounts/:id/deposit。
func (s *Server) deposit(c *gin.Context) {
	s.applyAmount(c, "deposit", s.Bank.Deposit)
}

// withdraw 處理 POST /accounts/:id/withdraw。
func (s *Server) withdraw(c *gin.Context) {
	s.applyAmount(c, "withdraw", s.Bank.Withdraw)
}

// applyAmount 為存款與提款共用流程：解析金額 → 呼叫 bank → 回傳最新快照。
func (s *Server) applyAmount(c *gin.Context, op string, fn func(string, decimal.Decimal) (bank.Summary, error)) {
	id := c.Param("id")
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	a, err := fn(id, req.Amount)
	if err != nil {
		s.log.Warn("account."+op+".rejected", "id", id, "amount", req.Amount.String(), "err", err)
		s.writeErr(c, err)
		return
	}
	s.log.Info("account."+op, "id", id, "amount", req.Amount.String(), "balance", a.Balance.String())
	c.JSON(http.StatusOK, a)
}

// transactions 處理 GET /accounts/:id/transactions。
func (s *Server) transactions(c *gin.Context) {
	id := c.Param("id")
	h, err := s.Bank.History(id)
	if err != nil {
		s.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, historyResponse{AccountID: id, Transactions: h})
}

// health 提供健康檢查端點：GET /health。
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
