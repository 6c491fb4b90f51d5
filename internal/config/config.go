// internal/config/config.go
//
// Package config 讀取 YAML 設定檔：伺服器位址、日誌設定，以及啟動時開立的示範帳戶。
// 載入順序：Default() 預設值 → 設定檔覆蓋 → Validate() 檢查；命令列參數由 cmd 層再覆蓋。
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"bankledger/internal/bank"
	"bankledger/internal/logger"
)

// Config 為服務的完整設定。
type Config struct {
	Server   Server
	Log      Log
	Accounts []SeedAccount
}

// Server 為 HTTP 伺服器設定：監聽位址與優雅關閉的等待上限。
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Log 為日誌設定；Level 為 debug|info|warn|error，Format 為 json|text。
type Log struct {
	Level  string
	Format string
}

// SeedAccount 為啟動時要開立的帳戶。
type SeedAccount struct {
	Holder         string
	Type           bank.AccountType
	InitialDeposit decimal.Decimal
	OverdraftLimit decimal.Decimal
}

// Default 回傳預設設定：監聽 :8080、關閉等待 5 秒、info 等級 JSON 日誌、無示範帳戶。
func Default() Config {
	return Config{
		Server: Server{Addr: ":8080", ShutdownTimeout: 5 * time.Second},
		Log:    Log{Level: "info", Format: "json"},
	}
}

// Load 讀取設定檔並覆蓋預設值；未知欄位視為錯誤。
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var dto yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg, err := mapConfig(Default(), dto)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// mapConfig 將 DTO 的非空欄位覆蓋到 cfg 上，並轉換型別（時間、金額、帳戶類型）。
func mapConfig(cfg Config, dto yamlConfig) (Config, error) {
	if dto.Server.Addr != "" {
		cfg.Server.Addr = dto.Server.Addr
	}
	if dto.Server.ShutdownTimeout != "" {
		d, err := time.ParseDuration(dto.Server.ShutdownTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("server.shutdownTimeout: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	}
	if dto.Log.Level != "" {
		cfg.Log.Level = dto.Log.Level
	}
	if dto.Log.Format != "" {
		cfg.Log.Format = dto.Log.Format
	}

	for i, a := range dto.Accounts {
		seed, err := mapAccount(a)
		if err != nil {
			return Config{}, fmt.Errorf("accounts[%d]: %w", i, err)
		}
		cfg.Accounts = append(cfg.Accounts, seed)
	}
	return cfg, nil
}

func mapAccount(a yamlAccount) (SeedAccount, error) {
	typ, err := bank.ParseAccountType(a.Type)
	if err != nil {
		return SeedAccount{}, err
	}
	initial, err := parseAmount(a.InitialDeposit)
	if err != nil {
		return SeedAccount{}, fmt.Errorf("initialDeposit: %w", err)
	}
	overdraft, err := parseAmount(a.OverdraftLimit)
	if err != nil {
		return SeedAccount{}, fmt.Errorf("overdraftLimit: %w", err)
	}
	return SeedAccount{
		Holder:         a.Holder,
		Type:           typ,
		InitialDeposit: initial,
		OverdraftLimit: overdraft,
	}, nil
}

// parseAmount 空字串視為 0。
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// Validate 檢查設定值本身是否合法；帳戶的業務規則仍由 bank 層判斷。
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("config: server.addr is empty")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("config: server.shutdownTimeout must be > 0")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("config: log.format: unknown format %q", c.Log.Format)
	}
	for i, a := range c.Accounts {
		if strings.TrimSpace(a.Holder) == "" {
			return fmt.Errorf("config: accounts[%d]: holder is empty", i)
		}
		if !a.Type.Valid() {
			return fmt.Errorf("config: accounts[%d]: %w: %d", i, bank.ErrUnknownAccountType, int(a.Type))
		}
	}
	return nil
}

// Seed 依設定開立示範帳戶，回傳開立結果。
func (c Config) Seed(b *bank.Bank) ([]bank.Summary, error) {
	out := make([]bank.Summary, 0, len(c.Accounts))
	for i, a := range c.Accounts {
		s, err := b.Open(a.Holder, a.Type, a.InitialDeposit, a.OverdraftLimit)
		if err != nil {
			return out, fmt.Errorf("seed accounts[%d] (%s): %w", i, a.Holder, err)
		}
		out = append(out, s)
	}
	return out, nil
}
