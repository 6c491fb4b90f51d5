// cmd/server/root.go
//
// bankd 的 cobra 根指令：解析參數、組裝設定，並執行伺服器生命週期。

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"bankledger/internal/bank"
	"bankledger/internal/config"
	"bankledger/internal/logger"
	"bankledger/internal/server"
)

// rootOptions 為命令列參數；空值代表沿用設定檔或預設值。
type rootOptions struct {
	configPath string
	addr       string
	debug      bool
}

// newRootCmd 建立根指令；收到 SIGINT/SIGTERM 時透過 context 通知 run 結束。
func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:          "bankd",
		Short:        "bankd: in-memory bank accounts with overdraft and ledger",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, opts.debug)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging with source locations")
	return cmd
}

// loadConfig 先取預設值，再套用設定檔，最後以命令列參數覆蓋。
func loadConfig(opts rootOptions) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	return cfg, cfg.Validate()
}

// run 建立 logger 與銀行、開立示範帳戶並啟動 HTTP 伺服器；
// ctx 結束後在 ShutdownTimeout 內優雅關閉。
func run(ctx context.Context, cfg config.Config, debug bool) error {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Debug:  debug,
	})
	if err != nil {
		return err
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	b := bank.NewBank()
	seeded, err := cfg.Seed(b)
	if err != nil {
		return err
	}
	for _, s := range seeded {
		log.Info("account.seeded", "id", s.ID, "holder", s.Holder, "type", s.Type.String(), "balance", s.Balance.String())
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.NewServer(b, log).Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server.listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server.shutdown", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server.shutdown.failed", slog.Any("err", err))
		return err
	}
	return nil
}
