// Package main はRMCP+ BMCセッションサーバーのエントリーポイント。
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/config"
	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/engine"
	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/keystore"
	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/server"
	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/session"
	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/store"
)

func main() {
	// 1. 環境変数読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("設定読み込み失敗", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化（JSON形式、INFO以上）
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With("app", "bmc-session-server")
	slog.SetDefault(logger)

	slog.Info("bmc-session-server起動開始",
		"listen_addr", cfg.ListenAddr,
		"keystore_api_url", cfg.KeystoreAPIURL,
	)

	// 3. Valkeyクライアント初期化
	valkeyClient, err := store.NewValkeyClient(cfg)
	if err != nil {
		slog.Error("Valkey接続失敗",
			"event_id", "VALKEY_CONN_ERR",
			"error", err,
		)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	slog.Info("Valkey接続完了", "addr", cfg.ValkeyAddr())

	// 4. Key Serviceクライアント初期化
	keyClient := keystore.NewClient(cfg)

	// 5. Store/Session層生成
	hsStore := session.NewHandshakeStore(valkeyClient)
	sessStore := session.NewSessionStore(valkeyClient)
	algoCache := session.NewAlgoCache()

	// 6. RMCP+エンジン
	rmcpEngine := engine.NewEngine(keyClient, hsStore, sessStore, algoCache, cfg)

	// 7. UDPハンドラ
	handler := server.NewHandler(rmcpEngine)

	// 8. UDPサーバー
	srv := server.NewServer(cfg.ListenAddr, handler)

	// 9. サーバー起動（goroutine）
	go func() {
		slog.Info("RMCP+サーバー起動", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil {
			slog.Error("サーバーエラー", "error", err)
		}
	}()

	// 10. シグナル待機 → Graceful Shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigCh
	slog.Info("シグナル受信、シャットダウン開始", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Warn("シャットダウンエラー", "error", err)
	}

	slog.Info("bmc-session-server停止完了")
}
