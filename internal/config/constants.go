package config

import "time"

// Valkey接続設定
const (
	ValkeyConnectTimeout = 3 * time.Second
	ValkeyCommandTimeout = 2 * time.Second
	ValkeyPoolSize       = 10
)

// Key Service接続設定
const (
	KeystoreConnectTimeout = 2 * time.Second
	KeystoreRequestTimeout = 5 * time.Second
)

// Circuit Breaker設定
const (
	CBName             = "keystore"
	CBMaxRequests      = 3
	CBInterval         = 10 * time.Second
	CBTimeout          = 30 * time.Second
	CBFailureThreshold = 5
)

// セッション管理
const (
	// HandshakeTTL はOpen Session要求からRAKP完了までのコンテキスト保持時間
	HandshakeTTL = 60 * time.Second

	// SessionTTL は確立済みセッションの保持時間
	SessionTTL = 24 * time.Hour
)

// MaxDatagramSize はRMCP+データグラムの受信バッファ長
const MaxDatagramSize = 512

// サーバーシャットダウン設定
const (
	ShutdownTimeout = 5 * time.Second
)
