package store

// Valkeyキープレフィックス
const (
	KeyPrefixHandshake = "hs:"   // RAKPハンドシェイクコンテキスト（キー: トレースID）
	KeyPrefixSession   = "sess:" // 確立済みRMCP+セッション（キー: セッションIDのHex）
)
