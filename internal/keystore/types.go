package keystore

// keyRequest はKey Serviceへのリクエストを表す
type keyRequest struct {
	Username string `json:"username"`
}

// UserKey はKey Serviceから取得したユーザー鍵素材を表す
type UserKey struct {
	Username string
	KUID     []byte // ユーザー鍵（パスワード由来、RAKP認証に使用）
	KG       []byte // BMC鍵。未設定（one-key運用）の場合はnil
	MaxRole  uint8  // 許可される最大特権レベル
}

// userKeyJSON はJSONパース用の内部構造体
type userKeyJSON struct {
	Username string `json:"username"`
	KUID     string `json:"k_uid"`            // Hex文字列
	KG       string `json:"k_g,omitempty"`    // Hex文字列（省略可）
	MaxRole  uint8  `json:"max_role"`
}

// ProblemDetails はRFC 7807エラーレスポンスを表す
type ProblemDetails struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}
