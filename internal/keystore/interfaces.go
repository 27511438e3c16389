package keystore

import "context"

// KeySource はKey Serviceとの通信インターフェースを定義する
type KeySource interface {
	// GetUserKey はユーザーの鍵素材（K_UID / K_G）を取得する
	GetUserKey(ctx context.Context, username string) (*UserKey, error)
}
