package store

import "errors"

var (
	// ErrValkeyUnavailable はValkeyへの接続・操作に失敗した場合のエラー
	ErrValkeyUnavailable = errors.New("valkey unavailable")
)
