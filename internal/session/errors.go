package session

import "errors"

var (
	// ErrHandshakeNotFound はハンドシェイクコンテキストが存在しない場合のエラー
	ErrHandshakeNotFound = errors.New("handshake context not found")

	// ErrHandshakeInvalid はハンドシェイクコンテキストのデシリアライズに失敗した場合のエラー
	ErrHandshakeInvalid = errors.New("handshake context invalid")

	// ErrSessionNotFound はセッションが存在しない場合のエラー
	ErrSessionNotFound = errors.New("session not found")
)
