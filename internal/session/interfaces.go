package session

import "context"

// HandshakeStore はRAKPハンドシェイクコンテキストのCRUD操作を定義する。
// キーはBMC側セッションID（SID_MS）。
type HandshakeStore interface {
	Create(ctx context.Context, sidMS uint32, hs *HandshakeContext) error
	Get(ctx context.Context, sidMS uint32) (*HandshakeContext, error)
	Update(ctx context.Context, sidMS uint32, updates map[string]any) error
	Delete(ctx context.Context, sidMS uint32) error
}

// SessionStore は確立済みRMCP+セッションの操作を定義する
type SessionStore interface {
	Create(ctx context.Context, sidMS uint32, sess *Session) error
	Get(ctx context.Context, sidMS uint32) (*Session, error)
	UpdateSequences(ctx context.Context, sidMS uint32, inSeq, outSeq uint32) error
	Delete(ctx context.Context, sidMS uint32) error
}
