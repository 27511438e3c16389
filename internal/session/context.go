package session

import (
	"context"
	"fmt"

	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/config"
	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/store"
)

// ハンドシェイクステージ
const (
	StageOpen  = "open"  // Open Session Response送信済み
	StageRAKP2 = "rakp2" // RAKP Message 2送信済み
)

// HandshakeContext はOpen Session〜RAKP完了までの状態を表す。
// 鍵素材（K_UID）はHex文字列で保持し、ログ出力時はマスキングする。
type HandshakeContext struct {
	SessionIDRC uint32 `redis:"sid_rc"` // リモートコンソール側セッションID
	AuthAlg     uint8  `redis:"auth_alg"`
	IntegAlg    uint8  `redis:"integ_alg"`
	Stage       string `redis:"stage"`
	Username    string `redis:"username"`
	Role        uint8  `redis:"role"`
	RandRC      string `redis:"rand_rc"` // Hex（16バイト）
	RandMS      string `redis:"rand_ms"` // Hex（16バイト）
	KUID        string `redis:"k_uid"`   // Hex
	KG          string `redis:"k_g"`     // Hex。one-key運用では空
}

// handshakeStore はHandshakeStoreの実装
type handshakeStore struct {
	vc *store.ValkeyClient
}

// NewHandshakeStore はHandshakeStoreの新しいインスタンスを生成する
func NewHandshakeStore(vc *store.ValkeyClient) HandshakeStore {
	return &handshakeStore{vc: vc}
}

func handshakeKey(sidMS uint32) string {
	return fmt.Sprintf("%s%08x", store.KeyPrefixHandshake, sidMS)
}

// Create はハンドシェイクコンテキストをValkeyに保存する
func (s *handshakeStore) Create(ctx context.Context, sidMS uint32, hs *HandshakeContext) error {
	key := handshakeKey(sidMS)

	pipe := s.vc.Client().Pipeline()
	pipe.HSet(ctx, key, hs)
	pipe.Expire(ctx, key, config.HandshakeTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", store.ErrValkeyUnavailable, err)
	}
	return nil
}

// Get はハンドシェイクコンテキストをValkeyから取得する
func (s *handshakeStore) Get(ctx context.Context, sidMS uint32) (*HandshakeContext, error) {
	key := handshakeKey(sidMS)
	cmd := s.vc.Client().HGetAll(ctx, key)
	if err := cmd.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrValkeyUnavailable, err)
	}
	if len(cmd.Val()) == 0 {
		return nil, ErrHandshakeNotFound
	}

	var hs HandshakeContext
	if err := cmd.Scan(&hs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHandshakeInvalid, err)
	}
	return &hs, nil
}

// Update はハンドシェイクコンテキストを部分更新し、TTLをリフレッシュする
func (s *handshakeStore) Update(ctx context.Context, sidMS uint32, updates map[string]any) error {
	key := handshakeKey(sidMS)

	exists, err := s.vc.Client().Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrValkeyUnavailable, err)
	}
	if exists == 0 {
		return ErrHandshakeNotFound
	}

	pipe := s.vc.Client().Pipeline()
	pipe.HSet(ctx, key, updates)
	pipe.Expire(ctx, key, config.HandshakeTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", store.ErrValkeyUnavailable, err)
	}
	return nil
}

// Delete はハンドシェイクコンテキストを削除する。存在しなくてもエラーにしない。
func (s *handshakeStore) Delete(ctx context.Context, sidMS uint32) error {
	if err := s.vc.Client().Del(ctx, handshakeKey(sidMS)).Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrValkeyUnavailable, err)
	}
	return nil
}
