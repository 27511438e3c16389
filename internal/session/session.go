package session

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/config"
	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/store"
)

// Session は確立済みRMCP+セッションを表す
type Session struct {
	SessionIDRC uint32 `redis:"sid_rc"`
	Username    string `redis:"username"`
	Role        uint8  `redis:"role"`
	IntegAlg    uint8  `redis:"integ_alg"`
	SIK         string `redis:"sik"` // Hex（20バイト）
	StartTime   int64  `redis:"start_time"`
	InboundSeq  uint32 `redis:"in_seq"`  // 最後に受理した受信シーケンス番号
	OutboundSeq uint32 `redis:"out_seq"` // 最後に送信したシーケンス番号
}

// sessionStore はSessionStoreの実装
type sessionStore struct {
	vc *store.ValkeyClient
}

// NewSessionStore はSessionStoreの新しいインスタンスを生成する
func NewSessionStore(vc *store.ValkeyClient) SessionStore {
	return &sessionStore{vc: vc}
}

func sessionKey(sidMS uint32) string {
	return fmt.Sprintf("%s%08x", store.KeyPrefixSession, sidMS)
}

// Create はセッションをValkeyに保存する
func (s *sessionStore) Create(ctx context.Context, sidMS uint32, sess *Session) error {
	key := sessionKey(sidMS)

	pipe := s.vc.Client().Pipeline()
	pipe.HSet(ctx, key, sess)
	pipe.Expire(ctx, key, config.SessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", store.ErrValkeyUnavailable, err)
	}
	return nil
}

// Get はセッションをValkeyから取得する
func (s *sessionStore) Get(ctx context.Context, sidMS uint32) (*Session, error) {
	key := sessionKey(sidMS)
	cmd := s.vc.Client().HGetAll(ctx, key)
	if err := cmd.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrValkeyUnavailable, err)
	}
	if len(cmd.Val()) == 0 {
		return nil, ErrSessionNotFound
	}

	var sess Session
	if err := cmd.Scan(&sess); err != nil {
		return nil, fmt.Errorf("session deserialization error: %w", err)
	}
	return &sess, nil
}

// UpdateSequences は受理済み受信シーケンス番号と送信シーケンス番号を更新する
func (s *sessionStore) UpdateSequences(ctx context.Context, sidMS uint32, inSeq, outSeq uint32) error {
	if err := s.vc.Client().HSet(ctx, sessionKey(sidMS), "in_seq", inSeq, "out_seq", outSeq).Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrValkeyUnavailable, err)
	}
	return nil
}

// Delete はセッションを削除する。存在しなくてもエラーにしない。
func (s *sessionStore) Delete(ctx context.Context, sidMS uint32) error {
	if err := s.vc.Client().Del(ctx, sessionKey(sidMS)).Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrValkeyUnavailable, err)
	}
	return nil
}

// GenerateSessionID はBMC側セッションID（非0）を乱数生成する
func GenerateSessionID() (uint32, error) {
	var b [4]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("session id generation failed: %w", err)
		}
		if id := binary.LittleEndian.Uint32(b[:]); id != 0 {
			return id, nil
		}
	}
}
