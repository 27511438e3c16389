// Package store はValkeyへの接続とキー設計を提供する
package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/config"
)

// ValkeyClient はValkey接続のラッパー
type ValkeyClient struct {
	client *redis.Client
}

// NewValkeyClient はValkeyに接続し、疎通確認を行う
func NewValkeyClient(cfg *config.Config) (*ValkeyClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.ValkeyAddr(),
		Password:     cfg.RedisPass,
		DialTimeout:  config.ValkeyConnectTimeout,
		ReadTimeout:  config.ValkeyCommandTimeout,
		WriteTimeout: config.ValkeyCommandTimeout,
		PoolSize:     config.ValkeyPoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), config.ValkeyConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", ErrValkeyUnavailable, err)
	}

	return &ValkeyClient{client: client}, nil
}

// Client は内部のredisクライアントを返す
func (vc *ValkeyClient) Client() *redis.Client {
	return vc.client
}

// Close は接続を閉じる
func (vc *ValkeyClient) Close() error {
	return vc.client.Close()
}
