package config

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config はアプリケーション設定を保持する
type Config struct {
	// Valkey接続設定
	RedisHost string `envconfig:"REDIS_HOST" required:"true"`
	RedisPort string `envconfig:"REDIS_PORT" required:"true"`
	RedisPass string `envconfig:"REDIS_PASS" required:"true"`

	// Key Service設定
	KeystoreAPIURL string `envconfig:"KEYSTORE_API_URL" required:"true"`

	// RMCP+設定
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":623"`
	BMCGUID    string `envconfig:"BMC_GUID" required:"true"` // 16バイトHex（32文字）

	// ログ設定
	LogMaskKeys bool `envconfig:"LOG_MASK_KEYS" default:"true"`
}

// Load は環境変数から設定を読み込む
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// ValkeyAddr はValkey接続アドレスを "host:port" 形式で返す
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// GUID はBMC GUIDを16バイトのバイト列として返す。
// validate済みの値に対してのみ呼び出すこと。
func (c *Config) GUID() []byte {
	b, _ := hex.DecodeString(c.BMCGUID)
	return b
}

// validate は設定値のバリデーションを行う
func (c *Config) validate() error {
	if !strings.HasPrefix(c.KeystoreAPIURL, "http://") && !strings.HasPrefix(c.KeystoreAPIURL, "https://") {
		return fmt.Errorf("KEYSTORE_API_URL must start with http:// or https://")
	}
	b, err := hex.DecodeString(c.BMCGUID)
	if err != nil || len(b) != 16 {
		return fmt.Errorf("BMC_GUID must be 32 hex characters")
	}
	return nil
}
