package engine

import (
	"context"

	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/rmcp"
)

// Processor はRMCP+パケット処理のインターフェース
type Processor interface {
	// Process はパケットを処理し、応答データグラムを返す。
	// 応答しない場合はnilを返す。
	Process(ctx context.Context, traceID string, pkt *rmcp.Packet) ([]byte, error)
}
