package server

import (
	"context"
	"log/slog"
	"net"

	"github.com/google/uuid"
	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/engine"
	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/rmcp"
)

// Handler は受信データグラムをRMCP+パケットとして処理するハンドラ
type Handler struct {
	engine engine.Processor
}

// NewHandler は新しいHandlerを生成する
func NewHandler(engine engine.Processor) *Handler {
	return &Handler{engine: engine}
}

// HandleDatagram は1つのデータグラムを処理し、応答データグラムを返す。
// 応答しない場合はnilを返す。
func (h *Handler) HandleDatagram(ctx context.Context, data []byte, addr net.Addr) []byte {
	traceID := uuid.New().String()
	srcIP := extractIP(addr)

	slog.Info("RMCPパケット受信",
		"event_id", "PKT_RECV",
		"trace_id", traceID,
		"src_ip", srcIP,
		"size", len(data),
	)

	pkt, err := rmcp.Parse(data)
	if err != nil {
		slog.Warn("RMCPパケットパース失敗",
			"event_id", "PKT_PARSE_ERR",
			"trace_id", traceID,
			"src_ip", srcIP,
			"error", err,
		)
		// 応答なし
		return nil
	}

	out, err := h.engine.Process(ctx, traceID, pkt)
	if err != nil {
		slog.Error("パケット処理失敗",
			"event_id", "PKT_PROC_ERR",
			"trace_id", traceID,
			"src_ip", srcIP,
			"error", err,
		)
		return nil
	}
	return out
}

// extractIP はnet.AddrからIPアドレス部分を取り出す
func extractIP(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
