// Package server はRMCP+のUDPサーバーを実装する
package server

import (
	"context"
	"net"
	"sync"
	"sync/atomic"

	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/config"
)

// DatagramHandler は1データグラムの処理を定義する。
// 応答データグラムを返し、応答しない場合はnilを返す。
type DatagramHandler interface {
	HandleDatagram(ctx context.Context, data []byte, addr net.Addr) []byte
}

// Server はRMCP+ UDPサーバー
type Server struct {
	addr    string
	handler DatagramHandler

	mu     sync.Mutex
	conn   net.PacketConn
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewServer は新しいServerを生成する
func NewServer(addr string, handler DatagramHandler) *Server {
	return &Server{
		addr:    addr,
		handler: handler,
	}
}

// ListenAndServe はUDPサーバーを起動し、受信ループを回す。
// Shutdownによる停止時はnilを返す。
func (s *Server) ListenAndServe() error {
	conn, err := net.ListenPacket("udp", s.addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		conn.Close()
		return nil
	}
	s.conn = conn
	s.mu.Unlock()

	buf := make([]byte, config.MaxDatagramSize)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			if s.closed.Load() {
				return nil
			}
			return err
		}

		data := make([]byte, n)
		copy(data, buf[:n])

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if out := s.handler.HandleDatagram(context.Background(), data, addr); out != nil {
				_, _ = conn.WriteTo(out, addr)
			}
		}()
	}
}

// Shutdown はサーバーをグレースフルに停止する。
// 処理中のデータグラムの完了をctxの期限まで待つ。
func (s *Server) Shutdown(ctx context.Context) error {
	s.closed.Store(true)

	s.mu.Lock()
	if s.conn != nil {
		s.conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
