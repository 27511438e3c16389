package session

import (
	"sync"

	"github.com/oyaguma3/rmcpplus-bmc-poc/internal/cipher/integrity"
)

// AlgoCache はセッションごとのIntegrityインスタンスを保持するインメモリキャッシュ。
// K1導出はセッション確立時の一度だけ行い、以後のパケット処理では
// 同一インスタンスを読み取り専用で共有する（Integrityは構築後不変）。
// Valkey上のセッションレコードから都度再構築すると毎パケットで鍵導出が走るため、
// プロセスローカルに持つ。キャッシュミス時はSIKから再構築すればよい。
type AlgoCache struct {
	mu    sync.RWMutex
	algos map[uint32]*integrity.Integrity
}

// NewAlgoCache は空のAlgoCacheを生成する
func NewAlgoCache() *AlgoCache {
	return &AlgoCache{algos: make(map[uint32]*integrity.Integrity)}
}

// Put はセッションのIntegrityインスタンスを登録する
func (c *AlgoCache) Put(sidMS uint32, algo *integrity.Integrity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.algos[sidMS] = algo
}

// Get はセッションのIntegrityインスタンスを取得する
func (c *AlgoCache) Get(sidMS uint32) (*integrity.Integrity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	algo, ok := c.algos[sidMS]
	return algo, ok
}

// Delete はインスタンスを破棄し、K1をゼロ化する
func (c *AlgoCache) Delete(sidMS uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if algo, ok := c.algos[sidMS]; ok {
		algo.Wipe()
		delete(c.algos, sidMS)
	}
}
