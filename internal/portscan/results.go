package portscan

import (
	"sync"

	"github.com/pkg/errors"
)

// ResultSet 并发安全的只追加结果集, 插入顺序即完成顺序
type ResultSet struct {
	mu      sync.Mutex
	results []ProbeResult
	seen    map[int]struct{}
}

func NewResultSet(capacity int) *ResultSet {
	return &ResultSet{
		results: make([]ProbeResult, 0, capacity),
		seen:    make(map[int]struct{}, capacity),
	}
}

// Record 追加一条记录, 同一端口第二次写入返回 ErrDuplicatePort
func (rs *ResultSet) Record(r ProbeResult) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if _, ok := rs.seen[r.Port]; ok {
		return errors.Wrapf(ErrDuplicatePort, "port %d", r.Port)
	}
	rs.seen[r.Port] = struct{}{}
	rs.results = append(rs.results, r)
	return nil
}

// Snapshot 返回当前内容的副本
func (rs *ResultSet) Snapshot() []ProbeResult {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	out := make([]ProbeResult, len(rs.results))
	copy(out, rs.results)
	return out
}

func (rs *ResultSet) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.results)
}
