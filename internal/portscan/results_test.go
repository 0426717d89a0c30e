package portscan

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
)

func TestResultSet_ConcurrentRecord(t *testing.T) {
	const n = 500
	rs := NewResultSet(0)

	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(port int) {
			defer wg.Done()
			if err := rs.Record(ProbeResult{Port: port, Protocol: Protocol, Status: StatusClosed}); err != nil {
				t.Errorf("record %d: %v", port, err)
			}
		}(i)
	}
	wg.Wait()

	if rs.Len() != n {
		t.Fatalf("expected %d records, got %d", n, rs.Len())
	}
	seen := make(map[int]bool)
	for _, r := range rs.Snapshot() {
		if seen[r.Port] {
			t.Fatalf("duplicate port %d", r.Port)
		}
		seen[r.Port] = true
	}
}

func TestResultSet_RejectsDuplicatePort(t *testing.T) {
	rs := NewResultSet(2)
	if err := rs.Record(ProbeResult{Port: 80, Status: StatusOpen}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := rs.Record(ProbeResult{Port: 80, Status: StatusClosed})
	if !errors.Is(err, ErrDuplicatePort) {
		t.Fatalf("expected ErrDuplicatePort, got %v", err)
	}
	snap := rs.Snapshot()
	if len(snap) != 1 || snap[0].Status != StatusOpen {
		t.Fatalf("first record must survive, got %+v", snap)
	}
}

func TestResultSet_SnapshotIsCopy(t *testing.T) {
	rs := NewResultSet(1)
	_ = rs.Record(ProbeResult{Port: 21, Status: StatusOpen})

	snap := rs.Snapshot()
	snap[0].Status = StatusError

	if got := rs.Snapshot()[0].Status; got != StatusOpen {
		t.Fatalf("snapshot mutation leaked into result set: %s", got)
	}
}
