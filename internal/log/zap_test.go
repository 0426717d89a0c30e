package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"TcpScannerGo/internal/portscan"
)

func TestProbeLogger_WritesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.log")
	l := New(path, "c0ffee")

	l.Probe(portscan.Outcome{
		Result:  portscan.ProbeResult{IP: "127.0.0.1", Port: 21, Status: portscan.StatusOpen},
		Elapsed: 3 * time.Millisecond,
	})
	l.Probe(portscan.Outcome{
		Result:  portscan.ProbeResult{IP: "127.0.0.1", Port: 22, Status: portscan.StatusError},
		Elapsed: time.Millisecond,
		Err:     errors.New("socket: too many open files"),
	})
	_ = l.Sync()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var records []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("log line is not json: %q", sc.Text())
		}
		records = append(records, rec)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["session"] != "c0ffee" || records[0]["status"] != "open" || records[0]["port"] != float64(21) {
		t.Fatalf("unexpected first record %v", records[0])
	}
	if _, ok := records[0]["detail"]; ok {
		t.Fatal("open probe should carry no failure detail")
	}
	if records[1]["detail"] != "socket: too many open files" {
		t.Fatalf("failure detail missing: %v", records[1])
	}
}

func TestProbeLogger_NopWithoutPath(t *testing.T) {
	l := New("", "x")
	l.Probe(portscan.Outcome{Result: portscan.ProbeResult{Port: 1}})
	l.Info("ignored")
	if err := l.Sync(); err != nil {
		t.Fatalf("nop sync: %v", err)
	}
}
