package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"TcpScannerGo/internal/portscan"
	"github.com/pkg/errors"
)

var (
	ErrInvalidFormat  = errors.New("output format must be json or csv")
	ErrEmptyResultSet = errors.New("no results to export")
)

// Format 导出格式
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	}
	return "", errors.Wrapf(ErrInvalidFormat, "got %q", s)
}

// csvHeader 与 ProbeResult 的 JSON 字段顺序一致
var csvHeader = []string{"target", "ip", "port", "protocol", "status", "timestamp"}

// Encode 把结果集序列化到 w, 行顺序即完成顺序
func Encode(w io.Writer, format Format, results []portscan.ProbeResult) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, results)
	case FormatCSV:
		return encodeCSV(w, results)
	}
	return errors.Wrapf(ErrInvalidFormat, "got %q", format)
}

func encodeJSON(w io.Writer, results []portscan.ProbeResult) error {
	if results == nil {
		results = []portscan.ProbeResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return errors.Wrap(enc.Encode(results), "encode json")
}

// encodeCSV 表头取自第一条记录的字段, 空结果集直接报错
func encodeCSV(w io.Writer, results []portscan.ProbeResult) error {
	if len(results) == 0 {
		return errors.Wrap(ErrEmptyResultSet, "csv needs at least one record for its header")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, r := range results {
		row := []string{
			r.Target,
			r.IP,
			strconv.Itoa(r.Port),
			r.Protocol,
			r.Status.String(),
			r.Timestamp.Format(time.RFC3339Nano),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "write csv row for port %d", r.Port)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

// Export 先在内存中完成序列化, 再原子替换目标文件; 失败时不会留下半成品
func Export(path string, format Format, results []portscan.ProbeResult) error {
	var buf bytes.Buffer
	if err := Encode(&buf, format, results); err != nil {
		return err
	}
	return WriteAtomic(path, buf.Bytes())
}
