package report

import (
	"fmt"
	"io"
	"strings"

	"TcpScannerGo/internal/portscan"
)

// Summary 按状态统计的结果, 只在扫描结束后计算一次
type Summary struct {
	Total    int
	Open     int
	Filtered int
	Closed   int
	Errors   int
}

// Other 屏幕上合并显示的 closed + error
func (s Summary) Other() int {
	return s.Closed + s.Errors
}

func Summarize(results []portscan.ProbeResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case portscan.StatusOpen:
			s.Open++
		case portscan.StatusFiltered:
			s.Filtered++
		case portscan.StatusClosed:
			s.Closed++
		default:
			s.Errors++
		}
	}
	return s
}

// PrintSummary closed 与 error 合并为一行输出
func PrintSummary(w io.Writer, target portscan.ScanTarget, s Summary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scan Summary")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "Target       : %s (%s)\n", target.HostName, target.Address)
	fmt.Fprintf(w, "Total Ports  : %d\n", s.Total)
	fmt.Fprintf(w, "Open Ports   : %d\n", s.Open)
	fmt.Fprintf(w, "Filtered     : %d\n", s.Filtered)
	fmt.Fprintf(w, "Closed/Error : %d\n", s.Other())
}
