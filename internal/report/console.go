package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"TcpScannerGo/internal/portscan"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

var statusColors = map[portscan.Status]*color.Color{
	portscan.StatusOpen:     color.New(color.FgGreen),
	portscan.StatusClosed:   color.New(color.FgRed),
	portscan.StatusFiltered: color.New(color.FgYellow),
	portscan.StatusError:    color.New(color.FgMagenta),
}

// Console 逐条打印探测结果, 可被多个 goroutine 并发调用
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	openOnly bool
	bar      *progressbar.ProgressBar
}

// NewConsole openOnly 只过滤屏幕输出, 不影响结果集
func NewConsole(out io.Writer, openOnly bool) *Console {
	return &Console{out: out, openOnly: openOnly}
}

// EnableProgress 在 stderr 为终端时显示进度条
func (c *Console) EnableProgress(total int) bool {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return false
	}
	c.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(!color.NoColor),
		progressbar.OptionShowBytes(false),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[cyan][scanning][reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return true
}

// Result 作为 Scanner.OnResult 使用
func (c *Console) Result(o portscan.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := o.Result
	if !c.openOnly || r.Status == portscan.StatusOpen {
		if c.bar != nil {
			_ = c.bar.Clear()
		}
		statusColors[r.Status].Fprintln(c.out, FormatLine(r))
	}
	if c.bar != nil {
		_ = c.bar.Add(1)
	}
}

// Finish 收尾进度条
func (c *Console) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bar != nil {
		_ = c.bar.Finish()
		fmt.Fprintln(os.Stderr)
		c.bar = nil
	}
}

// FormatLine 形如 "[OPEN    ] Port 21"
func FormatLine(r portscan.ProbeResult) string {
	return fmt.Sprintf("[%-8s] Port %d", strings.ToUpper(r.Status.String()), r.Port)
}

// Banner 扫描前打印的会话信息
type Banner struct {
	Target    portscan.ScanTarget
	Ports     []int
	Timeout   time.Duration
	Threads   int
	SessionID string
}

func PrintBanner(w io.Writer, b Banner) {
	title := color.New(color.FgCyan)
	title.Fprintln(w, strings.Repeat("=", 50))
	title.Fprintln(w, " Asynchronous TCP Port Scanner")
	title.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Target      : %s\n", b.Target.HostName)
	fmt.Fprintf(w, "Resolved IP : %s\n", b.Target.Address)
	fmt.Fprintf(w, "IP Version  : %s\n", b.Target.Family)
	if len(b.Ports) > 0 {
		fmt.Fprintf(w, "Ports       : %d - %d\n", b.Ports[0], b.Ports[len(b.Ports)-1])
	}
	fmt.Fprintf(w, "Timeout     : %s\n", b.Timeout)
	fmt.Fprintf(w, "Threads     : %d\n", b.Threads)
	if b.SessionID != "" {
		fmt.Fprintf(w, "Session     : %s\n", b.SessionID)
	}
	fmt.Fprintln(w, strings.Repeat("-", 50))
}
