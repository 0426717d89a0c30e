package portscan

import (
	"context"
	"net"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
)

// ErrAbandoned 探测因外部取消而放弃, 不产生任何记录
var ErrAbandoned = errors.New("probe abandoned")

// DialFunc 与 net.Dialer.DialContext 签名一致
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Outcome 探测记录以及不进入数据模型的诊断信息
type Outcome struct {
	Result  ProbeResult
	Elapsed time.Duration
	Err     error // 原始拨号错误, open 时为 nil
}

// Prober 对单个端口做一次有时限的 TCP 握手
type Prober struct {
	Target  ScanTarget
	Timeout time.Duration
	Dial    DialFunc
}

// NewProber 使用禁用 KeepAlive 的默认 Dialer
func NewProber(target ScanTarget, timeout time.Duration) *Prober {
	d := &net.Dialer{
		KeepAlive: -1, // 扫描不需要保持连接
	}
	return &Prober{
		Target:  target,
		Timeout: timeout,
		Dial:    d.DialContext,
	}
}

// Probe 只尝试一次, 超时时钟从发起连接开始, 与其他探测互不影响
// 仅当父 ctx 被取消时返回 ErrAbandoned, 其余失败全部折叠为状态
func (p *Prober) Probe(ctx context.Context, port int) (Outcome, error) {
	address := net.JoinHostPort(p.Target.Address, strconv.Itoa(port))

	dialCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	start := time.Now()
	conn, err := p.Dial(dialCtx, p.Target.Family.network(), address)
	elapsed := time.Since(start)

	if err != nil && ctx.Err() != nil {
		return Outcome{}, errors.Wrapf(ErrAbandoned, "port %d", port)
	}
	if conn != nil {
		conn.Close()
	}

	return Outcome{
		Result: ProbeResult{
			Target:    p.Target.HostName,
			IP:        p.Target.Address,
			Port:      port,
			Protocol:  Protocol,
			Status:    Classify(err),
			Timestamp: time.Now().UTC(),
		},
		Elapsed: elapsed,
		Err:     err,
	}, nil
}

// Classify 把拨号错误映射为终态: 先匹配已知的超时与拒绝, 其余一律为 error
func Classify(err error) Status {
	if err == nil {
		return StatusOpen
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return StatusFiltered
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return StatusFiltered
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return StatusClosed
	}
	// Windows 上的 WSAECONNREFUSED 不等于 syscall.ECONNREFUSED
	if strings.Contains(err.Error(), "refused") {
		return StatusClosed
	}

	return StatusError
}
