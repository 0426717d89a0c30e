package portscan

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/zan8in/gologger"
)

// Scanner 一次扫描会话: 目标、端口列表与配置在创建后只读, 结果集是唯一的共享可变状态
type Scanner struct {
	Target      ScanTarget
	Ports       []int
	Timeout     time.Duration
	Concurrency int

	// OnResult 每条记录写入结果集后调用, 可能被多个 goroutine 同时调用
	OnResult func(Outcome)

	prober  *Prober
	results *ResultSet
}

// NewScanner 创建一个新的扫描器实例, 配置错误在此处暴露而不是扫描途中
func NewScanner(target ScanTarget, ports []int, timeout time.Duration, concurrency int) (*Scanner, error) {
	if concurrency < 1 {
		return nil, errors.Wrapf(ErrInvalidConcurrency, "got %d", concurrency)
	}
	if len(ports) == 0 {
		return nil, errors.Wrap(ErrInvalidPortSpec, "no ports to scan")
	}
	if timeout <= 0 {
		return nil, errors.Wrapf(ErrInvalidTimeout, "got %s", timeout)
	}

	return &Scanner{
		Target:      target,
		Ports:       ports,
		Timeout:     timeout,
		Concurrency: concurrency,
		prober:      NewProber(target, timeout),
		results:     NewResultSet(len(ports)),
	}, nil
}

// WithDialer 替换底层拨号函数
func (s *Scanner) WithDialer(dial DialFunc) *Scanner {
	s.prober.Dial = dial
	return s
}

// Run 扫描全部端口并返回结果集
// ctx 被取消时停止准入新的探测, 已写入的结果保持完整, 同时返回 ctx 的错误
func (s *Scanner) Run(ctx context.Context) (*ResultSet, error) {
	err := RunAll(ctx, s.Ports, s.Concurrency, s.scanPort)
	return s.results, err
}

// Results 当前结果集, 扫描结束前调用只能得到部分结果
func (s *Scanner) Results() *ResultSet {
	return s.results
}

func (s *Scanner) scanPort(ctx context.Context, port int) {
	out, err := s.prober.Probe(ctx, port)
	if err != nil {
		gologger.Debug().Msgf("%s", err)
		return
	}
	if out.Err != nil {
		gologger.Debug().Msgf("port %d %s after %s: %v", port, out.Result.Status, out.Elapsed.Truncate(time.Millisecond), out.Err)
	}

	if err := s.results.Record(out.Result); err != nil {
		gologger.Warning().Msgf("%s", err)
		return
	}
	if s.OnResult != nil {
		s.OnResult(out)
	}
}
