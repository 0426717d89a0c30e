package portscan

import (
	"context"
	"net"
	"strings"

	"github.com/pkg/errors"
)

// LookupFunc 与 net.Resolver.LookupIPAddr 签名一致, 测试中可替换
type LookupFunc func(ctx context.Context, host string) ([]net.IPAddr, error)

// Resolver 把主机名或字面地址解析为单个地址
type Resolver struct {
	Lookup LookupFunc
}

// NewResolver 使用系统解析器
func NewResolver() *Resolver {
	return &Resolver{Lookup: net.DefaultResolver.LookupIPAddr}
}

// Resolve 只解析一次, 不重试; 取解析结果中的第一个地址 (v4 或 v6 均可)
func (r *Resolver) Resolve(ctx context.Context, host string) (ScanTarget, error) {
	name := strings.TrimSpace(host)
	if name == "" {
		return ScanTarget{}, errors.Wrap(ErrResolution, "empty target")
	}

	// 字面地址无需查询, 允许带方括号的 IPv6
	if ip := net.ParseIP(strings.Trim(name, "[]")); ip != nil {
		return newTarget(host, ip), nil
	}

	lookup := r.Lookup
	if lookup == nil {
		lookup = net.DefaultResolver.LookupIPAddr
	}
	addrs, err := lookup(ctx, name)
	if err != nil {
		return ScanTarget{}, errors.Wrapf(ErrResolution, "%s: %v", host, err)
	}
	for _, a := range addrs {
		if a.IP != nil {
			return newTarget(host, a.IP), nil
		}
	}
	return ScanTarget{}, errors.Wrapf(ErrResolution, "%s: no addresses", host)
}

func newTarget(host string, ip net.IP) ScanTarget {
	t := ScanTarget{HostName: host, Family: IPv6}
	if v4 := ip.To4(); v4 != nil {
		t.Address = v4.String()
		t.Family = IPv4
		return t
	}
	t.Address = ip.String()
	return t
}
