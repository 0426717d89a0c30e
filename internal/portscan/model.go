package portscan

import (
	"fmt"
	"strings"
	"time"
)

// Protocol 是唯一支持的探测协议
const Protocol = "TCP"

// Status 端口探测的终态
type Status int

const (
	StatusOpen     Status = iota // 握手完成
	StatusClosed                 // 对端主动拒绝 (RST)
	StatusFiltered               // 超时内无任何响应
	StatusError                  // 其他一切失败
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	case StatusFiltered:
		return "filtered"
	default:
		return "error"
	}
}

// MarshalText 让 JSON/CSV 中的状态以小写字符串出现
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStatus 将字符串还原为 Status
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return StatusOpen, nil
	case "closed":
		return StatusClosed, nil
	case "filtered":
		return StatusFiltered, nil
	case "error":
		return StatusError, nil
	}
	return StatusError, fmt.Errorf("unknown status %q", s)
}

// Family 地址族
type Family int

const (
	IPv4 Family = iota
	IPv6
)

func (f Family) String() string {
	if f == IPv6 {
		return "IPv6"
	}
	return "IPv4"
}

// network 返回拨号使用的网络名, 强制使用解析得到的地址族
func (f Family) network() string {
	if f == IPv6 {
		return "tcp6"
	}
	return "tcp4"
}

// ScanTarget 启动时解析一次, 之后只读
type ScanTarget struct {
	HostName string
	Address  string
	Family   Family
}

// ProbeResult 单个端口的探测记录, 创建后不可变
// 字段顺序即导出顺序: target, ip, port, protocol, status, timestamp
type ProbeResult struct {
	Target    string    `json:"target"`
	IP        string    `json:"ip"`
	Port      int       `json:"port"`
	Protocol  string    `json:"protocol"`
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
