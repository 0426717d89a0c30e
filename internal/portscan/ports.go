package portscan

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	MinPort = 1
	MaxPort = 65535
)

// ParsePorts 解析 "80" 或 "1-1024" 形式的端口描述, 返回升序且不重复的端口列表
// end < start 直接报错, 不做交换
func ParsePorts(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, errors.Wrap(ErrInvalidPortSpec, "empty spec")
	}

	if !strings.Contains(spec, "-") {
		p, err := parsePort(spec)
		if err != nil {
			return nil, err
		}
		return []int{p}, nil
	}

	bounds := strings.SplitN(spec, "-", 2)
	start, err := parsePort(bounds[0])
	if err != nil {
		return nil, err
	}
	end, err := parsePort(bounds[1])
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, errors.Wrapf(ErrInvalidRange, "%q: end %d is below start %d", spec, end, start)
	}

	ports := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		ports = append(ports, p)
	}
	return ports, nil
}

func parsePort(s string) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidPortSpec, "%q is not a number", s)
	}
	if v < MinPort || v > MaxPort {
		return 0, errors.Wrapf(ErrInvalidPortSpec, "port %d outside %d..%d", v, MinPort, MaxPort)
	}
	return v, nil
}
