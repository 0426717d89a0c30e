package portscan

import "github.com/pkg/errors"

// 启动阶段的致命错误, 调用方用 errors.Is 判断
var (
	ErrResolution         = errors.New("unable to resolve target")
	ErrInvalidPortSpec    = errors.New("invalid port specification")
	ErrInvalidRange       = errors.New("invalid port range")
	ErrInvalidConcurrency = errors.New("max concurrent must be a positive integer")
	ErrInvalidTimeout     = errors.New("probe timeout must be positive")
	ErrDuplicatePort      = errors.New("port already recorded")
)
