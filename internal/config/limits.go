package config

import (
	"context"
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// fdReserve 标准输入输出、日志文件与导出文件占用的描述符
const fdReserve = 16

// OpenFileLimit 返回当前进程的 RLIMIT_NOFILE 软限制, 平台不支持时 ok 为 false
func OpenFileLimit(ctx context.Context) (limit uint64, ok bool) {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return 0, false
	}
	limits, err := proc.RlimitWithContext(ctx)
	if err != nil {
		return 0, false
	}
	for _, l := range limits {
		if l.Resource == process.RLIMIT_NOFILE {
			return l.Soft, true
		}
	}
	return 0, false
}

// ExceedsOpenFileLimit threads 个并发连接是否可能耗尽文件描述符;
// 超出的探测会以 error 状态结束
func ExceedsOpenFileLimit(threads int, limit uint64) bool {
	return uint64(threads)+fdReserve > limit
}
