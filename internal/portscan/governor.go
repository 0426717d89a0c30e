package portscan

import (
	"context"

	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"
)

// ProbeFunc 由 RunAll 为每个端口调用一次
type ProbeFunc func(ctx context.Context, port int)

// RunAll 最多同时运行 maxConcurrent 个 fn, 其余端口排队等待空位
// 令牌在启动 goroutine 之前获取, 取消信号在两次准入之间检查;
// 已准入的 fn 总会被等待结束; 只要运行期间 ctx 被取消 (包括全部端口已准入之后),
// 就返回 ctx 的错误
func RunAll(ctx context.Context, ports []int, maxConcurrent int, fn ProbeFunc) error {
	if maxConcurrent < 1 {
		return errors.Wrapf(ErrInvalidConcurrency, "got %d", maxConcurrent)
	}

	swg := sizedwaitgroup.New(maxConcurrent)
	var err error
	for _, port := range ports {
		if err = ctx.Err(); err != nil {
			break
		}
		// 获取令牌, 没有空位时阻塞
		if err = swg.AddWithContext(ctx); err != nil {
			break
		}
		go func(p int) {
			defer swg.Done()
			fn(ctx, p)
		}(port)
	}

	swg.Wait()
	if err == nil {
		// 取消发生在最后一次准入之后, 在途探测已被放弃
		err = ctx.Err()
	}
	return err
}
