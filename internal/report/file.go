package report

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteAtomic 写入同目录下的临时文件, fsync 后 rename 覆盖目标
// 任一步失败都会删除临时文件, 原文件保持不变
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "mkdir %s", dir)
		}
	}

	tmp, err := os.CreateTemp(dir, ".tcpscanner-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return errors.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "close temp file")
	}
	// CreateTemp 使用 0600, 导出文件应当对其他用户可读
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "chmod temp file")
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrapf(err, "rename into %s", path)
	}
	return nil
}
