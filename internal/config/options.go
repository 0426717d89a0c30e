package config

import (
	"os"
	"time"

	"TcpScannerGo/internal/portscan"
	"TcpScannerGo/internal/report"
	"github.com/pkg/errors"
	"github.com/zan8in/fileutil"
	"gopkg.in/yaml.v2"
)

// 内置默认值, 与命令行帮助保持一致
const (
	DefaultTarget     = "127.0.0.1"
	DefaultPorts      = "1-1024"
	DefaultThreads    = 100
	DefaultExpiryTime = 2
	DefaultFormat     = "json"
)

var ErrConfigFile = errors.New("invalid config file")

// Options 操作者可配置的全部选项
type Options struct {
	Target     string `yaml:"target"`
	Ports      string `yaml:"ports"`
	Threads    int    `yaml:"threads"`
	ExpiryTime int    `yaml:"expiry_time"`
	Verbose    bool   `yaml:"verbose"`
	OpenOnly   bool   `yaml:"open_only"`
	Output     string `yaml:"output"`
	Format     string `yaml:"format"`
	LogFile    string `yaml:"log_file"`

	ConfigFile string `yaml:"-"`
	Silent     bool   `yaml:"-"`
	NoColor    bool   `yaml:"-"`
	Progress   bool   `yaml:"-"`
}

func DefaultOptions() *Options {
	return &Options{
		Target:     DefaultTarget,
		Ports:      DefaultPorts,
		Threads:    DefaultThreads,
		ExpiryTime: DefaultExpiryTime,
		Format:     DefaultFormat,
	}
}

// Timeout 单个探测的超时
func (o *Options) Timeout() time.Duration {
	return time.Duration(o.ExpiryTime) * time.Second
}

// LoadFile 读取 YAML 配置, 只填充命令行仍为默认值的选项
func (o *Options) LoadFile(path string) error {
	if !fileutil.FileExists(path) {
		return errors.Wrapf(ErrConfigFile, "%s does not exist", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(ErrConfigFile, "read %s: %v", path, err)
	}

	var file Options
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return errors.Wrapf(ErrConfigFile, "parse %s: %v", path, err)
	}
	o.merge(&file)
	return nil
}

func (o *Options) merge(f *Options) {
	if o.Target == DefaultTarget && f.Target != "" {
		o.Target = f.Target
	}
	if o.Ports == DefaultPorts && f.Ports != "" {
		o.Ports = f.Ports
	}
	if o.Threads == DefaultThreads && f.Threads != 0 {
		o.Threads = f.Threads
	}
	if o.ExpiryTime == DefaultExpiryTime && f.ExpiryTime != 0 {
		o.ExpiryTime = f.ExpiryTime
	}
	if o.Format == DefaultFormat && f.Format != "" {
		o.Format = f.Format
	}
	if o.Output == "" {
		o.Output = f.Output
	}
	if o.LogFile == "" {
		o.LogFile = f.LogFile
	}
	o.Verbose = o.Verbose || f.Verbose
	o.OpenOnly = o.OpenOnly || f.OpenOnly
}

// Validated 校验后的扫描参数
type Validated struct {
	Ports   []int
	Format  report.Format
	Timeout time.Duration
}

// Validate 在任何探测开始之前暴露全部配置错误
func (o *Options) Validate() (*Validated, error) {
	ports, err := portscan.ParsePorts(o.Ports)
	if err != nil {
		return nil, err
	}
	if o.Threads < 1 {
		return nil, errors.Wrapf(portscan.ErrInvalidConcurrency, "got %d", o.Threads)
	}
	if o.ExpiryTime < 1 {
		return nil, errors.Wrapf(portscan.ErrInvalidTimeout, "expiry time must be at least 1 second, got %d", o.ExpiryTime)
	}
	format, err := report.ParseFormat(o.Format)
	if err != nil {
		return nil, err
	}
	return &Validated{Ports: ports, Format: format, Timeout: o.Timeout()}, nil
}
