package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TcpScannerGo/internal/config"
	"TcpScannerGo/internal/log"
	"TcpScannerGo/internal/portscan"
	"TcpScannerGo/internal/report"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/zan8in/goflags"
	"github.com/zan8in/gologger"
	"github.com/zan8in/gologger/levels"
	"go.uber.org/zap"
)

// 退出码
const (
	exitOK          = 0
	exitFatal       = 1
	exitExportError = 2
	exitInterrupted = 130 // 128 + SIGINT
)

func main() {
	options := config.DefaultOptions()
	if err := parseFlags(options); err != nil {
		gologger.Fatal().Msgf("Could not parse flags: %s", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, options, nil)
	stop()
	os.Exit(code)
}

func parseFlags(options *config.Options) error {
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("Asynchronous TCP Port Scanner")

	flagSet.CreateGroup("input", "Target",
		flagSet.StringVarP(&options.Target, "target", "i", config.DefaultTarget, "domain or IP (IPv4 / IPv6)"),
		flagSet.StringVarP(&options.Ports, "ports", "p", config.DefaultPorts, "port or range (e.g. 80 or 1-1024)"),
	)
	flagSet.CreateGroup("scan", "Scan",
		flagSet.IntVarP(&options.Threads, "threads", "t", config.DefaultThreads, "max concurrent connections"),
		flagSet.IntVarP(&options.ExpiryTime, "expiry-time", "e", config.DefaultExpiryTime, "timeout in seconds"),
		flagSet.StringVarP(&options.ConfigFile, "config", "c", "", "yaml profile supplying defaults"),
	)
	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&options.Output, "output", "o", "", "output file name"),
		flagSet.StringVarP(&options.Format, "format", "f", config.DefaultFormat, "output format (json, csv)"),
		flagSet.BoolVarP(&options.OpenOnly, "open-only", "oo", false, "show only open ports"),
		flagSet.BoolVar(&options.Silent, "silent", false, "no banner or info messages"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable colored output"),
		flagSet.BoolVarP(&options.Progress, "progress", "pb", false, "show a progress bar on stderr"),
	)
	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "verbose output"),
		flagSet.StringVarP(&options.LogFile, "log-file", "lf", "", "write every probe to a rotating json log"),
	)

	if err := flagSet.Parse(); err != nil {
		return err
	}
	if options.ConfigFile != "" {
		return options.LoadFile(options.ConfigFile)
	}
	return nil
}

// run 执行一次完整的扫描会话并返回退出码; ctx 取消即视为操作者中断,
// dial 为 nil 时使用默认拨号
func run(ctx context.Context, options *config.Options, dial portscan.DialFunc) int {
	switch {
	case options.Verbose:
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	case options.Silent:
		gologger.DefaultLogger.SetMaxLevel(levels.LevelError)
	}
	if options.NoColor {
		color.NoColor = true
	}

	// 配置与解析错误在任何探测之前终止
	v, err := options.Validate()
	if err != nil {
		gologger.Error().Msgf("Invalid configuration: %s", err)
		return exitFatal
	}
	target, err := portscan.NewResolver().Resolve(ctx, options.Target)
	if err != nil {
		gologger.Error().Msgf("%s", err)
		return exitFatal
	}
	scanner, err := portscan.NewScanner(target, v.Ports, v.Timeout, options.Threads)
	if err != nil {
		gologger.Error().Msgf("Invalid configuration: %s", err)
		return exitFatal
	}
	if dial != nil {
		scanner.WithDialer(dial)
	}

	if limit, ok := config.OpenFileLimit(context.Background()); ok && config.ExceedsOpenFileLimit(options.Threads, limit) {
		gologger.Warning().Msgf("Open file limit is %d, %d threads may exhaust it and report ports as error", limit, options.Threads)
	}

	session := xid.New().String()
	logger := log.New(options.LogFile, session)
	defer logger.Sync()

	if !options.Silent {
		report.PrintBanner(os.Stdout, report.Banner{
			Target:    target,
			Ports:     v.Ports,
			Timeout:   v.Timeout,
			Threads:   options.Threads,
			SessionID: session,
		})
	}

	console := report.NewConsole(os.Stdout, options.OpenOnly)
	if options.Progress {
		console.EnableProgress(len(v.Ports))
	}
	scanner.OnResult = func(o portscan.Outcome) {
		console.Result(o)
		logger.Probe(o)
	}

	start := time.Now()
	rs, err := scanner.Run(ctx)
	console.Finish()

	code := exitOK
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			gologger.Error().Msgf("Scan aborted: %s", err)
			return exitFatal
		}
		fmt.Println("\nScan interrupted by user.")
		code = exitInterrupted
	}
	gologger.Info().Msgf("Scan finished in %s", time.Since(start).Truncate(time.Millisecond))

	// 中断后同样汇总并导出已记录的结果
	results := rs.Snapshot()
	report.PrintSummary(os.Stdout, target, report.Summarize(results))
	logger.Info("scan finished", zap.Int("recorded", len(results)), zap.Bool("interrupted", code == exitInterrupted))

	if options.Output != "" {
		if err := report.Export(options.Output, v.Format, results); err != nil {
			gologger.Error().Msgf("Export failed: %s", err)
			// 中断的退出码优先于导出失败
			if code == exitInterrupted {
				return code
			}
			return exitExportError
		}
		fmt.Printf("\nResults exported to %s\n", options.Output)
	}
	return code
}
