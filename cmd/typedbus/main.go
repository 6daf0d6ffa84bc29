// Package main 提供 typedbus 演示命令行入口
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/dep2p/go-typedbus"
	"github.com/dep2p/go-typedbus/config"
	"github.com/dep2p/go-typedbus/pkg/lib/log"
)

var logger = log.Logger("typedbus/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
// 命令行参数：运行时覆盖（「这次运行」想怎么跑）
// JSON 配置文件：持久化配置（执行上下文、诊断、指标）
//
// ═══════════════════════════════════════════════════════════════════════════
var (
	configFile = flag.String("config", "", "配置文件路径")
	preset     = flag.String("preset", "default", "预设配置 (default/debug/throughput)")
	executor   = flag.String("executor", "", "执行上下文 (main/serial/pool/goroutine/inline)，覆盖配置文件")
	events     = flag.Int("events", 5, "演示发布的普通事件数量")

	// ─────────────────────────────────────────────────────────────────────
	// 日志与指标
	// ─────────────────────────────────────────────────────────────────────
	logLevel    = flag.String("log-level", "", "日志级别，可按组件指定（如 core/eventbus=debug,info），覆盖配置文件")
	logFormat   = flag.String("log-format", "", "日志格式 (text/json)，覆盖配置文件")
	fxLog       = flag.Bool("fx-log", false, "输出 Fx 内部日志")
	metricsAddr = flag.String("metrics-addr", "", "Prometheus 指标监听地址（如 :9090），设置后运行到 Ctrl+C")
	dumpConfig  = flag.Bool("dump-config", false, "打印最终配置后退出")

	showVersion = flag.Bool("version", false, "显示版本信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Println(typedbus.VersionInfo())
		return nil
	}

	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	if *dumpConfig {
		data, err := config.ToJSON(cfg)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if err := setupLogging(cfg.Log); err != nil {
		return err
	}

	var fxLogger *zap.Logger
	if *fxLog {
		if fxLogger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("创建 Fx 日志失败: %w", err)
		}
		defer func() { _ = fxLogger.Sync() }()
	}

	reg := prometheus.NewRegistry()

	var (
		storage *typedbus.Storage
		stats   *typedbus.Stats
	)
	app, err := typedbus.NewApp(cfg, fxLogger,
		fx.Provide(func() prometheus.Registerer { return reg }),
		fx.Populate(&storage, &stats),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}

	fmt.Printf("📦 %s\n", typedbus.VersionInfo())
	logger.Info("事件总线已启动",
		"storage", storage.ID().String(),
		"executor", cfg.Executor.Kind)

	if err := runDemo(storage, *events); err != nil {
		_ = app.Stop(context.Background())
		return err
	}

	if *metricsAddr != "" {
		if err := serveMetrics(*metricsAddr, reg); err != nil {
			_ = app.Stop(context.Background())
			return err
		}
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("停止失败: %w", err)
	}

	printStats(stats)
	return nil
}

// setupLogging 按配置重建默认 logger
func setupLogging(cfg config.LogConfig) error {
	return log.SetupLevels(os.Stderr, cfg.Format, cfg.Level)
}

// ═══════════════════════════════════════════════════════════════════════════
// 演示
// ═══════════════════════════════════════════════════════════════════════════

// tick 普通事件
type tick struct {
	Seq int
}

// status 缓冲事件
type status struct {
	typedbus.Buffered
	State string
}

// printer 演示订阅者
type printer struct {
	name string
}

// runDemo 注册演示订阅者并发布事件，等待所有回调执行完毕
func runDemo(storage *typedbus.Storage, n int) error {
	on := typedbus.WithStorage(storage)

	var wg sync.WaitGroup
	onTick := func(p *printer, e tick) {
		defer wg.Done()
		fmt.Printf("  [%s] tick #%d\n", p.name, e.Seq)
	}

	first, second := &printer{name: "first"}, &printer{name: "second"}
	if err := typedbus.Bind(first, onTick, on); err != nil {
		return err
	}
	if err := typedbus.Bind(second, onTick, on); err != nil {
		return err
	}

	// 先发布缓冲事件，之后注册的 monitor 立即收到
	typedbus.Post(status{State: "starting"}, on)

	monitor := &printer{name: "monitor"}
	wg.Add(1)
	if err := typedbus.Bind(monitor, func(p *printer, s status) {
		defer wg.Done()
		fmt.Printf("  [%s] status=%s\n", p.name, s.State)
	}, on); err != nil {
		wg.Done()
		return err
	}

	fmt.Println("发布普通事件:")
	for i := 1; i <= n; i++ {
		wg.Add(2)
		typedbus.Post(tick{Seq: i}, on)
	}

	wg.Add(1)
	typedbus.Post(status{State: "running"}, on)

	// 注销后 second 不再收到
	typedbus.Unregister[tick](second, on)
	wg.Add(1)
	typedbus.Post(tick{Seq: n + 1}, on)

	if err := waitTimeout(&wg, 5*time.Second); err != nil {
		return err
	}

	if last, ok := typedbus.LastValue[status](on); ok {
		fmt.Printf("最后状态: %s\n", last.State)
	}

	typedbus.UnregisterAll(first, on)
	typedbus.UnregisterAll(monitor, on)
	return nil
}

// waitTimeout 等待 WaitGroup，超时返回错误
func waitTimeout(wg *sync.WaitGroup, d time.Duration) error {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-time.After(d):
		return errors.New("等待回调超时")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 指标
// ═══════════════════════════════════════════════════════════════════════════

// serveMetrics 在 addr 上提供 /metrics，直到收到退出信号
func serveMetrics(addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	fmt.Printf("指标服务: http://%s/metrics，按 Ctrl+C 退出\n", addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return fmt.Errorf("指标服务失败: %w", err)
	case <-sigCh:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// printStats 打印各事件类型的计数
func printStats(stats *typedbus.Stats) {
	if stats == nil {
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("%-24s %8s %8s %8s %8s\n", "事件类型", "注册", "发布", "投递", "失效")
	for _, name := range stats.EventTypes() {
		s := stats.For(name)
		fmt.Printf("%-24s %8d %8d %8d %8d\n", name, s.Registered, s.Posted, s.Delivered, s.Stale)
	}
	t := stats.Totals()
	fmt.Printf("%-24s %8d %8d %8d %8d\n", "合计", t.Registered, t.Posted, t.Delivered, t.Stale)
	fmt.Println("═══════════════════════════════════════════════════════════")
}
