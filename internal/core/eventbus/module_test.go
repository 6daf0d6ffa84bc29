package eventbus

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-typedbus/config"
	"github.com/dep2p/go-typedbus/internal/core/executor"
	"github.com/dep2p/go-typedbus/internal/core/metrics"
	pkgif "github.com/dep2p/go-typedbus/pkg/interfaces"
)

// TestModule_Standalone 无任何可选依赖时使用默认值
func TestModule_Standalone(t *testing.T) {
	var s *Storage
	app := fxtest.New(t,
		Module(),
		fx.Populate(&s),
	)
	app.RequireStart()

	require.NotNil(t, s)
	assert.NotSame(t, Default(), s)
	assert.Same(t, executor.Main(), s.Executor())

	app.RequireStop()
}

// TestModule_WithDependencies 测试与 executor、metrics 模块组合
func TestModule_WithDependencies(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Executor.Kind = config.ExecutorInline

	var (
		s     *Storage
		stats *metrics.Stats
		exec  pkgif.Executor
	)
	app := fxtest.New(t,
		fx.Supply(cfg),
		executor.Module(),
		metrics.Module,
		Module(),
		fx.Populate(&s, &stats, &exec),
	)
	app.RequireStart()

	assert.Equal(t, exec, s.Executor())

	sub := newSubscriber("fx")
	var got recorder[Ping]
	o, err := NewObserver(sub, s.Executor(), got.add)
	require.NoError(t, err)
	BusFor[Ping](s).Register(o)
	BusFor[Ping](s).Post(Ping{N: 1})

	assert.Equal(t, []Ping{{1}}, got.events())
	require.NotNil(t, stats)
	assert.EqualValues(t, 1, stats.For(metrics.TypeName(BusFor[Ping](s).EventType())).Delivered)
	runtime.KeepAlive(sub)

	app.RequireStop()
}

// TestModule_StaleHandler 测试注入失效回调
func TestModule_StaleHandler(t *testing.T) {
	var s *Storage
	app := fxtest.New(t,
		fx.Provide(func() StaleHandler { return func(StaleInfo) {} }),
		Module(),
		fx.Populate(&s),
	)
	app.RequireStart()
	assert.NotNil(t, s.env.onStale)
	app.RequireStop()
}
