package typedbus

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-typedbus/config"
)

func TestModule_Wiring(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Executor.Kind = config.ExecutorSerial
	cfg.Executor.Name = "fx-test"

	reg := prometheus.NewRegistry()

	var (
		s     *Storage
		stats *Stats
		exec  Executor
	)
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(func() prometheus.Registerer { return reg }),
		Module(),
		fx.Populate(&s, &stats, &exec),
	)
	app.RequireStart()

	q, ok := exec.(*Queue)
	require.True(t, ok)
	assert.Equal(t, "fx-test", q.Name())
	assert.Equal(t, exec, s.Executor())

	Post(counterChanged{N: 1}, WithStorage(s))
	require.NotNil(t, stats)
	assert.EqualValues(t, 1, stats.Totals().Posted)

	count, err := testutil.GatherAndCount(reg, "typedbus_events_posted_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// 停止时关闭串行队列
	app.RequireStop()
	assert.ErrorIs(t, q.Close(context.Background()), ErrExecutorClosed)
}

func TestNewApp(t *testing.T) {
	var s *Storage
	app, err := NewApp(nil, nil, fx.Populate(&s))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	assert.NotNil(t, s)
	require.NoError(t, app.Stop(ctx))
}

func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Executor.Kind = "bogus"

	_, err := NewApp(cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
