package eventbus

import (
	"reflect"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dep2p/go-typedbus/internal/core/metrics"
	pkgif "github.com/dep2p/go-typedbus/pkg/interfaces"
	"github.com/dep2p/go-typedbus/pkg/lib/log"
)

var logger = log.Logger("core/eventbus")

// StaleInfo 失效观察者诊断信息
type StaleInfo struct {
	StorageID  uuid.UUID
	EventType  reflect.Type
	ObserverID uuid.UUID
	Observer   string // 订阅者类型名
}

// StaleHandler 失效观察者回调
//
// 在发布方 goroutine 上同步调用，不应阻塞。
type StaleHandler func(StaleInfo)

// env Storage 与其下所有 Bus 共享的运行环境
//
// 创建 Storage 后只读。
type env struct {
	storageID  uuid.UUID
	executor   pkgif.Executor
	recorder   metrics.Recorder
	pruneStale bool
	onStale    StaleHandler
	limiter    *rate.Limiter // nil 表示不输出失效日志
}

// reportStale 记录一次失效投递
func (e *env) reportStale(typ reflect.Type, id uuid.UUID, label string) {
	e.recorder.Stale(metrics.TypeName(typ))

	if e.limiter != nil && e.limiter.Allow() {
		logger.Warn("观察者未注销但已被回收，跳过投递",
			"storage", log.TruncateID(e.storageID.String(), 8),
			"event", typ.String(),
			"observer", label,
			"observerID", id.String())
	}

	if e.onStale != nil {
		e.onStale(StaleInfo{
			StorageID:  e.storageID,
			EventType:  typ,
			ObserverID: id,
			Observer:   label,
		})
	}
}
