package health

import "sync/atomic"

// Readiness 就绪状态聚合（发射器、存储）
type Readiness struct {
	emitterReady atomic.Bool
	storeReady   atomic.Bool
}

func New() *Readiness { return &Readiness{} }

func (r *Readiness) SetEmitterReady(v bool) { r.emitterReady.Store(v) }
func (r *Readiness) SetStoreReady(v bool)   { r.storeReady.Store(v) }

// Ready 总体就绪：各子系统均为 true
func (r *Readiness) Ready() bool {
	return r.emitterReady.Load() && r.storeReady.Load()
}
