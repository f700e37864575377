// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/nscache"
//	"github.com/unkn0wn-root/nscache/hooks/async"
//	"github.com/unkn0wn-root/nscache/hooks/sloghook"
//
// )
//
//	raw := sloghook.New(slog.Default(), sloghook.Options{
//	    SelfHealEvery: 10, // sample logs: ~every 10th self-heal
//	    FallbackEvery: 50, // outages fire this on every call; sample hard
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	cache, _ := nscache.New(nscache.Options{
//	    Backend: backend,
//	    Hooks:   hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/nscache"
)

type Hooks struct {
	inner nscache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ nscache.Hooks = (*Hooks)(nil)

func New(inner nscache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events arriving after
// Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) SelfHeal(k, r string) { h.try(func() { h.inner.SelfHeal(k, r) }) }
func (h *Hooks) SetRejected(k string) { h.try(func() { h.inner.SetRejected(k) }) }
func (h *Hooks) BackendFallback(op, k string, err error) {
	h.try(func() { h.inner.BackendFallback(op, k, err) })
}
func (h *Hooks) IndexWriteFailed(ns, k string, err error) {
	h.try(func() { h.inner.IndexWriteFailed(ns, k, err) })
}
func (h *Hooks) InvalidateIncomplete(ns string, failed int, err error) {
	h.try(func() { h.inner.InvalidateIncomplete(ns, failed, err) })
}
