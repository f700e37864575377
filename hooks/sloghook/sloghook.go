package sloghook

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/nscache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all. Self-heals cluster after a
	// schema change, fallbacks fire on every call for the length of an
	// outage.
	SelfHealEvery uint64
	FallbackEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix. Keys usually embed
	// owner ids; don't ship them to logs raw.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr atomic.Uint64
	fallbackCtr atomic.Uint64
}

var _ nscache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) SelfHeal(entryKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("nscache.self_heal",
		"key", h.redact(entryKey),
		"reason", reason)
}

func (h *Hooks) BackendFallback(op, key string, err error) {
	if h.l == nil || !sample(h.opts.FallbackEvery, &h.fallbackCtr) {
		return
	}
	h.l.Warn("nscache.backend_fallback",
		"op", op,
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) IndexWriteFailed(namespaceKey, entryKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("nscache.index_write_failed",
		"ns", h.redact(namespaceKey),
		"key", h.redact(entryKey),
		"err", err)
}

func (h *Hooks) SetRejected(entryKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("nscache.set_rejected",
		"key", h.redact(entryKey))
}

func (h *Hooks) InvalidateIncomplete(namespaceKey string, failed int, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("nscache.invalidate_incomplete",
		"ns", h.redact(namespaceKey),
		"failed", failed,
		"err", err)
}
