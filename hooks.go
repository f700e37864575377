package nscache

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// An entry was deleted by the cache on read.
	// reason ∈ {"corrupt", "expired", "decode"}
	SelfHeal(entryKey, reason string)

	// The primary backend failed an operation and the call was retried on
	// the fallback (degraded mode). op ∈ {"get", "set", "add_to_set",
	// "members", "del"}.
	BackendFallback(op, key string, err error)

	// An entry was stored but could not be registered in its namespace
	// index. It stays readable by key and dies by TTL, but group
	// invalidation will not find it.
	IndexWriteFailed(namespaceKey, entryKey string, err error)

	// Backend returned ok=false on Set (backpressure/eviction).
	SetRejected(entryKey string)

	// A namespace sweep could not complete; the namespace key is retained
	// for retry. failed is the number of member deletes that failed.
	InvalidateIncomplete(namespaceKey string, failed int, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string)                 {}
func (NopHooks) BackendFallback(string, string, error)   {}
func (NopHooks) IndexWriteFailed(string, string, error)  {}
func (NopHooks) SetRejected(string)                      {}
func (NopHooks) InvalidateIncomplete(string, int, error) {}
