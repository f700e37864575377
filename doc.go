// Package nscache caches derived results under namespaced keys so that one
// call evicts every variant a source change invalidates. Entries carry their
// own TTL envelope; namespaces index their members in backend sets.
//
// Components:
//   - Backend: byte store with TTL plus expiring set ops (e.g. Redis,
//     Ristretto, BigCache, or the built-in in-process map).
//   - Cache: the facade. Byte-level Get/Put/Delete plus InvalidateNamespace,
//     with envelope framing, key clamping, self-healing reads, and automatic
//     failover to an in-process fallback when the primary errors.
//   - Store[V]: a typed view over one cache name. Callers think in
//     (owner, Query) pairs; keys, codecs and TTLs are the store's business.
//   - Codec[V]: (de)serializes V <-> []byte.
//
// Keys:
//
//	ent:<store>:<owner>:<token>  - one cached variant
//	idx:<store>:<owner>          - set of the owner's entry keys
//
// Invalidation pattern:
//
//	st, _ := nscache.NewStore(cc, nscache.StoreOptions[SavedList]{
//		Name:  "savedLists",
//		Codec: codec.JSON[SavedList]{},
//	})
//	v, ok, _ := st.GetOrLoad(ctx, userID, q, loadFromDB) // fill on miss
//	_ = st.InvalidateAll(ctx, userID)                    // source changed
package nscache
