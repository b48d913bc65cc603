// Package concurrent provides a sharded concurrent mapping from integer key
// to float64 accumulator value, used by the ranker to accumulate per-document
// relevance while scoring plus-terms in parallel. The design mirrors the
// sharded lock idiom used elsewhere in this lineage for tag indexes: a fixed
// number of independently-locked shards, selected by the key modulo the shard count,
// so concurrent callers touching different shards never contend.
package concurrent

import "sync"

// DefaultShards is the shard count the ranker uses unless told otherwise.
const DefaultShards = 8

// ShardMap is a mapping from int to float64 sharded across a fixed number
// of buckets, each guarded by its own mutex. The zero value is not usable;
// construct with NewShardMap.
type ShardMap struct {
	shards []*shard
	n      uint32
}

type shard struct {
	mu sync.Mutex
	m  map[int]float64
}

// NewShardMap constructs a ShardMap with n shards. A non-positive n falls
// back to DefaultShards.
func NewShardMap(n int) *ShardMap {
	if n <= 0 {
		n = DefaultShards
	}
	sm := &ShardMap{
		shards: make([]*shard, n),
		n:      uint32(n),
	}
	for i := range sm.shards {
		sm.shards[i] = &shard{m: make(map[int]float64)}
	}
	return sm
}

func (sm *ShardMap) shardFor(key int) *shard {
	idx := uint32(key) % sm.n
	return sm.shards[idx]
}

// Ref is a scoped mutable reference to the accumulator value for one key.
// It holds the lock of exactly one shard — the shard owning the key — for
// its lifetime. Callers must call Release exactly once, on every exit path
// (including when the body they run while holding the ref panics), which is
// why Use is the preferred entry point.
type Ref struct {
	sh  *shard
	key int
}

// Release unlocks the shard backing this reference. Safe to call once.
func (r *Ref) Release() {
	r.sh.mu.Unlock()
}

// Add adds delta to the accumulator for this reference's key, creating a
// zero-valued entry first if absent.
func (r *Ref) Add(delta float64) {
	r.sh.m[r.key] += delta
}

// Get returns the current accumulator value for this reference's key
// without creating an entry.
func (r *Ref) Get() float64 {
	return r.sh.m[r.key]
}

// At acquires the shard lock for key and returns a scoped reference to its
// accumulator. The caller must call Release on the returned Ref, typically
// via defer immediately after At returns. Prefer Use when the critical
// section is a simple function, since it release the lock on every exit
// path including a panic inside fn.
func (sm *ShardMap) At(key int) *Ref {
	sh := sm.shardFor(key)
	sh.mu.Lock()
	return &Ref{sh: sh, key: key}
}

// Use runs fn with exclusive access to key's accumulator, releasing the
// shard lock on every exit path, including a panic inside fn.
func (sm *ShardMap) Use(key int, fn func(acc *Ref)) {
	ref := sm.At(key)
	defer ref.Release()
	fn(ref)
}

// Erase removes the entry for key, acquiring only the lock of key's shard.
func (sm *ShardMap) Erase(key int) {
	sh := sm.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.m, key)
}

// BuildOrdinaryMap materialises a single consolidated map by acquiring each
// shard's lock in turn. The result is not required to be atomic across
// shards as a whole, but each shard's contribution is read under its own
// lock and is therefore internally consistent.
func (sm *ShardMap) BuildOrdinaryMap() map[int]float64 {
	out := make(map[int]float64)
	for _, sh := range sm.shards {
		sh.mu.Lock()
		for k, v := range sh.m {
			out[k] = v
		}
		sh.mu.Unlock()
	}
	return out
}
