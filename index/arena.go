// Package index implements the document store (C3): per-document metadata,
// the interned document text arena, and the term<->document cross-indexes.
package index

import (
	"sync"
	"unsafe"
)

// blockSize is the capacity of one arena block. A document longer than this
// gets its own oversized block.
const blockSize = 64 * 1024

// textArena is an append-only store for document text. Index entries are
// views (substrings) into a document's slot here, so every insertion must
// leave previously returned views valid: blocks are never reallocated or
// moved once allocated, only appended to or replaced wholesale by a new
// block when full. This mirrors the block/pool shape of this lineage's
// string-interning pool, generalized from a bounded LRU cache of short
// repeated tags to an unbounded, eviction-free arena of whole document
// bodies, which must never be evicted while their document is live.
type textArena struct {
	mu     sync.Mutex
	blocks []*arenaBlock
}

type arenaBlock struct {
	buf []byte
	len int
}

func newTextArena() *textArena {
	return &textArena{}
}

// Put copies text into the arena and returns a view over the copy, stable
// for the lifetime of the arena (append-only: the returned view is never
// invalidated by subsequent Put calls).
func (a *textArena) Put(text string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(text) > blockSize {
		// Oversized document gets its own dedicated block.
		buf := make([]byte, len(text))
		copy(buf, text)
		a.blocks = append(a.blocks, &arenaBlock{buf: buf, len: len(buf)})
		return byteSliceToString(buf)
	}

	var blk *arenaBlock
	if n := len(a.blocks); n > 0 {
		blk = a.blocks[n-1]
	}
	if blk == nil || blockSize-blk.len < len(text) {
		blk = &arenaBlock{buf: make([]byte, blockSize)}
		a.blocks = append(a.blocks, blk)
	}

	start := blk.len
	copy(blk.buf[start:], text)
	blk.len += len(text)
	return byteSliceToString(blk.buf[start:blk.len])
}

// byteSliceToString returns a string header over b's backing array without
// copying. Safe here because textArena never mutates or reallocates bytes
// once they have been handed out by Put.
func byteSliceToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
