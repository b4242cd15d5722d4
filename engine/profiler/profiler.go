// Package profiler records nested timing scopes into a fixed-size ring and
// exports them as a speedscope evented profile. It costs one atomic load per
// scope until Init is called.
package profiler

import (
	"sync"
	"sync/atomic"
	"time"
)

// Init enables recording into a ring of capacity events (two per scope),
// discarding anything recorded before.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 16
	}
	evrb.init(capacity)
}

// Disable stops recording. Recorded events stay available for export.
func Disable() { evrb.ready.Store(false) }

func Enabled() bool { return evrb.ready.Load() }

// Start begins a scope and returns an end func to be deferred.
func Start(name string) func() {
	if !evrb.ready.Load() {
		return func() {}
	}
	fid := intern(name)
	start := now()
	evrb.push(evEntry{at: start, frame: fid, open: true})
	return func() {
		// Keep end >= start even if the clock stalls.
		evrb.push(evEntry{at: max(now(), start), frame: fid})
	}
}

var now = func() int64 { return time.Now().UnixNano() }

// ---------- event ring ----------

type evEntry struct {
	at    int64
	frame int
	open  bool
}

type evRing struct {
	ready atomic.Bool
	cap   uint64
	write atomic.Uint64
	evs   []evEntry
}

func (r *evRing) init(capacity int) {
	r.ready.Store(false)
	r.cap = uint64(capacity)
	r.evs = make([]evEntry, r.cap)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *evRing) push(e evEntry) {
	i := r.write.Add(1) - 1
	r.evs[i%r.cap] = e
}

// snapshot returns the surviving events in write order.
func (r *evRing) snapshot() []evEntry {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	start := uint64(0)
	if n > r.cap {
		start = n - r.cap
	}
	out := make([]evEntry, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.cap])
	}
	return out
}

var evrb evRing

// ---------- scope name interner ----------

var (
	muFrames sync.Mutex
	frames   []string
	index    = map[string]int{}
)

func intern(name string) int {
	muFrames.Lock()
	defer muFrames.Unlock()
	if id, ok := index[name]; ok {
		return id
	}
	id := len(frames)
	index[name] = id
	frames = append(frames, name)
	return id
}

func frameNames() []string {
	muFrames.Lock()
	defer muFrames.Unlock()
	return append([]string(nil), frames...)
}
