//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package transpositiontable implements a lock-free transposition table
// (cache) for a chess engine search. Unlike a mutex-guarded map, Probe and
// Put may be called concurrently from any number of searcher goroutines
// without external synchronization; only Resize and Clear require the
// caller to hold off concurrent search.
package transpositiontable

import (
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/kestrel-engine/kestrel/internal/logging"
	. "github.com/kestrel-engine/kestrel/internal/types"
	"github.com/kestrel-engine/kestrel/internal/util"
	"github.com/kestrel-engine/kestrel/internal/zobrist"
)

// Key is the position hash this table indexes by; it is the engine-wide
// Zobrist key type re-exported here so callers don't need a separate import
// just to name it in a Probe/Put call.
type Key = zobrist.Key

var out = message.NewPrinter(language.German)

const (
	// MaxSizeInMB maximal memory usage of tt
	MaxSizeInMB = 65_536

	// entriesPerCluster is how many slots share a cache line.
	entriesPerCluster = 3

	// cacheLineSize is the alignment every cluster is padded and the
	// backing array is aligned to, so a cluster never straddles two
	// cache lines and probes from different goroutines don't false-share.
	cacheLineSize = 64
)

// cluster groups entriesPerCluster slots sharing one cache line. Probe and
// Put linearly scan a cluster's slots - 3 atomic loads is cheaper than a
// second hash and a second cache-line fetch.
type cluster struct {
	entries [entriesPerCluster]slot
	_       [cacheLineSize - entriesPerCluster*int(unsafe.Sizeof(slot{}))]byte
}

// TtTable is the actual transposition table object holding data and state.
// Create with NewTtTable().
type TtTable struct {
	log *logging.Logger

	raw         []byte    // backing allocation; kept alive so GC doesn't reclaim clusters
	clusters    []cluster // cache-line aligned view into raw
	clusterMask uint64

	sizeInByte         uint64
	maxNumberOfEntries uint64
	numberOfEntries    atomic.Uint64
	generation         atomic.Uint32

	Stats TtStats
}

// TtStats holds statistical data on tt usage. Counters are plain uint64s
// that Probe and Put increment without synchronization, so while several
// search threads share the table the counts are approximate.
type TtStats struct {
	numberOfPuts       uint64
	numberOfCollisions uint64
	numberOfOverwrites uint64
	numberOfUpdates    uint64
	numberOfProbes     uint64
	numberOfHits       uint64
	numberOfMisses     uint64
}

// NewTtTable creates a new TtTable with the given number of megabytes as a
// maximum of memory usage. The actual size is rounded down to the nearest
// power of two number of clusters for cheap masked addressing.
func NewTtTable(sizeInMByte int) *TtTable {
	tt := TtTable{
		log: myLogging.GetLog(),
	}
	tt.Resize(sizeInMByte)
	return &tt
}

// Resize resizes the tt table. All entries are cleared. Not safe to call
// while a search may be probing or storing into this table.
func (tt *TtTable) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		tt.log.Error(out.Sprintf("Requested size for TT of %d MB reduced to max of %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	sizeInByte := uint64(sizeInMByte) * MB
	numClusters := uint64(0)
	if sizeInByte >= cacheLineSize {
		numClusters = uint64(1) << uint64(math.Floor(math.Log2(float64(sizeInByte/cacheLineSize))))
	}

	tt.clusterMask = 0
	if numClusters > 0 {
		tt.clusterMask = numClusters - 1
	}
	tt.maxNumberOfEntries = numClusters * entriesPerCluster
	tt.sizeInByte = numClusters * cacheLineSize

	tt.raw, tt.clusters = newAlignedClusters(numClusters)
	tt.numberOfEntries.Store(0)
	tt.generation.Store(0)
	tt.Stats = TtStats{}

	tt.log.Info(out.Sprintf("TT Size %d MByte, Capacity %d clusters / %d entries (Requested were %d MBytes)",
		tt.sizeInByte/MB, numClusters, tt.maxNumberOfEntries, sizeInMByte))
	tt.log.Debug(util.MemStat())
}

// newAlignedClusters allocates count clusters inside a raw byte buffer,
// over-sized by one cache line, and returns a []cluster view starting at
// the first cacheLineSize-aligned byte of that buffer. A plain
// make([]cluster, count) is not guaranteed to be cache-line aligned by the
// Go allocator, and since sizeof(cluster) already equals cacheLineSize,
// shifting by a whole element does not fix a misaligned start - the
// alignment has to be computed in raw bytes.
func newAlignedClusters(count uint64) ([]byte, []cluster) {
	if count == 0 {
		return nil, nil
	}
	byteLen := count*cacheLineSize + cacheLineSize
	raw := make([]byte, byteLen)
	base := uintptr(unsafe.Pointer(&raw[0]))
	offset := (cacheLineSize - base%cacheLineSize) % cacheLineSize
	clusters := unsafe.Slice((*cluster)(unsafe.Pointer(&raw[offset])), count)
	return raw, clusters
}

func (tt *TtTable) clusterAt(key Key) *cluster {
	return &tt.clusters[uint64(key)&tt.clusterMask]
}

// key16 takes the verifier from the key's high 16 bits, not its low bits:
// clusterAt already indexes by the low bits through clusterMask, so a
// verifier drawn from the same bits would be redundant with the index -
// any two keys colliding on cluster would then also collide on key16.
func key16(key Key) uint16 {
	return uint16(uint64(key) >> 48)
}

// Probe looks up key and, if found, returns its value-adjusted (ply-relative
// mate scores rewritten for ply) snapshot. Safe for concurrent use with
// other Probe/Put calls on the same table.
func (tt *TtTable) Probe(key Key, ply int) (TtEntry, bool) {
	tt.Stats.numberOfProbes++
	if tt.maxNumberOfEntries == 0 {
		tt.Stats.numberOfMisses++
		return TtEntry{}, false
	}
	c := tt.clusterAt(key)
	k16 := key16(key)
	for i := range c.entries {
		if c.entries[i].empty() {
			continue
		}
		move, value, eval, depth, vtype, _, ok := c.entries[i].load(k16)
		if !ok {
			continue
		}
		tt.Stats.numberOfHits++
		return TtEntry{
			move:  move,
			value: valueFromTT(value, ply),
			eval:  eval,
			depth: depth,
			vtype: vtype,
		}, true
	}
	tt.Stats.numberOfMisses++
	return TtEntry{}, false
}

// GetMoves fills out with up to len(out) distinct, non-MoveNone candidate
// moves found in key's cluster and returns the number written. Slots whose
// checksum does not match key (a different position sharing the cluster)
// still contribute their raw move as a weak ordering hint, the same way a
// real engine's cluster scan surfaces near-miss moves for free.
func (tt *TtTable) GetMoves(key Key, out []Move) int {
	if tt.maxNumberOfEntries == 0 {
		return 0
	}
	c := tt.clusterAt(key)
	n := 0
	for i := range c.entries {
		if n >= len(out) {
			break
		}
		m, _, _, _, _, _ := c.entries[i].raw()
		if m == MoveNone {
			continue
		}
		duplicate := false
		for j := 0; j < n; j++ {
			if out[j] == m {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out[n] = m
			n++
		}
	}
	return n
}

// Put stores an entry for key. value and eval are in "from this node"
// terms; Put converts mate scores to "from root" before storing so the
// entry remains correct when probed again from a different ply.
//
// Replacement policy within the cluster: prefer an empty slot, then the
// slot with the same checksum (an update), then the oldest generation,
// then the shallowest depth.
func (tt *TtTable) Put(key Key, move Move, depth int8, value Value, valueType ValueType, eval Value, ply int) {
	if tt.maxNumberOfEntries == 0 {
		return
	}
	tt.Stats.numberOfPuts++

	c := tt.clusterAt(key)
	k16 := key16(key)
	gen := uint8(tt.generation.Load() & (generationMax - 1))

	var target *slot
	var targetIsEmpty, targetIsUpdate bool

	for i := range c.entries {
		e := &c.entries[i]
		if e.empty() {
			target = e
			targetIsEmpty = true
			break
		}
		if _, _, _, _, _, _, ok := e.load(k16); ok {
			target = e
			targetIsUpdate = true
			break
		}
	}

	// no empty slot and no slot already holding this key: evict the
	// foreign entry that is oldest, breaking ties by shallowest depth.
	if target == nil {
		var worstAge, worstDepth int
		for i := range c.entries {
			e := &c.entries[i]
			_, _, _, eDepth, _, eGen := e.raw()
			age := int(relativeAge(gen, eGen))
			if target == nil || age > worstAge || (age == worstAge && int(eDepth) < worstDepth) {
				target = e
				worstAge = age
				worstDepth = int(eDepth)
			}
		}
	}

	if !targetIsEmpty && !targetIsUpdate {
		tt.Stats.numberOfCollisions++
		tt.Stats.numberOfOverwrites++
	} else if targetIsUpdate {
		tt.Stats.numberOfUpdates++
	}
	if targetIsEmpty {
		tt.numberOfEntries.Add(1)
	}

	target.save(k16, move, valueToTT(value, ply), eval, depth, valueType, gen)
}

// NewGeneration advances the table's generation counter by one. Call once
// per search, not once per node: entries from the previous search become
// one generation older and are preferred for replacement, without the O(n)
// rewrite pass a full table sweep would need.
func (tt *TtTable) NewGeneration() {
	tt.generation.Add(1)
}

// Clear clears all entries of the tt. Not safe to call while a search may
// be probing or storing into this table.
func (tt *TtTable) Clear() {
	numClusters := uint64(0)
	if tt.clusterMask != 0 || len(tt.clusters) > 0 {
		numClusters = tt.clusterMask + 1
	}
	tt.raw, tt.clusters = newAlignedClusters(numClusters)
	tt.numberOfEntries.Store(0)
	tt.generation.Store(0)
	tt.Stats = TtStats{}
}

// Hashfull returns how full the transposition table is in permill as per
// UCI, sampled from the first 1000 clusters rather than the whole table -
// the same sampling Stockfish's TranspositionTable::hashfull uses to keep
// the "info hashfull" periodic report cheap.
func (tt *TtTable) Hashfull() int {
	if len(tt.clusters) == 0 {
		return 0
	}
	sample := uint64(1000)
	if sample > uint64(len(tt.clusters)) {
		sample = uint64(len(tt.clusters))
	}
	filled := 0
	for i := uint64(0); i < sample; i++ {
		for j := range tt.clusters[i].entries {
			if !tt.clusters[i].entries[j].empty() {
				filled++
			}
		}
	}
	return filled * 1000 / int(sample*entriesPerCluster)
}

// String returns a string representation of this TtTable instance.
func (tt *TtTable) String() string {
	return out.Sprintf("TT: size %d MB clusters %d max entries %d entries %d (%d%%) puts %d "+
		"updates %d collisions %d overwrites %d probes %d hits %d (%d%%) misses %d (%d%%)",
		tt.sizeInByte/MB, len(tt.clusters), tt.maxNumberOfEntries, tt.numberOfEntries.Load(), tt.Hashfull()/10,
		tt.Stats.numberOfPuts, tt.Stats.numberOfUpdates, tt.Stats.numberOfCollisions, tt.Stats.numberOfOverwrites, tt.Stats.numberOfProbes,
		tt.Stats.numberOfHits, (tt.Stats.numberOfHits*100)/(1+tt.Stats.numberOfProbes),
		tt.Stats.numberOfMisses, (tt.Stats.numberOfMisses*100)/(1+tt.Stats.numberOfProbes))
}

// Len returns the number of non-empty entries in the tt.
func (tt *TtTable) Len() uint64 {
	return tt.numberOfEntries.Load()
}
