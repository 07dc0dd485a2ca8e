/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package transpositiontable

import (
	"os"
	"path"
	"runtime"
	"sync"
	"testing"
	"unsafe"

	logging2 "github.com/op/go-logging"
	"github.com/stretchr/testify/assert"

	"github.com/kestrel-engine/kestrel/internal/config"
	"github.com/kestrel-engine/kestrel/internal/logging"
	"github.com/kestrel-engine/kestrel/internal/position"
	. "github.com/kestrel-engine/kestrel/internal/types"
)

var logTest *logging2.Logger

// make tests run in the projects root directory
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

// Setup the tests
func TestMain(m *testing.M) {
	config.Setup()
	logTest = logging.GetTestLog()
	code := m.Run()
	os.Exit(code)
}

func TestClusterSize(t *testing.T) {
	var c cluster
	assert.EqualValues(t, cacheLineSize, unsafe.Sizeof(c))
	logTest.Debugf("Size of cluster %d bytes for %d entries", unsafe.Sizeof(c), entriesPerCluster)
}

func TestNewTtTablePowerOfTwoClusters(t *testing.T) {
	tt := NewTtTable(2)
	assert.True(t, len(tt.clusters) > 0)
	assert.Zero(t, len(tt.clusters)&(len(tt.clusters)-1), "cluster count must be a power of two")
	logTest.Debug(tt.String())

	tt = NewTtTable(64)
	assert.Zero(t, len(tt.clusters)&(len(tt.clusters)-1))

	tt = NewTtTable(0)
	assert.Equal(t, 0, len(tt.clusters))
	assert.EqualValues(t, 0, tt.maxNumberOfEntries)
}

func TestClustersAreCacheLineAligned(t *testing.T) {
	tt := NewTtTable(4)
	base := uintptr(unsafe.Pointer(&tt.clusters[0]))
	assert.Zero(t, base%cacheLineSize)
}

func TestPutAndProbeRoundTrip(t *testing.T) {
	tt := NewTtTable(4)
	pos := position.NewPosition()
	move := NewMove(SqE2, SqE4, FlagDoublePawnPush)

	tt.Put(pos.ZobristKey(), move, 5, Value(42), ValueTypeExact, Value(7), 0)

	e, ok := tt.Probe(pos.ZobristKey(), 0)
	assert.True(t, ok)
	assert.Equal(t, move, e.Move())
	assert.EqualValues(t, 5, e.Depth())
	assert.EqualValues(t, 42, e.Value())
	assert.EqualValues(t, 7, e.Eval())
	assert.Equal(t, ValueTypeExact, e.Vtype())

	pos.DoMove(move)
	_, ok = tt.Probe(pos.ZobristKey(), 1)
	assert.False(t, ok, "a position never stored must miss")
}

func TestProbeOnEmptyTableMisses(t *testing.T) {
	tt := NewTtTable(1)
	_, ok := tt.Probe(Key(12345), 0)
	assert.False(t, ok)
	assert.EqualValues(t, 1, tt.Stats.numberOfProbes)
	assert.EqualValues(t, 1, tt.Stats.numberOfMisses)
}

func TestZeroSizeTableStoresNothing(t *testing.T) {
	tt := NewTtTable(0)
	move := NewMove(SqE2, SqE4, FlagDoublePawnPush)
	tt.Put(Key(1), move, 4, Value(10), ValueTypeExact, ValueNone, 0)
	_, ok := tt.Probe(Key(1), 0)
	assert.False(t, ok)
	assert.EqualValues(t, 0, tt.Len())
}

func TestPutUpdatesExistingEntry(t *testing.T) {
	tt := NewTtTable(4)
	move := NewMove(SqE2, SqE4, FlagDoublePawnPush)

	tt.Put(Key(111), move, 4, Value(111), ValueTypeUpper, ValueNone, 0)
	assert.EqualValues(t, 1, tt.Len())
	e, ok := tt.Probe(Key(111), 0)
	assert.True(t, ok)
	assert.EqualValues(t, 111, e.Value())
	assert.EqualValues(t, 4, e.Depth())
	assert.Equal(t, ValueTypeUpper, e.Vtype())

	tt.Put(Key(111), move, 6, Value(200), ValueTypeExact, ValueNone, 0)
	assert.EqualValues(t, 1, tt.Len(), "updating an existing key must not grow the table")
	e, ok = tt.Probe(Key(111), 0)
	assert.True(t, ok)
	assert.EqualValues(t, 200, e.Value())
	assert.EqualValues(t, 6, e.Depth())
	assert.Equal(t, ValueTypeExact, e.Vtype())
}

func TestClusterFillsBeforeEviction(t *testing.T) {
	tt := NewTtTable(4)

	// find entriesPerCluster distinct keys that all hash to the same cluster
	// and differ in their high 16 bits (the stored verifier)
	keys := make([]Key, 0, entriesPerCluster)
	for k := Key(1); len(keys) < entriesPerCluster; k++ {
		if uint64(k<<48)&tt.clusterMask == 0 {
			keys = append(keys, k<<48)
		}
	}
	move := NewMove(SqE2, SqE4, FlagDoublePawnPush)
	for i, k := range keys {
		tt.Put(k, move, int8(i+1), Value(i), ValueTypeExact, ValueNone, 0)
	}
	assert.EqualValues(t, entriesPerCluster, tt.Len())
	for i, k := range keys {
		e, ok := tt.Probe(k, 0)
		assert.True(t, ok, "key %d must still be present", k)
		assert.EqualValues(t, i, e.Value())
	}
}

func TestGetMovesReturnsDistinctCandidates(t *testing.T) {
	tt := NewTtTable(4)
	keys := make([]Key, 0, entriesPerCluster)
	for k := Key(1); len(keys) < entriesPerCluster; k++ {
		if uint64(k<<48)&tt.clusterMask == 0 {
			keys = append(keys, k<<48)
		}
	}
	moves := []Move{
		NewMove(SqE2, SqE4, FlagDoublePawnPush),
		NewMove(SqD2, SqD4, FlagDoublePawnPush),
		NewMove(SqG1, SqF3, FlagQuiet),
	}
	for i, k := range keys {
		tt.Put(k, moves[i], 1, Value(0), ValueTypeExact, ValueNone, 0)
	}

	var out [3]Move
	n := tt.GetMoves(keys[0], out[:])
	assert.Equal(t, entriesPerCluster, n)
	seen := make(map[Move]bool)
	for i := 0; i < n; i++ {
		assert.False(t, seen[out[i]], "GetMoves must not repeat a move")
		seen[out[i]] = true
	}
}

func TestNewGenerationAgesEntries(t *testing.T) {
	tt := NewTtTable(4)
	move := NewMove(SqE2, SqE4, FlagDoublePawnPush)
	tt.Put(Key(1), move, 1, Value(0), ValueTypeExact, ValueNone, 0)

	tt.NewGeneration()
	tt.NewGeneration()

	c := tt.clusterAt(Key(1))
	_, _, _, _, _, gen := c.entries[0].raw()
	assert.EqualValues(t, 0, gen, "generation is stamped at Put time, not retroactively aged")
	assert.EqualValues(t, 2, tt.generation.Load())
}

func TestValueToFromTTRoundTripsMateScores(t *testing.T) {
	mateIn3 := ValueCheckmate - 3
	stored := valueToTT(mateIn3, 5)
	assert.Equal(t, mateIn3+5, stored)
	assert.Equal(t, mateIn3, valueFromTT(stored, 5))

	matedIn3 := -ValueCheckmate + 3
	stored = valueToTT(matedIn3, 5)
	assert.Equal(t, matedIn3-5, stored)
	assert.Equal(t, matedIn3, valueFromTT(stored, 5))

	assert.Equal(t, Value(123), valueToTT(Value(123), 5))
	assert.Equal(t, ValueNone, valueToTT(ValueNone, 5))
}

func TestClear(t *testing.T) {
	tt := NewTtTable(1)
	move := NewMove(SqE2, SqE4, FlagDoublePawnPush)
	tt.Put(Key(1), move, 5, Value(0), ValueTypeExact, ValueNone, 0)
	assert.EqualValues(t, 1, tt.Len())

	tt.Clear()

	_, ok := tt.Probe(Key(1), 0)
	assert.False(t, ok)
	assert.EqualValues(t, 0, tt.Len())
}

func TestHashfull(t *testing.T) {
	tt := NewTtTable(1)
	assert.Equal(t, 0, tt.Hashfull())

	move := NewMove(SqE2, SqE4, FlagDoublePawnPush)
	for i := 0; i < 100; i++ {
		tt.Put(Key(i), move, 1, Value(0), ValueTypeExact, ValueNone, 0)
	}
	assert.Greater(t, tt.Hashfull(), 0)
}

// TestConcurrentProbeAndPut exercises the table the way Lazy-SMP workers
// would: many goroutines hammering Put/Probe on overlapping keys at once.
// It does not assert anything about which value wins a race - only that
// Probe never returns a torn, corrupted entry: whatever comes back must be
// one of the exact values a Put call actually wrote.
func TestConcurrentProbeAndPut(t *testing.T) {
	tt := NewTtTable(4)
	const workers = 8
	const opsPerWorker = 20_000
	move := NewMove(SqE2, SqE4, FlagDoublePawnPush)

	valid := make(map[Value]bool)
	for v := Value(0); v < 64; v++ {
		valid[v] = true
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < opsPerWorker; i++ {
				k := Key(i % 64)
				if i%2 == 0 {
					tt.Put(k, move, int8(i%127), Value(i%64), ValueTypeExact, ValueNone, 0)
				} else {
					if e, ok := tt.Probe(k, 0); ok {
						assert.True(t, valid[e.Value()], "probe returned a value no Put call ever wrote: %d", e.Value())
					}
				}
			}
		}(w)
	}
	wg.Wait()
}
