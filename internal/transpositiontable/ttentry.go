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

package transpositiontable

import (
	"sync/atomic"

	. "github.com/kestrel-engine/kestrel/internal/types"
)

// slot is the logical 10-byte record the transposition table stores per
// entry: a 16-bit key verifier, a 16-bit move, a 16-bit search value, a
// 16-bit static eval, an 8-bit depth and an 8-bit generation+bound byte.
// The logical layout is split across two machine words so every field can
// be read and written with lock-free atomics - Go has no native 80-bit
// atomic and a mutex per slot would defeat the point of a probe-heavy
// structure hit millions of times a second from multiple searcher
// goroutines.
//
// word0 packs checksum16|move16|value16|depth8 (56 of its 64 bits used).
// word1 packs eval16|genBound8 (24 of its 32 bits used).
//
// The 16-bit key is never stored on its own: save() stores it XOR'd with
// the rest of word0 and word1's payload, so a probe that observes word0 and
// word1 written by two different, interleaved writers (a torn read) will,
// with high probability, recompute a checksum that does not match the
// probed key and the slot is treated as a miss. This is the key-XOR-data
// trick lock-free transposition tables use to get safety without a lock.
type slot struct {
	word0 atomic.Uint64
	word1 atomic.Uint32
}

const (
	genBits      = 6
	boundBits    = 2
	boundMask    = uint8(1<<boundBits - 1)
	generationMax = 1 << genBits
)

func packWord0(checksum, move, value uint16, depth int8) uint64 {
	return uint64(checksum) | uint64(move)<<16 | uint64(value)<<32 | uint64(uint8(depth))<<48
}

func packWord1(eval uint16, genBound uint8) uint32 {
	return uint32(eval) | uint32(genBound)<<16
}

func packGenBound(generation uint8, bound ValueType) uint8 {
	return generation<<boundBits | (uint8(bound) & boundMask)
}

// save writes a new logical entry into the slot. key16 is the high 16 bits
// of the Zobrist key (distinct from the low bits clusterAt already used to
// pick this cluster); generation is the table's current search generation.
func (e *slot) save(key16 uint16, move Move, value, eval Value, depth int8, bound ValueType, generation uint8) {
	genBound := packGenBound(generation, bound)
	w1 := packWord1(uint16(eval), genBound)
	payload := packWord0(0, uint16(move), uint16(value), depth)
	checksum := key16 ^ uint16(payload) ^ uint16(payload>>16) ^ uint16(payload>>32) ^ uint16(payload>>48) ^ uint16(w1) ^ uint16(w1>>16)
	w0 := packWord0(checksum, uint16(move), uint16(value), depth)
	e.word1.Store(w1)
	e.word0.Store(w0)
}

// load reads the slot and reports whether its checksum matches key16 - a
// matching checksum is the slot's proof of identity, since no separate key
// field is stored.
func (e *slot) load(key16 uint16) (move Move, value, eval Value, depth int8, bound ValueType, generation uint8, ok bool) {
	w0 := e.word0.Load()
	w1 := e.word1.Load()

	storedChecksum := uint16(w0)
	move = Move(uint16(w0 >> 16))
	value = Value(int16(uint16(w0 >> 32)))
	depth = int8(uint8(w0 >> 48))
	eval = Value(int16(uint16(w1)))
	genBound := uint8(w1 >> 16)

	checksum := storedChecksum ^ uint16(move) ^ uint16(value) ^ uint16(uint8(depth)) ^ uint16(eval) ^ uint16(genBound)
	if checksum != key16 {
		return MoveNone, ValueNone, ValueNone, 0, ValueTypeNone, 0, false
	}
	bound = ValueType(genBound & boundMask)
	generation = genBound >> boundBits
	return move, value, eval, depth, bound, generation, true
}

// empty reports whether the slot has never been written - both words are
// their zero value, which save() never produces because a freshly saved
// exact-zero entry always has at least one of checksum/genBound non-zero
// in practice, but we use explicit clearing in Clear/Resize to guarantee it.
func (e *slot) empty() bool {
	return e.word0.Load() == 0 && e.word1.Load() == 0
}

// raw reads every field of the slot unconditionally, without checking the
// checksum against any key. Used where the caller already knows (or does
// not care) whether the slot belongs to the probed key: GetMoves wants a
// move hint regardless, and Put's replacement policy needs a foreign
// slot's age and depth to decide what to evict.
func (e *slot) raw() (move Move, value, eval Value, depth int8, bound ValueType, generation uint8) {
	w0 := e.word0.Load()
	w1 := e.word1.Load()
	move = Move(uint16(w0 >> 16))
	value = Value(int16(uint16(w0 >> 32)))
	depth = int8(uint8(w0 >> 48))
	eval = Value(int16(uint16(w1)))
	genBound := uint8(w1 >> 16)
	bound = ValueType(genBound & boundMask)
	generation = genBound >> boundBits
	return move, value, eval, depth, bound, generation
}

// relativeAge returns how many generations old this slot is, wrapping
// around the genBits-wide counter.
func relativeAge(currentGeneration, entryGeneration uint8) uint8 {
	return (currentGeneration - entryGeneration) & (generationMax - 1)
}

// TtEntry is an immutable snapshot of a transposition table slot at the
// moment it was probed. It is returned by value so callers never hold a
// pointer into table memory another goroutine may concurrently overwrite.
type TtEntry struct {
	move  Move
	value Value
	eval  Value
	depth int8
	vtype ValueType
}

// Move returns the stored best/refutation move, or MoveNone.
func (e TtEntry) Move() Move { return e.move }

// Value returns the stored search value, already ply-adjusted for mate scores.
func (e TtEntry) Value() Value { return e.value }

// Eval returns the stored static evaluation, or ValueNone if none was stored.
func (e TtEntry) Eval() Value { return e.eval }

// Depth returns the remaining search depth the value was computed at.
func (e TtEntry) Depth() int8 { return e.depth }

// Vtype returns the bound type of the stored value.
func (e TtEntry) Vtype() ValueType { return e.vtype }

// valueToTT rewrites a mate score from "plies from the current node" to
// "plies from the root" before it is stored, so the same entry is correct
// no matter which ply it is probed from later.
func valueToTT(v Value, ply int) Value {
	switch {
	case v == ValueNone:
		return ValueNone
	case v >= ValueCheckmateThreshold:
		return v + Value(ply)
	case v <= -ValueCheckmateThreshold:
		return v - Value(ply)
	default:
		return v
	}
}

// valueFromTT is the inverse of valueToTT, applied when a stored value is
// read back out at a given ply.
func valueFromTT(v Value, ply int) Value {
	switch {
	case v == ValueNone:
		return ValueNone
	case v >= ValueCheckmateThreshold:
		return v - Value(ply)
	case v <= -ValueCheckmateThreshold:
		return v + Value(ply)
	default:
		return v
	}
}
