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

// Package zobrist holds the engine's pseudorandom key tables and the
// incremental XOR rules that keep a Position's hash consistent with its
// board state. Every key is derived from a single fixed seed so that two
// processes - or a process and a saved transposition-table file - agree on
// the same hash for the same position.
package zobrist

import . "github.com/kestrel-engine/kestrel/internal/types"

// Key is a Zobrist hash key for a chess position. It needs all 64 bits
// for good distribution across a transposition table.
type Key uint64

// seed is fixed so the key tables - and every Key this package ever
// produces - are reproducible across runs and across processes.
const seed uint64 = 1070372

// keys holds every Zobrist key table. Castling holds one key per possible
// CastlingRights value (0..15), each computed by XORing together the
// independent keys for the four individual rights so that
// Castling[a] XOR Castling[b] == Castling[a XOR b] - this is what lets
// Position.DoMove update the hash by XORing out the old CastlingRights
// value and XORing in the new one, rather than walking which bits changed.
type keys struct {
	pieces         [PieceLength][SqLength]Key
	castlingRights [CastlingRightsLength]Key
	enPassantFile  [FileNone]Key
	nextPlayer     Key
}

// Base is the package's single key table, populated once at init.
var Base keys

func init() {
	r := newRandom(seed)

	for pc := Piece(0); pc < PieceLength; pc++ {
		for sq := Square(0); sq < SqLength; sq++ {
			Base.pieces[pc][sq] = Key(r.rand64())
		}
	}

	// one independent key per individual castling right; every composite
	// CastlingRights value is the XOR of the rights it has set.
	var perRight [4]Key
	for i := range perRight {
		perRight[i] = Key(r.rand64())
	}
	for cr := CastlingRights(0); cr < CastlingRightsLength; cr++ {
		var k Key
		if cr.Has(CastlingWhiteOO) {
			k ^= perRight[0]
		}
		if cr.Has(CastlingWhiteOOO) {
			k ^= perRight[1]
		}
		if cr.Has(CastlingBlackOO) {
			k ^= perRight[2]
		}
		if cr.Has(CastlingBlackOOO) {
			k ^= perRight[3]
		}
		Base.castlingRights[cr] = k
	}

	for f := FileA; f <= FileH; f++ {
		Base.enPassantFile[f] = Key(r.rand64())
	}

	Base.nextPlayer = Key(r.rand64())
}

// PieceKey returns the key for placing/removing piece pc on square sq.
func PieceKey(pc Piece, sq Square) Key {
	return Base.pieces[pc][sq]
}

// Castling returns the key for the given composite CastlingRights value.
func Castling(cr CastlingRights) Key {
	return Base.castlingRights[cr]
}

// EnPassantFile returns the key for an en-passant target on file f.
func EnPassantFile(f File) Key {
	return Base.enPassantFile[f]
}

// NextPlayer is XORed in/out every time the side to move flips.
func NextPlayer() Key {
	return Base.nextPlayer
}
