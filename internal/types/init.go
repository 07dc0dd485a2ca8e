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

package types

// GamePhaseMax is the maximum value of the 0..24 game-phase counter
// (all officers on the board, no pawns-only endgame reduction applied).
const GamePhaseMax = 24

// KB, MB and GB convert a byte count entered by a UCI option (e.g. Hash in
// MB) into bytes.
const (
	KB uint64 = 1024
	MB uint64 = KB * KB
	GB uint64 = KB * MB
)

// initialized guards the package-level precomputed tables (bitboards,
// magic attack tables, positional value tables). Set by Init.
var initialized bool

// Init precomputes every lookup table the types package exposes - magic
// bitboards, attack tables, masks, and piece-square value tables. Called
// automatically on package load; exported so callers can depend on it
// explicitly without reasoning about init() ordering.
func Init() {
	if initialized {
		return
	}
	initBb()
	initPosValues()
	initialized = true
}

func init() {
	Init()
}
