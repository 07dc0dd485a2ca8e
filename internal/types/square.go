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

// Square represents a square on the chess board from 0 (SqA1) to 63 (SqH8).
// SqNone represents "no square" (64).
type Square uint8

//noinspection GoUnusedConst
const (
	SqA1 Square = iota
	SqB1
	SqC1
	SqD1
	SqE1
	SqF1
	SqG1
	SqH1
	SqA2
	SqB2
	SqC2
	SqD2
	SqE2
	SqF2
	SqG2
	SqH2
	SqA3
	SqB3
	SqC3
	SqD3
	SqE3
	SqF3
	SqG3
	SqH3
	SqA4
	SqB4
	SqC4
	SqD4
	SqE4
	SqF4
	SqG4
	SqH4
	SqA5
	SqB5
	SqC5
	SqD5
	SqE5
	SqF5
	SqG5
	SqH5
	SqA6
	SqB6
	SqC6
	SqD6
	SqE6
	SqF6
	SqG6
	SqH6
	SqA7
	SqB7
	SqC7
	SqD7
	SqE7
	SqF7
	SqG7
	SqH7
	SqA8
	SqB8
	SqC8
	SqD8
	SqE8
	SqF8
	SqG8
	SqH8
	SqNone
	SqLength = SqNone
)

// IsValid returns true if sq is a real square (not SqNone and not out of range).
func (sq Square) IsValid() bool {
	return sq < SqNone
}

// FileOf returns the File of the given square.
func (sq Square) FileOf() File {
	return File(sq & 7)
}

// RankOf returns the Rank of the given square.
func (sq Square) RankOf() Rank {
	return Rank(sq >> 3)
}

// MakeSquare parses an algebraic square name (e.g. "e4") into a Square,
// returning SqNone for anything that isn't exactly a valid file+rank pair.
func MakeSquare(s string) Square {
	if len(s) != 2 {
		return SqNone
	}
	f := File(s[0] - 'a')
	r := Rank(s[1] - '1')
	if !f.IsValid() || !r.IsValid() {
		return SqNone
	}
	return SquareOf(f, r)
}

// SquareOf returns the square for the given file and rank, or SqNone if
// either is out of range.
func SquareOf(f File, r Rank) Square {
	if !f.IsValid() || !r.IsValid() {
		return SqNone
	}
	return Square(uint8(r)<<3 + uint8(f))
}

// sqTo is a precomputed lookup table for Square.To(Direction).
var sqTo [SqLength][8]Square

// To returns the square reached by moving one step in direction d from sq,
// or SqNone if that step would leave the board.
func (sq Square) To(d Direction) Square {
	return sqTo[sq][directionIndex(d)]
}

func directionIndex(d Direction) int {
	switch d {
	case North:
		return 0
	case East:
		return 1
	case South:
		return 2
	case West:
		return 3
	case Northeast:
		return 4
	case Southeast:
		return 5
	case Southwest:
		return 6
	case Northwest:
		return 7
	default:
		return 0
	}
}

func toPreCompute(d Direction) [SqLength]Square {
	var t [SqLength]Square
	for s := SqA1; s < SqLength; s++ {
		f := int(s.FileOf())
		r := int(s.RankOf())
		nf, nr := f, r
		switch d {
		case North:
			nr++
		case South:
			nr--
		case East:
			nf++
		case West:
			nf--
		case Northeast:
			nf++
			nr++
		case Southeast:
			nf++
			nr--
		case Southwest:
			nf--
			nr--
		case Northwest:
			nf--
			nr++
		}
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			t[s] = SqNone
			continue
		}
		t[s] = SquareOf(File(nf), Rank(nr))
	}
	return t
}

func init() {
	for _, d := range Directions {
		t := toPreCompute(d)
		for s := SqA1; s < SqLength; s++ {
			sqTo[s][directionIndex(d)] = t[s]
		}
	}
}

const squareLabels = "a1 b1 c1 d1 e1 f1 g1 h1 " +
	"a2 b2 c2 d2 e2 f2 g2 h2 " +
	"a3 b3 c3 d3 e3 f3 g3 h3 " +
	"a4 b4 c4 d4 e4 f4 g4 h4 " +
	"a5 b5 c5 d5 e5 f5 g5 h5 " +
	"a6 b6 c6 d6 e6 f6 g6 h6 " +
	"a7 b7 c7 d7 e7 f7 g7 h7 " +
	"a8 b8 c8 d8 e8 f8 g8 h8 "

// String returns the algebraic name of the square (e.g. "e4"), or "-" for SqNone.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	i := int(sq) * 3
	return squareLabels[i : i+2]
}
