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

// Color is White or Black.
type Color uint8

//noinspection GoUnusedConst
const (
	White       Color = iota
	Black       Color = iota
	ColorNone   Color = iota
	ColorLength       = ColorNone
)

// IsValid returns true if c is White or Black.
func (c Color) IsValid() bool {
	return c < ColorNone
}

// Flip returns the opposite color.
func (c Color) Flip() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// Direction returns +1 for White, -1 for Black - the sign a pawn push
// direction or a rank-progression computation needs.
func (c Color) Direction() int {
	if c == White {
		return 1
	}
	return -1
}

// MoveDirection returns the board Direction a pawn of this color pushes in.
func (c Color) MoveDirection() Direction {
	if c == White {
		return North
	}
	return South
}

// PromotionRankBb returns the bitboard of the rank on which pawns of this
// color promote.
func (c Color) PromotionRankBb() Bitboard {
	if c == White {
		return Rank8_Bb
	}
	return Rank1_Bb
}

// PawnDoubleRank returns the bitboard of the rank a pawn of this color
// lands on after a single push from its start square - the rank from
// which a double push still has an empty square to continue into.
func (c Color) PawnDoubleRank() Bitboard {
	if c == White {
		return Rank3_Bb
	}
	return Rank6_Bb
}
