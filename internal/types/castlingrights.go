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

// CastlingRights is a bitset of the four castling rights, one bit each.
type CastlingRights uint8

//noinspection GoUnusedConst
const (
	CastlingNone     CastlingRights = 0
	CastlingWhiteOO  CastlingRights = 1
	CastlingWhiteOOO CastlingRights = 2
	CastlingWhite    CastlingRights = CastlingWhiteOO | CastlingWhiteOOO
	CastlingBlackOO  CastlingRights = 4
	CastlingBlackOOO CastlingRights = 8
	CastlingBlack    CastlingRights = CastlingBlackOO | CastlingBlackOOO
	CastlingAny      CastlingRights = CastlingWhite | CastlingBlack
	CastlingRightsLength CastlingRights = 16
)

// Has returns true if all bits of o are set in cr.
func (cr CastlingRights) Has(o CastlingRights) bool {
	return cr&o == o
}

// Remove clears the bits of o from cr.
func (cr CastlingRights) Remove(o CastlingRights) CastlingRights {
	return cr &^ o
}

// Add sets the bits of o in cr.
func (cr CastlingRights) Add(o CastlingRights) CastlingRights {
	return cr | o
}

func (cr CastlingRights) String() string {
	if cr == CastlingNone {
		return "-"
	}
	s := ""
	if cr.Has(CastlingWhiteOO) {
		s += "K"
	}
	if cr.Has(CastlingWhiteOOO) {
		s += "Q"
	}
	if cr.Has(CastlingBlackOO) {
		s += "k"
	}
	if cr.Has(CastlingBlackOOO) {
		s += "q"
	}
	return s
}

// CastlingMask maps a square to the castling rights that must be cleared
// when a piece moves to or from that square (kings and rook home squares).
var CastlingMask [SqLength]CastlingRights

func init() {
	CastlingMask[SqE1] = CastlingWhite
	CastlingMask[SqA1] = CastlingWhiteOOO
	CastlingMask[SqH1] = CastlingWhiteOO
	CastlingMask[SqE8] = CastlingBlack
	CastlingMask[SqA8] = CastlingBlackOOO
	CastlingMask[SqH8] = CastlingBlackOO
}
