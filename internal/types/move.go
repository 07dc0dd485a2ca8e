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

import "fmt"

// Move is a packed 16-bit move: from:6 | to:6 | flags:4.
//
// Ordering information lives entirely in the move-picker/history tables -
// Move itself is nothing but the wire-sized board transition, no sort value
// packed alongside it.
type Move uint16

// MoveFlag is the 4-bit move-kind tag packed into the high nibble of a Move.
type MoveFlag uint8

//noinspection GoUnusedConst
const (
	FlagQuiet          MoveFlag = 0b0000
	FlagDoublePawnPush MoveFlag = 0b0001
	FlagCastleKing     MoveFlag = 0b0010
	FlagCastleQueen    MoveFlag = 0b0011
	FlagCapture        MoveFlag = 0b0100
	FlagEnPassant      MoveFlag = 0b0101
	FlagPromoKnight    MoveFlag = 0b1000
	FlagPromoBishop    MoveFlag = 0b1001
	FlagPromoRook      MoveFlag = 0b1010
	FlagPromoQueen     MoveFlag = 0b1011
	FlagPromoKnightCap MoveFlag = 0b1100
	FlagPromoBishopCap MoveFlag = 0b1101
	FlagPromoRookCap   MoveFlag = 0b1110
	FlagPromoQueenCap  MoveFlag = 0b1111
)

const (
	moveNoneBits Move = 0
	fromShift         = 0
	toShift           = 6
	flagShift         = 12
	sixBitMask        = 0x3f
	fourBitMask       = 0xf
)

// MoveNone is the zero-value Move: not a legal move on any position.
const MoveNone Move = moveNoneBits

// MaxMoves bounds every move list the engine builds: no reachable chess
// position has more pseudo-legal moves than this.
const MaxMoves = 256

// NewMove packs a from/to square pair and a flag into a Move.
func NewMove(from Square, to Square, flag MoveFlag) Move {
	return Move(uint16(from)&sixBitMask) |
		Move(uint16(to)&sixBitMask)<<toShift |
		Move(uint16(flag)&fourBitMask)<<flagShift
}

// From returns the origin square of the move.
func (m Move) From() Square {
	return Square(m & sixBitMask)
}

// To returns the destination square of the move.
func (m Move) To() Square {
	return Square((m >> toShift) & sixBitMask)
}

// Flag returns the move's 4-bit flag.
func (m Move) Flag() MoveFlag {
	return MoveFlag((m >> flagShift) & fourBitMask)
}

// IsCapture returns true if the move's flag has the capture bit set
// (ordinary captures, en passant, and promotion-captures all qualify).
func (m Move) IsCapture() bool {
	f := m.Flag()
	return f == FlagCapture || f == FlagEnPassant || (f >= FlagPromoKnightCap && f <= FlagPromoQueenCap)
}

// IsPromotion returns true if the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Flag() >= FlagPromoKnight
}

// IsEnPassant returns true if the move is an en-passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// IsCastle returns true if the move is a king- or queen-side castle.
func (m Move) IsCastle() bool {
	return m.Flag() == FlagCastleKing || m.Flag() == FlagCastleQueen
}

// IsDoublePawnPush returns true if the move is a two-square pawn push.
func (m Move) IsDoublePawnPush() bool {
	return m.Flag() == FlagDoublePawnPush
}

// PromotionType returns the piece type a promotion move promotes to, or
// PtNone if the move is not a promotion.
func (m Move) PromotionType() PieceType {
	switch m.Flag() {
	case FlagPromoKnight, FlagPromoKnightCap:
		return Knight
	case FlagPromoBishop, FlagPromoBishopCap:
		return Bishop
	case FlagPromoRook, FlagPromoRookCap:
		return Rook
	case FlagPromoQueen, FlagPromoQueenCap:
		return Queen
	default:
		return PtNone
	}
}

// IsValid returns true if m is a non-null move with distinct squares.
func (m Move) IsValid() bool {
	return m != MoveNone && m.From() != m.To()
}

// String returns a UCI-style coordinate string (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == MoveNone {
		return "-"
	}
	s := m.From().String() + m.To().String()
	if pt := m.PromotionType(); pt != PtNone {
		s += string(pt.Char()[0] | 0x20)
	}
	return s
}

// StringUci returns the move in UCI protocol format, the same text as String.
func (m Move) StringUci() string {
	return m.String()
}

// StringBits returns a binary dump of the move's packed bits, for debugging.
func (m Move) StringBits() string {
	return fmt.Sprintf("%016b", uint16(m))
}
