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

// Package see implements Static Exchange Evaluation: the net material
// outcome of a capture sequence on a single square, both sides recapturing
// with their least valuable attacker until neither wishes to continue.
package see

import (
	"github.com/kestrel-engine/kestrel/internal/position"
	. "github.com/kestrel-engine/kestrel/internal/types"
)

// Evaluate returns the net material outcome in centipawns of playing m and
// letting both sides recapture on the destination square with their least
// valuable attacker until neither wishes to continue.
func Evaluate(p *position.Position, m Move) Value {
	var gain [32]Value

	toSquare := m.To()
	fromSquare := m.From()
	movedPiece := p.GetPiece(fromSquare)
	nextPlayer := p.NextPlayer()

	occupiedBitboard := p.OccupiedAll()

	var capturedValue Value
	if m.IsEnPassant() {
		capturedSq := toSquare.To(-nextPlayer.MoveDirection())
		capturedValue = p.GetPiece(capturedSq).ValueOf()
		occupiedBitboard.PopSquare(capturedSq)
	} else {
		capturedValue = p.GetPiece(toSquare).ValueOf()
	}

	remainingAttacks := attacksTo(p, toSquare, White, occupiedBitboard) | attacksTo(p, toSquare, Black, occupiedBitboard)

	ply := 0
	gain[ply] = capturedValue

	for {
		ply++
		nextPlayer = nextPlayer.Flip()

		if m.IsPromotion() && ply == 1 {
			gain[ply] = m.PromotionType().ValueOf() - Pawn.ValueOf() - gain[ply-1]
		} else {
			gain[ply] = movedPiece.ValueOf() - gain[ply-1]
		}

		// pruning if defended - will not change final see score
		if max(-gain[ply-1], gain[ply]) < 0 {
			break
		}

		remainingAttacks.PopSquare(fromSquare)
		occupiedBitboard.PopSquare(fromSquare)

		// reevaluate attacks to reveal attacks after removing the moving piece
		remainingAttacks |= revealedAttacks(p, toSquare, occupiedBitboard, White) |
			revealedAttacks(p, toSquare, occupiedBitboard, Black)

		fromSquare = leastValuableAttacker(p, remainingAttacks, nextPlayer)
		if fromSquare == SqNone {
			break
		}

		movedPiece = p.GetPiece(fromSquare)
		if ply >= 31 {
			break
		}
	}

	ply--
	for ply > 0 {
		gain[ply-1] = -max(-gain[ply-1], gain[ply])
		ply--
	}

	return gain[0]
}

// Ge is the hot-path caller: returns true if Evaluate(pos, m) >= threshold
// without requiring the caller to interpret the raw gain value.
func Ge(p *position.Position, m Move, threshold Value) bool {
	return Evaluate(p, m) >= threshold
}

// attacksTo returns all pieces of color attacking square given occupied,
// the board occupancy to resolve sliding attacks against. En-passant is not
// considered as the move preceding it is never a capture.
func attacksTo(p *position.Position, square Square, color Color, occupied Bitboard) Bitboard {
	return (GetPawnAttacks(color.Flip(), square) & p.PiecesBb(color, Pawn)) |
		(GetAttacksBb(Knight, square, occupied) & p.PiecesBb(color, Knight)) |
		(GetAttacksBb(King, square, occupied) & p.PiecesBb(color, King)) |
		(GetAttacksBb(Rook, square, occupied) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen))) |
		(GetAttacksBb(Bishop, square, occupied) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)))
}

// revealedAttacks returns sliding attacks on square after a piece has been
// removed from occupied, revealing attackers behind it (x-ray). Only slider
// piece types can have their attacks revealed this way.
func revealedAttacks(p *position.Position, square Square, occupied Bitboard, color Color) Bitboard {
	return (GetAttacksBb(Rook, square, occupied) & (p.PiecesBb(color, Rook) | p.PiecesBb(color, Queen)) & occupied) |
		(GetAttacksBb(Bishop, square, occupied) & (p.PiecesBb(color, Bishop) | p.PiecesBb(color, Queen)) & occupied)
}

// leastValuableAttacker returns the square of the least valuable color
// piece among bitboard's bits. Ties are broken by least significant bit.
func leastValuableAttacker(p *position.Position, bitboard Bitboard, color Color) Square {
	switch {
	case (bitboard & p.PiecesBb(color, Pawn)) != 0:
		return (bitboard & p.PiecesBb(color, Pawn)).Lsb()
	case (bitboard & p.PiecesBb(color, Knight)) != 0:
		return (bitboard & p.PiecesBb(color, Knight)).Lsb()
	case (bitboard & p.PiecesBb(color, Bishop)) != 0:
		return (bitboard & p.PiecesBb(color, Bishop)).Lsb()
	case (bitboard & p.PiecesBb(color, Rook)) != 0:
		return (bitboard & p.PiecesBb(color, Rook)).Lsb()
	case (bitboard & p.PiecesBb(color, Queen)) != 0:
		return (bitboard & p.PiecesBb(color, Queen)).Lsb()
	case (bitboard & p.PiecesBb(color, King)) != 0:
		return (bitboard & p.PiecesBb(color, King)).Lsb()
	default:
		return SqNone
	}
}

func max(x, y Value) Value {
	if x > y {
		return x
	}
	return y
}
