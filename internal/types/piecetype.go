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

import (
	"strconv"
	"strings"

	"github.com/kestrel-engine/kestrel/internal/util"
)

// Value is a centipawn-scaled evaluation or material value.
type Value int16

//noinspection GoUnusedConst
const (
	ValueZero  Value = 0
	ValueDraw  Value = 0
	ValueInf   Value = 15000
	ValueMax   Value = ValueInf - 1
	ValueMin   Value = -ValueMax
	ValueNone  Value = -ValueInf - 1
	ValueCheckmate      Value = 10000
	ValueCheckmateThreshold Value = ValueCheckmate - 1000
)

// IsValid checks if the value is within the valid range (between Min and Max).
func (v Value) IsValid() bool {
	return v >= ValueMin && v <= ValueMax
}

// IsCheckmateValue returns true if v is a mate score, i.e. its magnitude is
// above the check mate threshold but not beyond the checkmate value itself.
func (v Value) IsCheckmateValue() bool {
	return util.Abs(int(v)) > int(ValueCheckmateThreshold) && util.Abs(int(v)) <= int(ValueCheckmate)
}

// String renders v in UCI score notation: "cp <n>", "mate <n>" or "N/A".
func (v Value) String() string {
	var b strings.Builder
	switch {
	case v.IsCheckmateValue():
		b.WriteString("mate ")
		if v < ValueZero {
			b.WriteString("-")
		}
		pliesToMate := int(ValueCheckmate) - util.Abs(int(v))
		b.WriteString(strconv.Itoa((pliesToMate + 1) / 2))
	case v == ValueNone:
		b.WriteString("N/A")
	default:
		b.WriteString("cp ")
		b.WriteString(strconv.Itoa(int(v)))
	}
	return b.String()
}

// PieceType identifies the kind of piece, independent of color.
type PieceType uint8

//noinspection GoUnusedConst
const (
	PtNone   PieceType = iota
	King     PieceType = iota
	Pawn     PieceType = iota
	Knight   PieceType = iota
	Bishop   PieceType = iota
	Rook     PieceType = iota
	Queen    PieceType = iota
	PtLength PieceType = iota
)

// IsValid returns true if pt is a real piece type (not PtNone).
func (pt PieceType) IsValid() bool {
	return pt > PtNone && pt < PtLength
}

// gamePhaseValue is the contribution of one piece of this type to the
// 0..24 game-phase counter (Queen=4, Rook=2, Bishop/Knight=1, Pawn/King=0).
var gamePhaseValue = [PtLength]int{0, 0, 0, 1, 1, 2, 4}

// GamePhaseValue returns the game-phase weight of this piece type.
func (pt PieceType) GamePhaseValue() int {
	return gamePhaseValue[pt]
}

// pieceTypeValue are the static material values in centipawns.
var pieceTypeValue = [PtLength]Value{0, 2000, 100, 320, 330, 500, 900}

// ValueOf returns the static material value of this piece type.
func (pt PieceType) ValueOf() Value {
	return pieceTypeValue[pt]
}

const pieceTypeChars = "-KPNBRQ"

func (pt PieceType) String() string {
	if pt >= PtLength {
		return "-"
	}
	switch pt {
	case PtNone:
		return "None"
	case King:
		return "King"
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	default:
		return "-"
	}
}

// Char returns the single uppercase FEN letter for this piece type.
func (pt PieceType) Char() string {
	if pt >= PtLength {
		return "-"
	}
	return string(pieceTypeChars[pt])
}
