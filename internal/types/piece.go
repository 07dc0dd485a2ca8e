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

// Piece is a (Color, PieceType) pair packed into a single byte, laid out so
// that White pieces are 1..6 and Black pieces are 9..14 (color*8 + piece type),
// leaving PieceNone == 0 as the zero value.
type Piece int8

//noinspection GoUnusedConst
const (
	PieceNone   Piece = 0
	WhiteKing   Piece = 1
	WhitePawn   Piece = 2
	WhiteKnight Piece = 3
	WhiteBishop Piece = 4
	WhiteRook   Piece = 5
	WhiteQueen  Piece = 6
	BlackKing   Piece = 9
	BlackPawn   Piece = 10
	BlackKnight Piece = 11
	BlackBishop Piece = 12
	BlackRook   Piece = 13
	BlackQueen  Piece = 14
	PieceLength Piece = 16
)

// MakePiece builds a Piece from a Color and PieceType.
func MakePiece(c Color, pt PieceType) Piece {
	return Piece(uint8(c)*8 + uint8(pt))
}

// ColorOf returns the color of the piece.
func (p Piece) ColorOf() Color {
	if p >= 8 {
		return Black
	}
	return White
}

// TypeOf returns the piece type, stripping color.
func (p Piece) TypeOf() PieceType {
	return PieceType(p & 7)
}

// ValueOf returns the static material value of the piece.
func (p Piece) ValueOf() Value {
	return p.TypeOf().ValueOf()
}

// IsValid returns true if p is a real piece (not PieceNone).
func (p Piece) IsValid() bool {
	return p != PieceNone && p.TypeOf() != PtNone
}

var pieceFromCharMap = map[string]Piece{
	"K": WhiteKing, "P": WhitePawn, "N": WhiteKnight, "B": WhiteBishop, "R": WhiteRook, "Q": WhiteQueen,
	"k": BlackKing, "p": BlackPawn, "n": BlackKnight, "b": BlackBishop, "r": BlackRook, "q": BlackQueen,
}

// PieceFromChar parses a single FEN piece letter into a Piece. Anything
// that isn't exactly one recognized letter yields PieceNone.
func PieceFromChar(c string) Piece {
	if p, ok := pieceFromCharMap[c]; ok {
		return p
	}
	return PieceNone
}

func (p Piece) String() string {
	return p.TypeOf().String()
}

// Char returns the FEN letter for the piece, uppercase for White, lowercase
// for Black.
func (p Piece) Char() string {
	c := p.TypeOf().Char()
	if p.ColorOf() == Black {
		return string(c[0] | 0x20)
	}
	return c
}

var uniChars = map[Piece]string{
	WhiteKing: "♔", WhiteQueen: "♕", WhiteRook: "♖",
	WhiteBishop: "♗", WhiteKnight: "♘", WhitePawn: "♙",
	BlackKing: "♚", BlackQueen: "♛", BlackRook: "♜",
	BlackBishop: "♝", BlackKnight: "♞", BlackPawn: "♟",
}

// UniChar returns the unicode chess glyph for the piece.
func (p Piece) UniChar() string {
	if s, ok := uniChars[p]; ok {
		return s
	}
	return "."
}
