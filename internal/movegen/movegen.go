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

// Package movegen generates moves on a chess position: pseudo-legal and
// legal moves, captures, quiets, check evasions and checking quiets.
//
// Move ordering (sort values, killers, PV priming) is not this package's
// concern - it only produces move lists. internal/moveorder scores and
// stages what this package generates.
package movegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/op/go-logging"

	myLogging "github.com/kestrel-engine/kestrel/internal/logging"
	"github.com/kestrel-engine/kestrel/internal/moveslice"
	"github.com/kestrel-engine/kestrel/internal/position"
	. "github.com/kestrel-engine/kestrel/internal/types"
)

var log *logging.Logger

// Movegen holds reusable move-list buffers so generation does not
// allocate on every call.
type Movegen struct {
	pseudoLegalMoves *moveslice.MoveSlice
	legalMoves       *moveslice.MoveSlice
}

// GenMode is a bit flag selecting captures and/or non-captures for the
// internal per-piece generators.
type GenMode int

const (
	GenZero   GenMode = 0b00
	GenCap    GenMode = 0b01
	GenNonCap GenMode = 0b10
	GenAll    GenMode = 0b11
)

// NewMoveGen creates a new move generator.
func NewMoveGen() *Movegen {
	if log == nil {
		log = myLogging.GetLog()
	}
	return &Movegen{
		pseudoLegalMoves: moveslice.NewMoveSlice(MaxMoves),
		legalMoves:       moveslice.NewMoveSlice(MaxMoves),
	}
}

// GenerateAll fills ml with all pseudo-legal moves (captures and quiets),
// no legality filter.
func (mg *Movegen) GenerateAll(p *position.Position, ml *moveslice.MoveSlice) *moveslice.MoveSlice {
	ml.Clear()
	mg.generatePawnMoves(p, GenAll, ml)
	mg.generateCastling(p, GenAll, ml)
	mg.generateKingMoves(p, GenAll, ml)
	mg.generatePieceMoves(p, GenAll, ml)
	return ml
}

// GenerateCaptures fills ml with captures (capture-promotions to every
// piece included) and queen promotions by a push.
func (mg *Movegen) GenerateCaptures(p *position.Position, ml *moveslice.MoveSlice) *moveslice.MoveSlice {
	ml.Clear()
	mg.generatePawnMoves(p, GenCap, ml)
	mg.generateKingMoves(p, GenCap, ml)
	mg.generatePieceMoves(p, GenCap, ml)
	return ml
}

// GenerateQuiets fills ml with non-captures, including castling and
// under-promotions by a push.
func (mg *Movegen) GenerateQuiets(p *position.Position, ml *moveslice.MoveSlice) *moveslice.MoveSlice {
	ml.Clear()
	mg.generatePawnMoves(p, GenNonCap, ml)
	mg.generateCastling(p, GenNonCap, ml)
	mg.generateKingMoves(p, GenNonCap, ml)
	mg.generatePieceMoves(p, GenNonCap, ml)
	return ml
}

// GenerateEvasions fills ml with legal moves assuming the side to move is
// in check. King moves are legality-checked against occupancy with the
// king itself removed, so a sliding checker's ray still covers the
// landing square. Single checks are additionally restricted to moves that
// block the check or capture the checker; double checks allow king moves
// only. The result is fully legal - pinned pieces are filtered out.
func (mg *Movegen) GenerateEvasions(p *position.Position, ml *moveslice.MoveSlice) *moveslice.MoveSlice {
	ml.Clear()
	us := p.NextPlayer()
	them := us.Flip()
	kingSq := p.KingSquare(us)
	checkers := p.Checkers()

	kingTargets := GetPseudoAttacks(King, kingSq) &^ p.OccupiedBb(us)
	for kingTargets != 0 {
		to := kingTargets.PopLsb()
		flag := MoveFlag(FlagQuiet)
		if p.OccupiedBb(them).Has(to) {
			flag = FlagCapture
		}
		ml.PushBack(NewMove(kingSq, to, flag))
	}

	if checkers.PopCount() < 2 {
		checkerSq := checkers.Lsb()
		targetMask := Intermediate(kingSq, checkerSq) | checkerSq.Bb()

		mg.pseudoLegalMoves.Clear()
		mg.generatePawnMoves(p, GenAll, mg.pseudoLegalMoves)
		mg.generatePieceMoves(p, GenAll, mg.pseudoLegalMoves)
		mg.pseudoLegalMoves.ForEach(func(i int) {
			m := mg.pseudoLegalMoves.At(i)
			if m.IsEnPassant() {
				capturedSq := m.To().To(them.MoveDirection())
				if capturedSq == checkerSq || targetMask.Has(m.To()) {
					ml.PushBack(m)
				}
				return
			}
			if targetMask.Has(m.To()) {
				ml.PushBack(m)
			}
		})
	}

	ml.Filter(func(i int) bool { return p.IsLegalMove(ml.At(i)) })
	return ml
}

// GenerateCheckingMoves fills ml with quiet moves that give check (direct
// or discovered), for use by quiescence search.
func (mg *Movegen) GenerateCheckingMoves(p *position.Position, ml *moveslice.MoveSlice) *moveslice.MoveSlice {
	ml.Clear()
	mg.pseudoLegalMoves.Clear()
	mg.generatePawnMoves(p, GenNonCap, mg.pseudoLegalMoves)
	mg.generateCastling(p, GenNonCap, mg.pseudoLegalMoves)
	mg.generateKingMoves(p, GenNonCap, mg.pseudoLegalMoves)
	mg.generatePieceMoves(p, GenNonCap, mg.pseudoLegalMoves)
	mg.pseudoLegalMoves.FilterCopy(ml, func(i int) bool {
		return p.GivesCheck(mg.pseudoLegalMoves.At(i))
	})
	return ml
}

// GenerateLegal fills ml with legal moves: generate_evasions when the side
// to move is in check, otherwise generate_all filtered by is_legal.
func (mg *Movegen) GenerateLegal(p *position.Position, ml *moveslice.MoveSlice) *moveslice.MoveSlice {
	if p.InCheck() {
		return mg.GenerateEvasions(p, ml)
	}
	ml.Clear()
	mg.pseudoLegalMoves.Clear()
	mg.GenerateAll(p, mg.pseudoLegalMoves)
	mg.pseudoLegalMoves.FilterCopy(ml, func(i int) bool {
		return p.IsLegalMove(mg.pseudoLegalMoves.At(i))
	})
	return ml
}

// GeneratePseudoLegalMoves is a legacy-named convenience that generates the
// pseudo-legal captures and/or non-captures selected by mode (with GenAll the
// same moves as GenerateAll), kept so callers written against the staged
// generator can migrate one call site at a time.
func (mg *Movegen) GeneratePseudoLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.pseudoLegalMoves.Clear()
	if mode&GenCap != 0 {
		mg.generatePawnMoves(p, GenCap, mg.pseudoLegalMoves)
		mg.generateKingMoves(p, GenCap, mg.pseudoLegalMoves)
		mg.generatePieceMoves(p, GenCap, mg.pseudoLegalMoves)
	}
	if mode&GenNonCap != 0 {
		mg.generatePawnMoves(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generateCastling(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generateKingMoves(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generatePieceMoves(p, GenNonCap, mg.pseudoLegalMoves)
	}
	return mg.pseudoLegalMoves
}

// GenerateLegalMoves generates legal moves for the given mode by filtering
// GeneratePseudoLegalMoves through is_legal.
func (mg *Movegen) GenerateLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.legalMoves.Clear()
	mg.GeneratePseudoLegalMoves(p, mode)
	mg.pseudoLegalMoves.FilterCopy(mg.legalMoves, func(i int) bool {
		return p.IsLegalMove(mg.pseudoLegalMoves.At(i))
	})
	return mg.legalMoves
}

// IsPseudoLegal performs the minimum check necessary to accept a move
// pulled from the transposition table without regenerating all moves:
// the source piece must belong to the side to move, and the move must
// appear in the relevant capture/quiet generation for the current
// position.
func (mg *Movegen) IsPseudoLegal(p *position.Position, m Move) bool {
	if m == MoveNone || !m.IsValid() {
		return false
	}
	fromPc := p.GetPiece(m.From())
	if fromPc == PieceNone || fromPc.ColorOf() != p.NextPlayer() {
		return false
	}
	mg.pseudoLegalMoves.Clear()
	if m.IsCapture() {
		mg.generatePawnMoves(p, GenCap, mg.pseudoLegalMoves)
		mg.generateKingMoves(p, GenCap, mg.pseudoLegalMoves)
		mg.generatePieceMoves(p, GenCap, mg.pseudoLegalMoves)
	} else {
		mg.generatePawnMoves(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generateCastling(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generateKingMoves(p, GenNonCap, mg.pseudoLegalMoves)
		mg.generatePieceMoves(p, GenNonCap, mg.pseudoLegalMoves)
	}
	for _, gm := range *mg.pseudoLegalMoves {
		if gm == m {
			return true
		}
	}
	return false
}

// HasLegalMove determines if the side to move has at least one legal
// move, without generating (and sorting) the full move list. The search
// order is roughly most-likely to least-likely so the common case returns
// quickly.
func (mg *Movegen) HasLegalMove(p *position.Position) bool {
	nextPlayer := p.NextPlayer()
	nextPlayerBb := p.OccupiedBb(nextPlayer)

	// KING - castling is not checked here as possible castling implies a
	// king move that would already be found below.
	kingSquare := p.KingSquare(nextPlayer)
	tmpMoves := GetPseudoAttacks(King, kingSquare) &^ nextPlayerBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		flag := MoveFlag(FlagQuiet)
		if p.OccupiedBb(nextPlayer.Flip()).Has(toSquare) {
			flag = FlagCapture
		}
		if p.IsLegalMove(NewMove(kingSquare, toSquare, flag)) {
			return true
		}
	}

	myPawns := p.PiecesBb(nextPlayer, Pawn)
	opponentBb := p.OccupiedBb(nextPlayer.Flip())

	// PAWN captures
	for _, dir := range []Direction{West, East} {
		tmpMoves = ShiftBitboard(myPawns, nextPlayer.MoveDirection()+dir) & opponentBb
		for tmpMoves != 0 {
			toSquare := tmpMoves.PopLsb()
			fromSquare := toSquare.To(nextPlayer.Flip().MoveDirection() - dir)
			if p.IsLegalMove(NewMove(fromSquare, toSquare, FlagCapture)) {
				return true
			}
		}
	}

	occupiedBb := p.OccupiedAll()

	// pawn pushes - single step is enough to prove a legal move exists
	tmpMoves = ShiftBitboard(myPawns, nextPlayer.MoveDirection()) &^ occupiedBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		fromSquare := toSquare.To(nextPlayer.Flip().MoveDirection())
		if p.IsLegalMove(NewMove(fromSquare, toSquare, FlagQuiet)) {
			return true
		}
	}

	// OFFICERS
	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.PiecesBb(nextPlayer, pt)
		for pieces != 0 {
			fromSquare := pieces.PopLsb()
			moves := GetAttacksBb(pt, fromSquare, occupiedBb) &^ nextPlayerBb
			for moves != 0 {
				toSquare := moves.PopLsb()
				flag := MoveFlag(FlagQuiet)
				if p.OccupiedBb(nextPlayer.Flip()).Has(toSquare) {
					flag = FlagCapture
				}
				if p.IsLegalMove(NewMove(fromSquare, toSquare, flag)) {
					return true
				}
			}
		}
	}

	// en passant captures
	enPassantSquare := p.GetEnPassantSquare()
	if enPassantSquare != SqNone {
		for _, dir := range []Direction{West, East} {
			tmpMoves = ShiftBitboard(enPassantSquare.Bb(), nextPlayer.Flip().MoveDirection()+dir) & myPawns
			if tmpMoves != 0 {
				fromSquare := tmpMoves.PopLsb()
				toSquare := fromSquare.To(nextPlayer.MoveDirection() - dir)
				if p.IsLegalMove(NewMove(fromSquare, toSquare, FlagEnPassant)) {
					return true
				}
			}
		}
	}

	return false
}

// Regex for UCI notation (e.g. "e2e4", "e7e8q")
var regexUciMove = regexp.MustCompile("([a-h][1-8][a-h][1-8])([NBRQnbrq])?")

// GetMoveFromUci generates all legal moves and matches the given UCI move
// string against them. Returns MoveNone if there is no match.
func (mg *Movegen) GetMoveFromUci(posPtr *position.Position, uciMove string) Move {
	matches := regexUciMove.FindStringSubmatch(uciMove)
	if matches == nil {
		return MoveNone
	}

	movePart := matches[1]
	promotionPart := ""
	if len(matches) == 3 {
		// allow lower case promotion letters - many input files get this wrong
		promotionPart = strings.ToUpper(matches[2])
	}

	mg.GenerateLegal(posPtr, mg.legalMoves)
	for _, m := range *mg.legalMoves {
		if m.String() == strings.ToLower(movePart+promotionPart) {
			return m
		}
	}
	return MoveNone
}

var regexSanMove = regexp.MustCompile("([NBRQK])?([a-h])?([1-8])?x?([a-h][1-8]|O-O-O|O-O)(=?([NBRQ]))?([!?+#]*)?")

// GetMoveFromSan generates all legal moves and matches the given SAN move
// string against them. Returns MoveNone if there is no match.
func (mg *Movegen) GetMoveFromSan(posPtr *position.Position, sanMove string) Move {
	matches := regexSanMove.FindStringSubmatch(sanMove)
	if matches == nil {
		return MoveNone
	}

	pieceType := matches[1]
	disambFile := matches[2]
	disambRank := matches[3]
	toSquare := matches[4]
	promotion := matches[6]

	movesFound := 0
	moveFromSAN := MoveNone

	mg.GenerateLegal(posPtr, mg.legalMoves)
	for _, genMove := range *mg.legalMoves {

		if genMove.IsCastle() {
			var castlingString string
			switch genMove.To() {
			case SqG1, SqG8:
				castlingString = "O-O"
			case SqC1, SqC8:
				castlingString = "O-O-O"
			default:
				log.Errorf("castle move with unexpected destination %s", genMove.To().String())
				continue
			}
			if castlingString == toSquare {
				moveFromSAN = genMove
				movesFound++
			}
			continue
		}

		moveTarget := genMove.To().String()
		if moveTarget != toSquare {
			continue
		}

		// determine if piece types match - if not skip
		legalPt := posPtr.GetPiece(genMove.From()).TypeOf()
		legalPtChar := legalPt.Char()
		if (len(pieceType) == 0 || legalPtChar != pieceType) &&
			(len(pieceType) != 0 || legalPt != Pawn) {
			continue
		}

		if len(disambFile) != 0 && genMove.From().FileOf().String() != disambFile {
			continue
		}
		if len(disambRank) != 0 && genMove.From().RankOf().String() != disambRank {
			continue
		}
		if (len(promotion) != 0 && genMove.PromotionType().Char() != promotion) ||
			(len(promotion) == 0 && genMove.IsPromotion()) {
			continue
		}

		moveFromSAN = genMove
		movesFound++
	}

	if movesFound > 1 {
		log.Warningf("SAN move %s is ambiguous (%d matches) on %s!", sanMove, movesFound, posPtr.StringFen())
	} else if movesFound == 0 || !moveFromSAN.IsValid() {
		log.Warningf("SAN move not valid! SAN move %s not found on position: %s", sanMove, posPtr.StringFen())
	} else {
		return moveFromSAN
	}
	return MoveNone
}

// ValidateMove returns true if move is a legal move on p.
func (mg *Movegen) ValidateMove(p *position.Position, move Move) bool {
	if move == MoveNone {
		return false
	}
	ml := mg.GenerateLegal(p, mg.legalMoves)
	for _, m := range *ml {
		if move == m {
			return true
		}
	}
	return false
}

// String returns a string representation of a Movegen instance.
func (mg *Movegen) String() string {
	return fmt.Sprintf("MoveGen: { pseudo: %d legal: %d }", mg.pseudoLegalMoves.Len(), mg.legalMoves.Len())
}

// //////////////////////////////////////////////////////
// // Private per-piece generators
// //////////////////////////////////////////////////////

func (mg *Movegen) generatePawnMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	nextPlayer := p.NextPlayer()
	myPawns := p.PiecesBb(nextPlayer, Pawn)
	oppPieces := p.OccupiedBb(nextPlayer.Flip())

	if mode&GenCap != 0 {
		var tmpCaptures, promCaptures Bitboard

		for _, dir := range []Direction{West, East} {
			tmpCaptures = ShiftBitboard(myPawns, nextPlayer.MoveDirection()+dir) & oppPieces
			promCaptures = tmpCaptures & nextPlayer.PromotionRankBb()
			for promCaptures != 0 {
				toSquare := promCaptures.PopLsb()
				fromSquare := toSquare.To(nextPlayer.Flip().MoveDirection() - dir)
				ml.PushBack(NewMove(fromSquare, toSquare, FlagPromoQueenCap))
				ml.PushBack(NewMove(fromSquare, toSquare, FlagPromoKnightCap))
				ml.PushBack(NewMove(fromSquare, toSquare, FlagPromoRookCap))
				ml.PushBack(NewMove(fromSquare, toSquare, FlagPromoBishopCap))
			}
			tmpCaptures &= ^nextPlayer.PromotionRankBb()
			for tmpCaptures != 0 {
				toSquare := tmpCaptures.PopLsb()
				fromSquare := toSquare.To(nextPlayer.Flip().MoveDirection() - dir)
				ml.PushBack(NewMove(fromSquare, toSquare, FlagCapture))
			}
		}

		enPassantSquare := p.GetEnPassantSquare()
		if enPassantSquare != SqNone {
			for _, dir := range []Direction{West, East} {
				tmpCaptures = ShiftBitboard(enPassantSquare.Bb(), nextPlayer.Flip().MoveDirection()+dir) & myPawns
				if tmpCaptures != 0 {
					fromSquare := tmpCaptures.PopLsb()
					toSquare := fromSquare.To(nextPlayer.MoveDirection() - dir)
					ml.PushBack(NewMove(fromSquare, toSquare, FlagEnPassant))
				}
			}
		}

		// queen promotions by a push belong to the captures
		promPushes := ShiftBitboard(myPawns, nextPlayer.MoveDirection()) & ^p.OccupiedAll() & nextPlayer.PromotionRankBb()
		for promPushes != 0 {
			toSquare := promPushes.PopLsb()
			ml.PushBack(NewMove(toSquare.To(nextPlayer.Flip().MoveDirection()), toSquare, FlagPromoQueen))
		}
	}

	if mode&GenNonCap != 0 {
		tmpMoves := ShiftBitboard(myPawns, nextPlayer.MoveDirection()) & ^p.OccupiedAll()
		tmpMovesDouble := ShiftBitboard(tmpMoves&nextPlayer.PawnDoubleRank(), nextPlayer.MoveDirection()) & ^p.OccupiedAll()

		promMoves := tmpMoves & nextPlayer.PromotionRankBb()
		for promMoves != 0 {
			toSquare := promMoves.PopLsb()
			fromSquare := toSquare.To(nextPlayer.Flip().MoveDirection())
			ml.PushBack(NewMove(fromSquare, toSquare, FlagPromoKnight))
			ml.PushBack(NewMove(fromSquare, toSquare, FlagPromoRook))
			ml.PushBack(NewMove(fromSquare, toSquare, FlagPromoBishop))
		}
		for tmpMovesDouble != 0 {
			toSquare := tmpMovesDouble.PopLsb()
			fromSquare := toSquare.
				To(nextPlayer.Flip().MoveDirection()).
				To(nextPlayer.Flip().MoveDirection())
			ml.PushBack(NewMove(fromSquare, toSquare, FlagDoublePawnPush))
		}
		tmpMoves &= ^nextPlayer.PromotionRankBb()
		for tmpMoves != 0 {
			toSquare := tmpMoves.PopLsb()
			fromSquare := toSquare.To(nextPlayer.Flip().MoveDirection())
			ml.PushBack(NewMove(fromSquare, toSquare, FlagQuiet))
		}
	}
}

func (mg *Movegen) generateCastling(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	if mode&GenNonCap == 0 || p.CastlingRights() == CastlingNone {
		return
	}
	nextPlayer := p.NextPlayer()
	occupiedBB := p.OccupiedAll()
	cr := p.CastlingRights()

	if nextPlayer == White {
		if cr.Has(CastlingWhiteOO) && Intermediate(SqE1, SqH1)&occupiedBB == 0 {
			ml.PushBack(NewMove(SqE1, SqG1, FlagCastleKing))
		}
		if cr.Has(CastlingWhiteOOO) && Intermediate(SqE1, SqA1)&occupiedBB == 0 {
			ml.PushBack(NewMove(SqE1, SqC1, FlagCastleQueen))
		}
	} else {
		if cr.Has(CastlingBlackOO) && Intermediate(SqE8, SqH8)&occupiedBB == 0 {
			ml.PushBack(NewMove(SqE8, SqG8, FlagCastleKing))
		}
		if cr.Has(CastlingBlackOOO) && Intermediate(SqE8, SqA8)&occupiedBB == 0 {
			ml.PushBack(NewMove(SqE8, SqC8, FlagCastleQueen))
		}
	}
}

func (mg *Movegen) generateKingMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	nextPlayer := p.NextPlayer()
	kingSquareBb := p.PiecesBb(nextPlayer, King)
	fromSquare := kingSquareBb.PopLsb()
	pseudoMoves := GetPseudoAttacks(King, fromSquare)

	if mode&GenCap != 0 {
		captures := pseudoMoves & p.OccupiedBb(nextPlayer.Flip())
		for captures != 0 {
			toSquare := captures.PopLsb()
			ml.PushBack(NewMove(fromSquare, toSquare, FlagCapture))
		}
	}
	if mode&GenNonCap != 0 {
		nonCaptures := pseudoMoves &^ p.OccupiedAll()
		for nonCaptures != 0 {
			toSquare := nonCaptures.PopLsb()
			ml.PushBack(NewMove(fromSquare, toSquare, FlagQuiet))
		}
	}
}

// generatePieceMoves generates knight/bishop/rook/queen moves using the
// magic-bitboard attack tables.
func (mg *Movegen) generatePieceMoves(p *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	nextPlayer := p.NextPlayer()
	occupiedBb := p.OccupiedAll()

	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.PiecesBb(nextPlayer, pt)
		for pieces != 0 {
			fromSquare := pieces.PopLsb()
			moves := GetAttacksBb(pt, fromSquare, occupiedBb)

			if mode&GenCap != 0 {
				captures := moves & p.OccupiedBb(nextPlayer.Flip())
				for captures != 0 {
					toSquare := captures.PopLsb()
					ml.PushBack(NewMove(fromSquare, toSquare, FlagCapture))
				}
			}
			if mode&GenNonCap != 0 {
				nonCaptures := moves &^ occupiedBb
				for nonCaptures != 0 {
					toSquare := nonCaptures.PopLsb()
					ml.PushBack(NewMove(fromSquare, toSquare, FlagQuiet))
				}
			}
		}
	}
}
