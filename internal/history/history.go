//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package history provides the heuristic move-ordering tables updated during
// search: butterfly history, killer moves, counter moves, continuation
// histories and capture history. All tables are per-worker; nothing here is
// shared between search threads.
package history

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	. "github.com/kestrel-engine/kestrel/internal/types"
)

var out = message.NewPrinter(language.German)

// MaxBonus caps the gravity-formula bonus/penalty applied on a cutoff.
const MaxBonus = 16384

// MaxPly bounds the killer-move and continuation-history ply index.
const MaxPly = 128

// gravity applies the saturating update h += bonus - h*|bonus|/MaxBonus,
// shared by every history table's reward and penalty path.
func gravity(h int16, bonus int32) int16 {
	v := int32(h) + bonus - int32(h)*abs32(bonus)/MaxBonus
	if v > MaxBonus {
		v = MaxBonus
	} else if v < -MaxBonus {
		v = -MaxBonus
	}
	return int16(v)
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

// History holds every heuristic table a search worker consults through the
// move picker, and the update protocol that feeds them after a cutoff.
type History struct {
	// Butterfly history, indexed by side-to-move and (from, to).
	Butterfly [ColorLength][SqLength][SqLength]int16

	// Killer moves per ply; killer1 is the most recently promoted.
	Killer1 [MaxPly]Move
	Killer2 [MaxPly]Move

	// CounterMoves indexed by the previous move's (piece, to).
	CounterMoves [PieceLength][SqLength]Move

	// Continuation histories at one and two plies back, indexed by
	// (piece, to) of the earlier move and (piece, to) of the current move.
	Cont1 [PieceLength][SqLength][PieceLength][SqLength]int16
	Cont2 [PieceLength][SqLength][PieceLength][SqLength]int16

	// CaptureHistory indexed by (attacker piece, destination, victim type).
	CaptureHistory [PieceLength][SqLength][PtLength]int16
}

// NewHistory creates a new, empty History instance.
func NewHistory() *History {
	h := &History{}
	for i := range h.Killer1 {
		h.Killer1[i] = MoveNone
		h.Killer2[i] = MoveNone
	}
	return h
}

// ContMove describes one move earlier in the search stack, for continuation
// history lookups and updates at a fixed distance from the current move.
type ContMove struct {
	Piece Piece
	To    Square
}

// ButterflyScore returns the plain history score for a quiet move.
func (h *History) ButterflyScore(side Color, m Move) int {
	return int(h.Butterfly[side][m.From()][m.To()])
}

// ContScore returns cont_hist_1ply[piece,to] and cont_hist_2ply[piece,to]
// for the move about to be made, given the moves one and two plies back.
func (h *History) ContScore(ply1, ply2 *ContMove, piece Piece, to Square) (int, int) {
	var s1, s2 int
	if ply1 != nil {
		s1 = int(h.Cont1[ply1.Piece][ply1.To][piece][to])
	}
	if ply2 != nil {
		s2 = int(h.Cont2[ply2.Piece][ply2.To][piece][to])
	}
	return s1, s2
}

// CaptureScore returns capture_history[attacker, to, victim] / 100, an
// additive term layered on top of MVV-LVA/SEE classification.
func (h *History) CaptureScore(attacker Piece, to Square, victim PieceType) int {
	return int(h.CaptureHistory[attacker][to][victim]) / 100
}

// IsKiller reports whether m is the ply's killer1 or killer2.
func (h *History) IsKiller(ply int, m Move) bool {
	return m == h.Killer1[ply] || m == h.Killer2[ply]
}

// CounterMove returns the recorded reply to the previous move (prevPiece,
// prevTo), or MoveNone if none has been recorded.
func (h *History) CounterMove(prevPiece Piece, prevTo Square) Move {
	return h.CounterMoves[prevPiece][prevTo]
}

// UpdateOnCutoff is update_histories(pos, m, depth, failedMoves): called
// after a fail-high on quiet or capture move m at the given remaining
// depth and ply. failedQuiets lists the quiet moves tried and rejected
// before m, each penalized by the same gravity formula. ply1/ply2 are the
// continuation anchors (nil if the search stack is not that deep yet);
// prevPiece/prevTo identify the move being replied to for the counter-move
// table. depth (remaining depth) scales the bonus magnitude; ply (distance
// from root) indexes the killer table, since killers are looked up by ply,
// not remaining depth.
func (h *History) UpdateOnCutoff(side Color, m Move, movedPiece Piece, victim PieceType, depth int, ply int, failedQuiets []Move, ply1, ply2 *ContMove, prevPiece Piece, prevTo Square) {
	bonus := depth * depth
	if bonus > MaxBonus {
		bonus = MaxBonus
	}

	if m.IsCapture() {
		cur := h.CaptureHistory[movedPiece][m.To()][victim]
		h.CaptureHistory[movedPiece][m.To()][victim] = gravity(cur, int32(bonus))
		return
	}

	from, to := m.From(), m.To()
	h.Butterfly[side][from][to] = gravity(h.Butterfly[side][from][to], int32(bonus))
	if ply1 != nil {
		h.Cont1[ply1.Piece][ply1.To][movedPiece][to] = gravity(h.Cont1[ply1.Piece][ply1.To][movedPiece][to], int32(bonus))
	}
	if ply2 != nil {
		h.Cont2[ply2.Piece][ply2.To][movedPiece][to] = gravity(h.Cont2[ply2.Piece][ply2.To][movedPiece][to], int32(bonus))
	}

	for _, fm := range failedQuiets {
		if fm == m {
			continue
		}
		ffrom, fto := fm.From(), fm.To()
		h.Butterfly[side][ffrom][fto] = gravity(h.Butterfly[side][ffrom][fto], -int32(bonus))
		if ply1 != nil {
			h.Cont1[ply1.Piece][ply1.To][movedPiece][fto] = gravity(h.Cont1[ply1.Piece][ply1.To][movedPiece][fto], -int32(bonus))
		}
		if ply2 != nil {
			h.Cont2[ply2.Piece][ply2.To][movedPiece][fto] = gravity(h.Cont2[ply2.Piece][ply2.To][movedPiece][fto], -int32(bonus))
		}
	}

	h.promoteKiller(ply, m)
	if prevPiece != PieceNone {
		h.CounterMoves[prevPiece][prevTo] = m
	}
}

// promoteKiller shifts killer1 to killer2 and installs m as killer1 for ply,
// unless m already is killer1.
func (h *History) promoteKiller(ply int, m Move) {
	if ply < 0 || ply >= MaxPly {
		return
	}
	if h.Killer1[ply] == m {
		return
	}
	h.Killer2[ply] = h.Killer1[ply]
	h.Killer1[ply] = m
}

func (h *History) String() string {
	sb := strings.Builder{}
	for sf := SqA1; sf < SqNone; sf++ {
		for st := SqA1; st < SqNone; st++ {
			sb.WriteString(out.Sprintf("Move=%s%s: ", sf.String(), st.String()))
			for c := White; c < ColorNone; c++ {
				count := h.Butterfly[c][sf][st]
				sb.WriteString(out.Sprintf("%s=%-7d ", c.String(), count))
			}
			m := h.CounterMoves[PieceNone][st]
			sb.WriteString(out.Sprintf("cm=%s\n", m.String()))
		}
	}
	return sb.String()
}
