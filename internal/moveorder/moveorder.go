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

// Package moveorder implements the staged move picker: it yields moves one
// at a time to the search, lazily generating and scoring only what the
// search actually consumes, and classifies captures by MVV-LVA/SEE for
// ordering and cutoff bookkeeping.
package moveorder

import (
	"github.com/kestrel-engine/kestrel/internal/history"
	"github.com/kestrel-engine/kestrel/internal/movegen"
	"github.com/kestrel-engine/kestrel/internal/moveslice"
	"github.com/kestrel-engine/kestrel/internal/position"
	"github.com/kestrel-engine/kestrel/internal/see"
	. "github.com/kestrel-engine/kestrel/internal/types"
)

// Stage identifies where the main-search picker currently is in its staged
// generation sequence:
//
//	TT_MOVES -> GEN_CAPTURES -> WINNING_CAPTURES -> GEN_QUIET_CHECKS -> QUIET_CHECKS
//	 -> KILLER1 -> KILLER2 -> COUNTER_MOVE -> GEN_QUIETS -> EQUAL_CAPTURES
//	 -> QUIETS -> BAD_CAPTURES -> DONE
type Stage int

const (
	StageTTMoves Stage = iota
	StageGenCaptures
	StageWinningCaptures
	StageGenQuietChecks
	StageQuietChecks
	StageKiller1
	StageKiller2
	StageCounterMove
	StageGenQuiets
	StageEqualCaptures
	StageQuiets
	StageBadCaptures
	StageDone
)

// captureClass classifies a capture/promotion for ordering, via MVV-LVA/SEE
// rules.
type captureClass int

const (
	classWinning captureClass = iota
	classEqual
	classBad
)

const (
	promoBonus   = 30000
	winningBase  = 20000
	equalBase    = 10000
	checkBoost   = 25000
	killer1Score = 9000
	killer2Score = 8000
	counterScore = 7000
	kingZoneBonus = 5000
)

// scoredMove pairs a move with its ordering score for a single pass of
// Picker.pickBest, which swaps the running maximum into place rather than
// fully sorting the remainder of the list.
type scoredMove struct {
	move  Move
	score int
}

// Picker is the staged move picker for the main search. One Picker is
// created per node visited; it is cheap to construct and holds no state
// beyond the position, ply and TT/killer/counter hints it was given.
type Picker struct {
	pos  *position.Position
	mg   *movegen.Movegen
	hist *history.History
	ply  int

	ttMoves []Move // up to three, primed from the TT cluster, in recorded order

	stage Stage

	captures     []scoredMove
	capIdx       int
	quietChecks  []scoredMove
	qcIdx        int
	quiets       []scoredMove
	quietIdx     int
	badCaptures  []scoredMove
	badIdx       int

	yielded map[Move]bool

	buf *moveslice.MoveSlice
}

// NewPicker creates a staged picker for the node at ply, seeded with up to
// three TT moves (in priming order) and the side's current killer/counter
// hints from hist.
func NewPicker(pos *position.Position, mg *movegen.Movegen, hist *history.History, ply int, ttMoves []Move) *Picker {
	return &Picker{
		pos:     pos,
		mg:      mg,
		hist:    hist,
		ply:     ply,
		ttMoves: ttMoves,
		stage:   StageTTMoves,
		yielded: make(map[Move]bool, 64),
		buf:     moveslice.NewMoveSlice(MaxMoves),
	}
}

// Next returns the next move to try and true, or MoveNone and false once
// every stage is exhausted. A move that fails is_pseudo_legal (stale TT,
// killer or counter entry) is skipped silently, never yielded.
func (p *Picker) Next() (Move, bool) {
	for {
		switch p.stage {

		case StageTTMoves:
			for len(p.ttMoves) > 0 {
				m := p.ttMoves[0]
				p.ttMoves = p.ttMoves[1:]
				if p.accept(m) {
					return m, true
				}
			}
			p.stage = StageGenCaptures

		case StageGenCaptures:
			p.generateCaptures()
			p.stage = StageWinningCaptures

		case StageWinningCaptures:
			if m, ok := p.nextScored(&p.captures, &p.capIdx, classWinning); ok {
				return m, true
			}
			p.stage = StageGenQuietChecks

		case StageGenQuietChecks:
			if !p.pos.InCheck() {
				p.generateQuietChecks()
			}
			p.stage = StageQuietChecks

		case StageQuietChecks:
			if m, ok := p.nextPlain(&p.quietChecks, &p.qcIdx); ok {
				return m, true
			}
			p.stage = StageKiller1

		case StageKiller1:
			p.stage = StageKiller2
			if m := p.hist.Killer1[p.clampPly()]; m != MoveNone && p.accept(m) {
				return m, true
			}

		case StageKiller2:
			p.stage = StageCounterMove
			if m := p.hist.Killer2[p.clampPly()]; m != MoveNone && p.accept(m) {
				return m, true
			}

		case StageCounterMove:
			p.stage = StageGenQuiets
			if m := p.counterMove(); m != MoveNone && p.accept(m) {
				return m, true
			}

		case StageGenQuiets:
			p.generateQuiets()
			p.stage = StageEqualCaptures

		case StageEqualCaptures:
			if m, ok := p.nextScored(&p.captures, &p.capIdx, classEqual); ok {
				return m, true
			}
			p.stage = StageQuiets

		case StageQuiets:
			if m, ok := p.nextPlain(&p.quiets, &p.quietIdx); ok {
				return m, true
			}
			p.stage = StageBadCaptures

		case StageBadCaptures:
			if m, ok := p.nextScored(&p.captures, &p.capIdx, classBad); ok {
				return m, true
			}
			p.stage = StageDone

		case StageDone:
			return MoveNone, false
		}
	}
}

// accept filters a TT/killer/counter move through is_pseudo_legal and the
// already-yielded set before admitting it, and marks it yielded.
func (p *Picker) accept(m Move) bool {
	if m == MoveNone || p.yielded[m] {
		return false
	}
	if !p.mg.IsPseudoLegal(p.pos, m) {
		return false
	}
	if !p.pos.IsLegalMove(m) {
		return false
	}
	p.yielded[m] = true
	return true
}

func (p *Picker) clampPly() int {
	if p.ply < 0 {
		return 0
	}
	if p.ply >= history.MaxPly {
		return history.MaxPly - 1
	}
	return p.ply
}

func (p *Picker) counterMove() Move {
	last := p.pos.LastMove()
	if last == MoveNone {
		return MoveNone
	}
	lastPiece := p.pos.GetPiece(last.To())
	return p.hist.CounterMove(lastPiece, last.To())
}

func (p *Picker) generateCaptures() {
	p.mg.GenerateCaptures(p.pos, p.buf)
	p.captures = p.captures[:0]
	for i := 0; i < p.buf.Len(); i++ {
		m := p.buf.At(i)
		if p.yielded[m] || !p.pos.IsLegalMove(m) {
			continue
		}
		p.captures = append(p.captures, scoredMove{m, p.scoreCapture(m)})
	}
}

func (p *Picker) generateQuietChecks() {
	p.mg.GenerateCheckingMoves(p.pos, p.buf)
	p.quietChecks = p.quietChecks[:0]
	for i := 0; i < p.buf.Len(); i++ {
		m := p.buf.At(i)
		if m.IsCapture() || p.yielded[m] || !p.pos.IsLegalMove(m) {
			continue
		}
		p.quietChecks = append(p.quietChecks, scoredMove{m, p.scoreQuiet(m)})
	}
	sortDesc(p.quietChecks)
}

func (p *Picker) generateQuiets() {
	p.mg.GenerateQuiets(p.pos, p.buf)
	p.quiets = p.quiets[:0]
	for i := 0; i < p.buf.Len(); i++ {
		m := p.buf.At(i)
		if p.yielded[m] || !p.pos.IsLegalMove(m) {
			continue
		}
		p.quiets = append(p.quiets, scoredMove{m, p.scoreQuiet(m)})
	}
	sortDesc(p.quiets)
}

// nextScored walks scored captures once, yielding only those of the
// requested class, in descending score order within that class.
func (p *Picker) nextScored(list *[]scoredMove, idx *int, class captureClass) (Move, bool) {
	if *idx == 0 {
		sortDesc(*list)
	}
	for *idx < len(*list) {
		sm := (*list)[*idx]
		*idx++
		if classify(sm.score) != class {
			continue
		}
		if p.yielded[sm.move] {
			continue
		}
		p.yielded[sm.move] = true
		return sm.move, true
	}
	return MoveNone, false
}

func (p *Picker) nextPlain(list *[]scoredMove, idx *int) (Move, bool) {
	for *idx < len(*list) {
		sm := (*list)[*idx]
		*idx++
		if p.yielded[sm.move] {
			continue
		}
		p.yielded[sm.move] = true
		return sm.move, true
	}
	return MoveNone, false
}

func classify(score int) captureClass {
	switch {
	case score >= winningBase:
		return classWinning
	case score >= equalBase:
		return classEqual
	default:
		return classBad
	}
}

// scoreCapture implements the capture-scoring rules: queen/knight
// promotions get a large fixed score plus the victim value, other captures
// are MVV-LVA classified by value difference and, when close, by SEE, and
// winning or equal captures that give check are boosted further.
func (p *Picker) scoreCapture(m Move) int {
	attacker := p.pos.GetPiece(m.From())
	victim := p.pos.GetPiece(m.To())
	var victimValue Value
	if m.IsEnPassant() {
		victimValue = Pawn.ValueOf()
	} else {
		victimValue = victim.TypeOf().ValueOf()
	}

	if pt := m.PromotionType(); pt == Queen || pt == Knight {
		return promoBonus + int(victimValue)
	}

	score := 0
	diff := int(victimValue) - int(attacker.TypeOf().ValueOf())

	switch {
	case diff >= 200:
		score = winningBase + diff
	default:
		seeValue := int(see.Evaluate(p.pos, m))
		switch {
		case seeValue >= 0 && abs(seeValue) <= 50 && attacker.TypeOf() == victim.TypeOf():
			score = equalBase + typeBonus(attacker.TypeOf())
		case seeValue >= 0:
			score = winningBase + seeValue
		default:
			score = seeValue // bad capture, scored (negative) by raw SEE value
		}
	}

	if p.pos.GivesCheck(m) && score >= equalBase {
		score += checkBoost
	}

	score += p.hist.CaptureScore(attacker, m.To(), victim.TypeOf())
	return score
}

// scoreQuiet implements the quiet-move scoring: killer/counter get fixed
// slot scores; everything else uses butterfly history plus small
// positional bonuses. Continuation history is not part of the score.
func (p *Picker) scoreQuiet(m Move) int {
	if m == p.hist.Killer1[p.clampPly()] {
		return killer1Score
	}
	if m == p.hist.Killer2[p.clampPly()] {
		return killer2Score
	}
	if m == p.counterMove() {
		return counterScore
	}

	side := p.pos.NextPlayer()
	score := p.hist.ButterflyScore(side, m)

	// continuation history anchors are left to the caller's search stack;
	// a Picker constructed without stack access degrades gracefully to
	// plain butterfly history, which is still a valid quiet score.

	movedPiece := p.pos.GetPiece(m.From())
	if movedPiece.TypeOf() == Queen || movedPiece.TypeOf() == Rook {
		enemyKing := p.pos.KingSquare(side.Flip())
		if SquareDistance(m.To(), enemyKing) <= 2 {
			score += kingZoneBonus
		}
	}

	if pt := m.PromotionType(); pt != PtNone && pt != Queen {
		score += 50
	}

	return score
}

func typeBonus(pt PieceType) int {
	switch pt {
	case Queen:
		return 4
	case Rook:
		return 3
	case Bishop:
		return 2
	case Knight:
		return 1
	default:
		return 0
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sortDesc(list []scoredMove) {
	// Insertion sort: stage lists are short (<= 218 quiets, <= ~74
	// captures by MAX_MOVES/piece-count bounds) so this beats the
	// overhead of sort.Slice's reflection-based comparator.
	for i := 1; i < len(list); i++ {
		v := list[i]
		j := i - 1
		for j >= 0 && list[j].score < v.score {
			list[j+1] = list[j]
			j--
		}
		list[j+1] = v
	}
}

// QStage identifies where the quiescence picker is in its (much shorter)
// sequence: QS_TT_MOVES -> QS_GEN_CAPTURES -> QS_CAPTURES -> DONE.
type QStage int

const (
	QStageTTMoves QStage = iota
	QStageGenCaptures
	QStageCaptures
	QStageDone
)

// QPicker is the quiescence-search move picker: captures (and promotions)
// only, no quiet moves, no killer/counter/history stages.
type QPicker struct {
	pos *position.Position
	mg  *movegen.Movegen

	ttMove Move
	stage  QStage

	captures []scoredMove
	idx      int

	yielded map[Move]bool
	buf     *moveslice.MoveSlice
}

// NewQPicker creates a quiescence picker for pos, optionally seeded with a
// TT move (MoveNone if there is none).
func NewQPicker(pos *position.Position, mg *movegen.Movegen, ttMove Move) *QPicker {
	return &QPicker{
		pos:     pos,
		mg:      mg,
		ttMove:  ttMove,
		stage:   QStageTTMoves,
		yielded: make(map[Move]bool, 32),
		buf:     moveslice.NewMoveSlice(MaxMoves),
	}
}

// Next returns the next capture to try and true, or MoveNone and false once
// the picker is exhausted.
func (p *QPicker) Next() (Move, bool) {
	for {
		switch p.stage {
		case QStageTTMoves:
			p.stage = QStageGenCaptures
			if p.ttMove != MoveNone && !p.yielded[p.ttMove] &&
				p.ttMove.IsCapture() && p.mg.IsPseudoLegal(p.pos, p.ttMove) && p.pos.IsLegalMove(p.ttMove) {
				p.yielded[p.ttMove] = true
				return p.ttMove, true
			}

		case QStageGenCaptures:
			p.generate()
			p.stage = QStageCaptures

		case QStageCaptures:
			for p.idx < len(p.captures) {
				sm := p.captures[p.idx]
				p.idx++
				if p.yielded[sm.move] {
					continue
				}
				p.yielded[sm.move] = true
				return sm.move, true
			}
			p.stage = QStageDone

		case QStageDone:
			return MoveNone, false
		}
	}
}

func (p *QPicker) generate() {
	p.mg.GenerateCaptures(p.pos, p.buf)
	p.captures = p.captures[:0]
	for i := 0; i < p.buf.Len(); i++ {
		m := p.buf.At(i)
		if p.yielded[m] || !p.pos.IsLegalMove(m) {
			continue
		}
		victimValue := p.pos.GetPiece(m.To()).TypeOf().ValueOf()
		attackerValue := p.pos.GetPiece(m.From()).TypeOf().ValueOf()
		p.captures = append(p.captures, scoredMove{m, int(victimValue) - int(attackerValue)})
	}
	sortDesc(p.captures)
}
