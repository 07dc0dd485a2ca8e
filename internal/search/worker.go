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

// Package search is a Lazy-SMP worker pool that consumes the position, move
// generator, move picker, SEE, heuristic tables and transposition table to
// pick a move under time or depth limits. Each worker thread owns its own
// position copy, move generator and history tables and searches the same
// root concurrently with the others, sharing only the transposition table -
// it demonstrates the make/unmake, TT-probe-before-expand, and
// stop-flag-polling contract, not a tuned alpha-beta engine with pruning and
// reduction heuristics.
package search

import (
	"context"
	"math/rand"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/op/go-logging"

	"github.com/kestrel-engine/kestrel/internal/config"
	"github.com/kestrel-engine/kestrel/internal/evaluator"
	"github.com/kestrel-engine/kestrel/internal/history"
	myLogging "github.com/kestrel-engine/kestrel/internal/logging"
	"github.com/kestrel-engine/kestrel/internal/movegen"
	"github.com/kestrel-engine/kestrel/internal/moveorder"
	"github.com/kestrel-engine/kestrel/internal/moveslice"
	"github.com/kestrel-engine/kestrel/internal/openingbook"
	"github.com/kestrel-engine/kestrel/internal/position"
	"github.com/kestrel-engine/kestrel/internal/see"
	"github.com/kestrel-engine/kestrel/internal/transpositiontable"
	. "github.com/kestrel-engine/kestrel/internal/types"
	"github.com/kestrel-engine/kestrel/internal/uciInterface"
	"github.com/kestrel-engine/kestrel/internal/util"
)

// Search coordinates a Lazy-SMP worker pool: it owns the transposition
// table, opening book and UCI reporting shared by every worker thread it
// spawns for a StartSearch call.
type Search struct {
	log  *logging.Logger
	slog *logging.Logger

	uciHandlerPtr uciInterface.UciDriver
	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	tt   *transpositiontable.TtTable
	book *openingbook.Book

	lastSearchResult *Result

	stopFlag  atomic.Bool
	startTime time.Time
	hasResult bool

	currentPosition *position.Position
	searchLimits    *Limits
	timeLimit       time.Duration
	extraTime       time.Duration

	nodesVisited atomic.Uint64

	statistics Statistics

	timerDone chan struct{}
}

// searchThread is one Lazy-SMP worker: it owns its own position, move
// generator, history tables and search stack for the duration of a single
// StartSearch call, and shares only the transposition table (via s) with its
// sibling threads. Thread 0 is the reporting thread: only it sends UCI info.
type searchThread struct {
	id int
	s  *Search

	pos       *position.Position
	mg        *movegen.Movegen
	hist      *history.History
	eval      *evaluator.Evaluator
	stack     []SearchStackFrame
	rootMoves *moveslice.MoveSlice

	statistics Statistics
}

// rootLine is one fully searched root move, kept so MultiPV reporting can
// rank and report more than just the single best line.
type rootLine struct {
	move  Move
	value Value
	pv    moveslice.MoveSlice
}

// NewSearch creates a new Search instance. If no UCI handler is set with
// SetUciHandler, output is only written to the log.
func NewSearch() *Search {
	return &Search{
		log:           myLogging.GetLog(),
		slog:          myLogging.GetSearchLog(),
		initSemaphore: semaphore.NewWeighted(int64(1)),
		isRunning:     semaphore.NewWeighted(int64(1)),
	}
}

// NewGame stops any running search and resets state for a new game: the
// transposition table is cleared. Each thread creates its own fresh history
// tables on its next StartSearch.
func (s *Search) NewGame() {
	s.StopSearch()
	if s.tt != nil {
		s.tt.Clear()
	}
}

// StartSearch starts a search on a copy of p with the given limits. Returns
// once the search goroutine has completed its setup and is ready to be
// stopped or waited on.
func (s *Search) StartSearch(p position.Position, sl Limits) {
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.currentPosition = &p
	s.searchLimits = &sl
	go s.run(&p, &sl)
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.initSemaphore.Release(1)
}

// StopSearch raises the atomic stop flag and waits for the search to return
// from its current node.
func (s *Search) StopSearch() {
	s.stopFlag.Store(true)
	s.WaitWhileSearching()
}

// PonderHit activates time control on a running ponder search without
// interrupting it.
func (s *Search) PonderHit() {
	if s.IsSearching() && s.searchLimits.Ponder {
		s.log.Debug("Ponderhit during search - activating time control")
		s.startTimer()
		return
	}
	s.log.Warning("Ponderhit received while not pondering")
}

// IsSearching reports whether a search is currently running.
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until any running search has stopped.
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.TODO(), 1)
	s.isRunning.Release(1)
}

// SetUciHandler installs the driver the worker reports search progress to.
func (s *Search) SetUciHandler(uciHandler uciInterface.UciDriver) {
	s.uciHandlerPtr = uciHandler
}

// GetUciHandlerPtr returns the installed UCI handler, or nil.
func (s *Search) GetUciHandlerPtr() uciInterface.UciDriver {
	return s.uciHandlerPtr
}

// IsReady performs any deferred initialization (TT allocation) and signals
// readiness to the UCI handler.
func (s *Search) IsReady() {
	s.initialize()
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendReadyOk()
	} else {
		s.log.Debug("uci >> readyok")
	}
}

// ClearHash clears the transposition table. Refused while a search is
// running.
func (s *Search) ClearHash() {
	if s.IsSearching() {
		s.log.Warning("Can't clear hash while searching.")
		return
	}
	if s.tt != nil {
		s.tt.Clear()
	}
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendInfoString("Hash cleared")
	}
}

// ResizeCache reallocates the transposition table from the current
// configuration. Refused while a search is running.
func (s *Search) ResizeCache() {
	if s.IsSearching() {
		s.log.Warning("Can't resize hash while searching.")
		return
	}
	s.tt = nil
	s.initialize()
	s.log.Debug(util.GcWithStats())
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendInfoString("Hash resized")
	}
}

// LastSearchResult returns the result of the most recently finished search.
func (s *Search) LastSearchResult() Result {
	if s.lastSearchResult == nil {
		return Result{}
	}
	return *s.lastSearchResult
}

// NodesVisited returns the number of nodes visited by the current or last
// search, summed across all worker threads.
func (s *Search) NodesVisited() uint64 {
	return s.nodesVisited.Load()
}

// Statistics returns the statistics of thread 0 of the current or last
// search.
func (s *Search) Statistics() *Statistics {
	return &s.statistics
}

func (s *Search) initialize() {
	if config.Settings.Search.OwnBook && s.book == nil {
		s.book = openingbook.NewBook()
		bookFormat, found := openingbook.FormatFromString[config.Settings.Search.BookFormat]
		if !found {
			s.log.Warningf("Book format invalid %s", config.Settings.Search.BookFormat)
			s.book = nil
		} else {
			err := s.book.Initialize(config.Settings.Search.BookPath, config.Settings.Search.BookFile, bookFormat, true, false)
			if err != nil {
				s.log.Warningf("Book could not be initialized: %s (%s)", config.Settings.Search.BookPath, err)
				s.book = nil
			}
		}
	}

	if config.Settings.Search.UseTT && s.tt == nil {
		s.tt = transpositiontable.NewTtTable(config.Settings.Search.TTSize)
	}
}

// probeBook returns a book move for p, chosen at random among the known
// successors, or MoveNone if the book is disabled, uninitialized, or holds
// no entry for this position. Book moves are only offered for
// time-controlled games with no restricted root move list.
func (s *Search) probeBook(p *position.Position, sl *Limits) Move {
	if s.book == nil || !config.Settings.Search.OwnBook || !sl.TimeControl || sl.Moves.Len() > 0 {
		return MoveNone
	}
	entry, found := s.book.GetEntry(p.ZobristKey())
	if !found || len(entry.Moves) == 0 {
		return MoveNone
	}
	return Move(entry.Moves[rand.Intn(len(entry.Moves))].Move)
}

// numThreads returns the configured worker count, clamped to at least 1.
func (s *Search) numThreads() int {
	n := config.Settings.Search.Threads
	if n < 1 {
		n = 1
	}
	return n
}

// run drives one full Lazy-SMP search: it fans a root position copy out to
// numThreads() independent worker threads via errgroup, each running its own
// iterative-deepening loop against the shared transposition table, and keeps
// the deepest completed iteration (ties favouring thread 0) as the result.
// It is started as a goroutine by StartSearch and owns the isRunning
// semaphore for its duration.
func (s *Search) run(p *position.Position, sl *Limits) {
	if !s.isRunning.TryAcquire(1) {
		s.log.Error("Search already running")
		return
	}
	defer s.isRunning.Release(1)

	s.startTime = time.Now()
	s.log.Infof("Searching: %s", p.StringFen())

	s.stopFlag.Store(false)
	s.hasResult = false
	s.nodesVisited.Store(0)
	s.statistics = Statistics{}

	s.initialize()
	s.setupSearchLimits(p, sl)

	if s.searchLimits.TimeControl && !s.searchLimits.Ponder {
		s.startTimer()
	}

	if s.tt != nil {
		s.tt.NewGeneration()
	}

	var result *Result
	if bookMove := s.probeBook(p, sl); bookMove != MoveNone {
		s.log.Debug("Opening Book: Choosing book move: ", bookMove.StringUci())
		result = &Result{BestMove: bookMove, BookMove: true}
	} else {
		result = s.searchWithThreads(p)
	}

	if (s.searchLimits.Ponder || s.searchLimits.Infinite) && !s.stopFlag.Load() {
		for !s.stopFlag.Load() && (s.searchLimits.Ponder || s.searchLimits.Infinite) {
			time.Sleep(5 * time.Millisecond)
		}
	}

	result.SearchTime = time.Since(s.startTime)
	s.log.Infof("Search finished after %s: %s", result.SearchTime, result.String())
	s.log.Debugf("Search stats: %s", s.statistics.String())

	s.lastSearchResult = result
	s.hasResult = true
	s.stopFlag.Store(true)

	if s.timerDone != nil {
		close(s.timerDone)
		s.timerDone = nil
	}

	s.sendResult(result)
}

// searchWithThreads spawns numThreads() worker threads on independent copies
// of p and waits for all of them to return. The deepest completed iteration
// wins; ties are broken in favour of the lowest thread id.
func (s *Search) searchWithThreads(p *position.Position) *Result {
	n := s.numThreads()
	results := make([]*Result, n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			localPos := *p
			th := newSearchThread(i, s, &localPos)
			results[i] = th.iterativeDeepening()
			return nil
		})
	}
	_ = g.Wait()

	best := results[0]
	for i := 1; i < n; i++ {
		if results[i] != nil && results[i].SearchDepth > best.SearchDepth {
			best = results[i]
		}
	}
	return best
}

func newSearchThread(id int, s *Search, p *position.Position) *searchThread {
	return &searchThread{
		id:    id,
		s:     s,
		pos:   p,
		mg:    movegen.NewMoveGen(),
		hist:  history.NewHistory(),
		eval:  evaluator.NewEvaluator(),
		stack: newStack(),
	}
}

// iterativeDeepening searches depth 1, 2, 3, ... until a limit or the stop
// flag ends the search, always keeping the last completed iteration's PV as
// the reportable result. Only thread 0 reports progress to the UCI layer.
func (th *searchThread) iterativeDeepening() *Result {
	p := th.pos
	s := th.s

	th.rootMoves = th.mg.GenerateLegal(p, moveslice.NewMoveSlice(MaxMoves))

	if th.rootMoves.Len() == 0 {
		if p.HasCheck() {
			th.statistics.Checkmates++
			if th.id == 0 {
				s.statistics = th.statistics
			}
			return &Result{BestValue: -ValueCheckmate}
		}
		th.statistics.Stalemates++
		if th.id == 0 {
			s.statistics = th.statistics
		}
		return &Result{BestValue: ValueDraw}
	}

	maxDepth := MaxDepth
	if s.searchLimits.Depth > 0 && s.searchLimits.Depth < maxDepth {
		maxDepth = s.searchLimits.Depth
	}

	result := &Result{BestMove: th.rootMoves.At(0)}

	for depth := 1; depth <= maxDepth; depth++ {
		th.statistics.CurrentIterationDepth = depth
		th.statistics.CurrentSearchDepth = depth

		lines := th.searchRoot(p, depth)

		if s.stopFlag.Load() && depth > 1 {
			break
		}
		if len(lines) == 0 {
			break
		}

		best := lines[0]
		result.BestMove = best.move
		result.BestValue = best.value
		result.SearchDepth = depth
		result.ExtraDepth = th.statistics.CurrentExtraSearchDepth
		result.Pv = *best.pv.Clone()
		if best.pv.Len() > 1 {
			result.PonderMove = best.pv.At(1)
		}

		th.statistics.CurrentBestRootMove = result.BestMove
		th.statistics.CurrentBestRootMoveValue = best.value

		if th.id == 0 {
			th.reportIteration(depth, lines)
		}

		if s.stopFlag.Load() || th.rootMoves.Len() == 1 {
			break
		}
	}

	if th.id == 0 {
		s.statistics = th.statistics
	}

	return result
}

// searchRoot searches every legal root move to depth and returns the
// resulting lines, sorted by value descending and truncated to the
// configured MultiPV count. With the default MultiPV of 1 only the best
// line is searched to completion with a normal alpha-beta window; a higher
// MultiPV widens every root move's window so each one is scored exactly,
// trading search speed for the ability to rank and report more than one PV.
func (th *searchThread) searchRoot(p *position.Position, depth int) []rootLine {
	s := th.s
	multiPV := config.Settings.Search.MultiPV
	if multiPV < 1 {
		multiPV = 1
	}

	key := p.ZobristKey()
	var ttMoveBuf [3]Move
	var ttMoves []Move
	if s.tt != nil {
		if n := s.tt.GetMoves(key, ttMoveBuf[:]); n > 0 {
			ttMoves = ttMoveBuf[:n]
		}
	}

	picker := moveorder.NewPicker(p, th.mg, th.hist, 0, ttMoves)

	alpha := ValueMin
	beta := ValueMax
	var lines []rootLine
	moveCount := 0

	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		moveCount++

		movedPiece := p.GetPiece(m.From())
		p.DoMove(m)
		th.stack[0].Move = m
		th.stack[0].MovedPiece = movedPiece

		var value Value
		if multiPV > 1 {
			value = -th.negamax(p, depth, 1, ValueMin, ValueMax)
		} else {
			value = -th.negamax(p, depth, 1, -beta, -alpha)
		}

		p.UndoMove()

		if s.stopFlag.Load() && moveCount > 1 {
			break
		}

		pv := moveslice.NewMoveSlice(MaxDepth + 1)
		pv.PushBack(m)
		for i := 0; i < th.stack[1].PV.Len(); i++ {
			pv.PushBack(th.stack[1].PV.At(i))
		}
		lines = append(lines, rootLine{move: m, value: value, pv: *pv})

		if value > alpha {
			alpha = value
		}
		if multiPV == 1 && alpha >= beta {
			break
		}
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].value > lines[j].value })
	if len(lines) > multiPV {
		lines = lines[:multiPV]
	}
	return lines
}

// negamax is a plain fail-soft negamax with alpha-beta pruning: it probes
// the TT before expanding, consumes the staged move picker, recurses with
// strict make/unmake LIFO, and stores its result into the TT after the move
// loop; the early returns (stop, draw, TT cutoff, quiescence hand-off,
// mate/stalemate) store nothing. The stop condition is polled every 2048
// nodes and the stop flag is read after each searched move. It deliberately has none of a tuned engine's
// extensions, reductions or null-move pruning - those are outside the
// contract this package specifies.
func (th *searchThread) negamax(p *position.Position, depth int, ply int, alpha Value, beta Value) Value {
	s := th.s
	th.stack[ply].PV.Clear()

	if s.nodesVisited.Add(1)%2048 == 0 && th.s.checkStop() {
		return ValueZero
	}

	if ply > 0 && (p.CheckRepetitions(2) || p.HasInsufficientMaterial() || p.HalfMoveClock() >= 100) {
		return ValueDraw
	}

	key := p.ZobristKey()
	var ttMoveBuf [3]Move
	var ttMoves []Move
	if s.tt != nil {
		if entry, found := s.tt.Probe(key, ply); found {
			th.statistics.TTHit++
			if int(entry.Depth()) >= depth-ply {
				v := entry.Value()
				switch entry.Vtype() {
				case ValueTypeExact:
					return v
				case ValueTypeLower:
					if v > alpha {
						alpha = v
					}
				case ValueTypeUpper:
					if v < beta {
						beta = v
					}
				}
				if alpha >= beta {
					return v
				}
			}
		} else {
			th.statistics.TTMiss++
		}
		if n := s.tt.GetMoves(key, ttMoveBuf[:]); n > 0 {
			ttMoves = ttMoveBuf[:n]
		}
	}

	if depth-ply <= 0 {
		return th.quiescence(p, ply, alpha, beta)
	}

	picker := moveorder.NewPicker(p, th.mg, th.hist, ply, ttMoves)

	bestValue := ValueMin
	bestMove := MoveNone
	alphaOrig := alpha
	moveCount := 0
	var failedQuiets []Move

	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		moveCount++

		movedPiece := p.GetPiece(m.From())
		p.DoMove(m)
		th.stack[ply].Move = m
		th.stack[ply].MovedPiece = movedPiece

		value := -th.negamax(p, depth, ply+1, -beta, -alpha)

		p.UndoMove()

		if s.stopFlag.Load() && moveCount > 1 {
			break
		}

		if value > bestValue {
			bestValue = value
			bestMove = m
			th.stack[ply].PV.Clear()
			th.stack[ply].PV.PushBack(m)
			for i := 0; i < th.stack[ply+1].PV.Len(); i++ {
				th.stack[ply].PV.PushBack(th.stack[ply+1].PV.At(i))
			}
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			victim := p.GetPiece(m.To()).TypeOf()
			th.hist.UpdateOnCutoff(p.NextPlayer(), m, movedPiece, victim, depth-ply, ply, failedQuiets,
				th.stack[ply].contAnchor(), nil, PieceNone, SqNone)
			break
		}
		if !m.IsCapture() {
			failedQuiets = append(failedQuiets, m)
		}
	}

	if moveCount == 0 {
		if p.InCheck() {
			return -ValueCheckmate + Value(ply)
		}
		return ValueDraw
	}

	if s.tt != nil {
		vtype := ValueTypeExact
		switch {
		case bestValue <= alphaOrig:
			vtype = ValueTypeUpper
		case bestValue >= beta:
			vtype = ValueTypeLower
		}
		s.tt.Put(key, bestMove, int8(depth-ply), bestValue, vtype, ValueNone, ply)
	}

	return bestValue
}

// quiescence extends the search along captures only, using a stand-pat
// cutoff, until the position is quiet or MaxDepth is reached.
func (th *searchThread) quiescence(p *position.Position, ply int, alpha Value, beta Value) Value {
	s := th.s
	th.stack[ply].PV.Clear()

	if th.statistics.CurrentExtraSearchDepth < ply {
		th.statistics.CurrentExtraSearchDepth = ply
	}

	if s.nodesVisited.Add(1)%2048 == 0 && th.s.checkStop() {
		return ValueZero
	}

	if !config.Settings.Search.UseQuiescence || ply >= MaxDepth {
		return th.eval.Evaluate(p)
	}

	standPat := th.eval.Evaluate(p)
	if config.Settings.Search.UseQSStandpat && !p.InCheck() {
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	var ttMove Move
	if s.tt != nil && config.Settings.Search.UseQSTT {
		if entry, found := s.tt.Probe(p.ZobristKey(), ply); found {
			ttMove = entry.Move()
		}
	}

	picker := moveorder.NewQPicker(p, th.mg, ttMove)
	best := standPat
	if p.InCheck() {
		best = ValueMin
	}

	for {
		m, ok := picker.Next()
		if !ok {
			break
		}

		if config.Settings.Search.UseSEE && !p.InCheck() && !m.IsPromotion() && see.Evaluate(p, m) < 0 {
			continue
		}

		p.DoMove(m)
		value := -th.quiescence(p, ply+1, -beta, -alpha)
		p.UndoMove()

		if value > best {
			best = value
			th.stack[ply].PV.Clear()
			th.stack[ply].PV.PushBack(m)
			for i := 0; i < th.stack[ply+1].PV.Len(); i++ {
				th.stack[ply].PV.PushBack(th.stack[ply+1].PV.At(i))
			}
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			break
		}
	}

	return best
}

// checkStop polls the stop flag and the wall-clock deadline, honouring a
// cancellation within a bounded node count. Shared by every worker thread.
func (s *Search) checkStop() bool {
	if s.stopFlag.Load() {
		return true
	}
	if s.searchLimits.TimeControl && s.timeLimit > 0 && time.Since(s.startTime) > s.timeLimit+s.extraTime {
		s.stopFlag.Store(true)
		return true
	}
	if s.searchLimits.Nodes > 0 && s.nodesVisited.Load() >= s.searchLimits.Nodes {
		s.stopFlag.Store(true)
		return true
	}
	return false
}

// setupSearchLimits logs the active search mode and, for time-controlled
// searches, derives the per-move time budget via setupTimeControl.
func (s *Search) setupSearchLimits(p *position.Position, sl *Limits) {
	s.extraTime = 0
	if sl.TimeControl {
		s.timeLimit = s.setupTimeControl(p, sl)
	} else {
		s.timeLimit = 0
	}
}

// setupTimeControl derives a time budget for the current move: either the
// fixed per-move allowance (shaved by the configured move overhead), or the
// remaining clock divided across an estimated number of moves left, which
// grows with the game phase and is shaved by a safety margin.
func (s *Search) setupTimeControl(p *position.Position, sl *Limits) time.Duration {
	if sl.MoveTime > 0 {
		overhead := time.Duration(config.Settings.Search.MoveOverhead) * time.Millisecond
		duration := sl.MoveTime - overhead
		if duration < 0 {
			s.log.Warningf("Very short move time: %s.", sl.MoveTime)
			return sl.MoveTime
		}
		return duration
	}

	movesLeft := int64(sl.MovesToGo)
	if movesLeft == 0 {
		movesLeft = int64(15 + 25*p.GamePhaseFactor())
	}

	var timeLeft time.Duration
	var inc time.Duration
	if p.NextPlayer() == White {
		timeLeft, inc = sl.WhiteTime, sl.WhiteInc
	} else {
		timeLeft, inc = sl.BlackTime, sl.BlackInc
	}
	timeLeft += time.Duration(movesLeft * inc.Nanoseconds())

	timeLimit := time.Duration(timeLeft.Nanoseconds() / movesLeft)
	if timeLimit.Milliseconds() < 100 {
		timeLimit = time.Duration(int64(0.8 * float64(timeLimit.Nanoseconds())))
	} else {
		timeLimit = time.Duration(int64(0.9 * float64(timeLimit.Nanoseconds())))
	}
	return timeLimit
}

func (s *Search) addExtraTime(factor float64) {
	if s.searchLimits.TimeControl && s.searchLimits.MoveTime == 0 {
		s.extraTime += time.Duration(int64((factor - 1.0) * float64(s.timeLimit.Nanoseconds())))
	}
}

// startTimer arms a background timer that raises the stop flag once the
// time budget expires, run as its own goroutine per the worker's suspension
// model.
func (s *Search) startTimer() {
	if !s.searchLimits.TimeControl || s.timeLimit <= 0 {
		return
	}
	done := make(chan struct{})
	s.timerDone = done
	budget := s.timeLimit
	go func() {
		timer := time.NewTimer(budget)
		defer timer.Stop()
		select {
		case <-timer.C:
			s.stopFlag.Store(true)
		case <-done:
		}
	}()
}

func (s *Search) sendResult(result *Result) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendResult(result.BestMove, result.PonderMove)
	} else {
		s.log.Infof("bestmove %s", result.BestMove.String())
	}
}

// reportIteration sends one info line per reported root line: rank 1 is the
// best move, rank 2..MultiPV are the next-best lines when MultiPV>1.
func (th *searchThread) reportIteration(depth int, lines []rootLine) {
	s := th.s
	if s.uciHandlerPtr == nil {
		return
	}
	nodes := s.nodesVisited.Load()
	elapsed := time.Since(s.startTime)
	hashfull := 0
	if s.tt != nil {
		hashfull = s.tt.Hashfull()
	}
	for i, line := range lines {
		s.uciHandlerPtr.SendIterationEndInfo(depth, th.statistics.CurrentExtraSearchDepth, i+1, line.value,
			nodes, util.Nps(nodes, elapsed), elapsed, line.pv)
	}
	s.uciHandlerPtr.SendSearchUpdate(depth, th.statistics.CurrentExtraSearchDepth, nodes,
		util.Nps(nodes, elapsed), elapsed, hashfull)
}
