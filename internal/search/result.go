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

package search

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kestrel-engine/kestrel/internal/moveslice"
	. "github.com/kestrel-engine/kestrel/internal/types"
)

var out = message.NewPrinter(language.German)

// Result is the outcome of one StartSearch call, reported to the UCI layer
// once the search stops.
type Result struct {
	BestMove    Move
	PonderMove  Move
	BestValue   Value
	SearchTime  time.Duration
	SearchDepth int
	ExtraDepth  int
	BookMove    bool
	Pv          moveslice.MoveSlice
}

func (r *Result) String() string {
	return out.Sprintf("Best Move: %s (%s) Ponder Move: %s Depth: %d/%d Time: %s PV: %s",
		r.BestMove.String(), r.BestValue.String(), r.PonderMove.String(),
		r.SearchDepth, r.ExtraDepth, r.SearchTime, r.Pv.StringUci())
}

// Statistics accumulates the counters the UCI layer reports per iteration
// and the worker logs at the end of a search.
type Statistics struct {
	Nodes                     uint64
	TTHit                     uint64
	TTMiss                    uint64
	Checkmates                uint64
	Stalemates                uint64
	CurrentIterationDepth     int
	CurrentSearchDepth        int
	CurrentExtraSearchDepth   int
	CurrentBestRootMove       Move
	CurrentBestRootMoveValue  Value
}

func (s *Statistics) String() string {
	return out.Sprintf("Nodes: %d TT hits: %d TT misses: %d Checkmates: %d Stalemates: %d",
		s.Nodes, s.TTHit, s.TTMiss, s.Checkmates, s.Stalemates)
}
