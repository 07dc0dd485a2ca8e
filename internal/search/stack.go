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
	"github.com/kestrel-engine/kestrel/internal/history"
	"github.com/kestrel-engine/kestrel/internal/moveslice"
	. "github.com/kestrel-engine/kestrel/internal/types"
)

// MaxDepth bounds the SearchStackFrame array and iterative-deepening loop.
const MaxDepth = 128

// SearchStackFrame is the per-ply state a search worker threads through its
// recursion, per the search contract: the ply, the move (and piece) that
// led to this frame for continuation-history lookups one and two plies
// back, the node's static evaluation, and the PV collected from here down.
// Killer moves are not kept in the frame; history.History holds them per ply.
type SearchStackFrame struct {
	Ply        int
	Move       Move
	MovedPiece Piece
	StaticEval Value
	PV         moveslice.MoveSlice
}

// contAnchor returns the continuation-history anchor for this frame, or nil
// if no move has been made yet at this ply (the root).
func (f *SearchStackFrame) contAnchor() *history.ContMove {
	if f.Move == MoveNone {
		return nil
	}
	return &history.ContMove{Piece: f.MovedPiece, To: f.Move.To()}
}

func newStack() []SearchStackFrame {
	stack := make([]SearchStackFrame, MaxDepth+1)
	for i := range stack {
		stack[i].Ply = i
		stack[i].PV = *moveslice.NewMoveSlice(MaxDepth + 1)
	}
	return stack
}
