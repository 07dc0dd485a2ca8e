//go:build !debug
// +build !debug

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

// Package assert gives the rest of the engine a single place to express
// invariants that should never fire in a correct build. In release builds
// (the default, no "debug" build tag) Assert is compiled down to a no-op
// by DEBUG being a compile-time false, so callers that care about the cost
// of evaluating their arguments still guard calls with "if assert.DEBUG".
package assert

// DEBUG is false in release builds. Build with -tags debug to flip it.
const DEBUG = false

// Assert is a no-op in release builds. Go still evaluates test/msg/a at the
// call site regardless of this function body, so call sites that care about
// that cost should also guard the call with "if assert.DEBUG { ... }".
func Assert(test bool, msg string, a ...interface{}) {
	// intentionally empty - see package doc
}
