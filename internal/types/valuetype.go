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

// ValueType is the bound kind a transposition table entry's score represents.
// Numbered NONE/UPPER/LOWER/EXACT to match the probe contract used throughout
// the search and transposition table packages.
type ValueType uint8

//noinspection GoUnusedConst
const (
	ValueTypeNone  ValueType = iota // no entry / not yet searched
	ValueTypeUpper                   // fail-low: true value <= stored value
	ValueTypeLower                   // fail-high: true value >= stored value
	ValueTypeExact                   // exact score
)

// IsValid returns true if vt is one of the four defined bound kinds.
func (vt ValueType) IsValid() bool {
	return vt <= ValueTypeExact
}

func (vt ValueType) String() string {
	switch vt {
	case ValueTypeNone:
		return "NONE"
	case ValueTypeUpper:
		return "UPPER"
	case ValueTypeLower:
		return "LOWER"
	case ValueTypeExact:
		return "EXACT"
	default:
		return "?"
	}
}
