//go:build debug
// +build debug

/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 */

package assert

import "fmt"

// DEBUG is true when the engine is built with -tags debug.
const DEBUG = true

// Assert panics with msg (formatted against a) when test is false.
func Assert(test bool, msg string, a ...interface{}) {
	if !test {
		panic(fmt.Sprintf(msg, a...))
	}
}
